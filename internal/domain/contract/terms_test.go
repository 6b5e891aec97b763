package contract_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/farmalink/suministro-api/internal/domain/contract"
)

func TestDiscountPercent_Escalones(t *testing.T) {
	cases := []struct {
		months int32
		want   int32
	}{
		{0, 0},
		{-3, 0},
		{1, 0},
		{2, 0},
		{3, 5},
		{5, 5},
		{6, 10},
		{11, 10},
		{12, 15},
		{24, 15},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, contract.DiscountPercent(tc.months), "meses=%d", tc.months)
	}
}

func TestDiscountPercent_Monotono(t *testing.T) {
	prev := int32(0)
	for m := int32(0); m <= 36; m++ {
		got := contract.DiscountPercent(m)
		assert.GreaterOrEqual(t, got, prev, "el descuento no puede bajar al subir la duración (meses=%d)", m)
		prev = got
	}
}

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestDurationMonths(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		want       int32
	}{
		{"año exacto", d(2025, time.January, 15), d(2026, time.January, 15), 12},
		{"mes parcial no cuenta", d(2025, time.January, 15), d(2025, time.April, 14), 2},
		{"mes completo justo", d(2025, time.January, 15), d(2025, time.April, 15), 3},
		{"invertido no negativo", d(2025, time.June, 1), d(2025, time.January, 1), 0},
		{"fecha cero", time.Time{}, d(2025, time.June, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, contract.DurationMonths(tc.start, tc.end))
		})
	}
}

func TestAddMonths(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		months int32
		want   time.Time
	}{
		{"simple", d(2025, time.March, 10), 1, d(2025, time.April, 10)},
		{"fin de mes recortado", d(2025, time.January, 31), 1, d(2025, time.February, 28)},
		{"bisiesto", d(2024, time.January, 31), 1, d(2024, time.February, 29)},
		{"cruce de año", d(2025, time.November, 30), 3, d(2026, time.February, 28)},
		{"doce meses", d(2025, time.May, 17), 12, d(2026, time.May, 17)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, contract.AddMonths(tc.start, tc.months))
		})
	}
}

// La firma de contrato usa AddMonths + DurationMonths como inversas sobre
// fechas sin recorte; lo verificamos para las duraciones ofrecidas.
func TestAddMonths_RoundTrip(t *testing.T) {
	start := d(2025, time.February, 10)
	for _, months := range []int32{1, 3, 6, 12} {
		end := contract.AddMonths(start, months)
		assert.Equal(t, months, contract.DurationMonths(start, end))
	}
}
