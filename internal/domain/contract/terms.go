// Package contract contiene la aritmética pura de contratos: descuento por
// duración y cálculo de fechas. Sin efectos secundarios ni acceso a datos.
package contract

import "time"

// discountTiers escalones de descuento por meses de contrato. Se aplica el
// escalón más alto cuyo umbral no supere la duración pedida.
var discountTiers = []struct {
	Months  int32
	Percent int32
}{
	{1, 0},
	{3, 5},
	{6, 10},
	{12, 15},
}

// DiscountPercent devuelve el porcentaje de descuento para una duración en
// meses. Función escalonada, monótona no decreciente; 0 para duraciones por
// debajo del primer escalón o no positivas.
func DiscountPercent(months int32) int32 {
	var percent int32
	for _, tier := range discountTiers {
		if months >= tier.Months {
			percent = tier.Percent
		}
	}
	return percent
}

// DurationMonths devuelve los meses completos entre dos fechas. Un mes final
// parcial (día de fin anterior al día de inicio) no cuenta. Nunca negativo.
func DurationMonths(start, end time.Time) int32 {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	months := int32(end.Year()-start.Year())*12 + int32(end.Month()-start.Month())
	if end.Day() < start.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AddMonths suma meses de calendario recortando el día al último válido del mes
// destino (31 ene + 1 mes cae en 28/29 feb). time.AddDate desborda al mes siguiente,
// por eso se construye la fecha a mano.
func AddMonths(start time.Time, months int32) time.Time {
	month := int32(start.Month()) - 1 + months
	year := start.Year() + int(month)/12
	if month < 0 {
		// división truncada de Go: ajustar hacia atrás para meses negativos
		year = start.Year() + int(month-11)/12
	}
	m := time.Month(((int(month)%12)+12)%12 + 1)
	day := start.Day()
	if last := daysIn(year, m); day > last {
		day = last
	}
	return time.Date(year, m, day, start.Hour(), start.Minute(), start.Second(), start.Nanosecond(), start.Location())
}

// daysIn días del mes dado (el día 0 del mes siguiente).
func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
