package contracts_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmalink/suministro-api/internal/application/contracts"
	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

type memContractRepo struct {
	contracts []entity.Contract
}

func (r *memContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.contracts = append(r.contracts, *c)
	return nil
}

func (r *memContractRepo) ListByPharmacy(_ context.Context, nit string) ([]entity.Contract, error) {
	var out []entity.Contract
	for _, c := range r.contracts {
		if c.PharmacyNIT == nit {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignedAt.After(out[j].SignedAt) })
	return out, nil
}

func (r *memContractRepo) ActiveByPharmacy(_ context.Context, nit string, today time.Time) (*entity.Contract, error) {
	for _, c := range r.contracts {
		if c.PharmacyNIT == nit && c.ActiveAt(today) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memContractRepo) SetExpiry(_ context.Context, id string, expiresAt time.Time) error {
	for i := range r.contracts {
		if r.contracts[i].ID == id {
			r.contracts[i].ExpiresAt = expiresAt
			return nil
		}
	}
	return fmt.Errorf("contrato %s no existe", id)
}

type memPharmacyRepo struct {
	pharmacies map[string]*entity.Pharmacy
}

func (r *memPharmacyRepo) GetByNIT(_ context.Context, nit string) (*entity.Pharmacy, error) {
	p, ok := r.pharmacies[nit]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func newFixture() (*memContractRepo, *contracts.UseCase) {
	repo := &memContractRepo{}
	pharmacies := &memPharmacyRepo{pharmacies: map[string]*entity.Pharmacy{
		"900123456": {NIT: "900123456", Name: "Farmacia Central"},
	}}
	return repo, contracts.NewUseCase(repo, pharmacies)
}

func validInput() contracts.SignInput {
	return contracts.SignInput{
		PharmacyNIT:       "900123456",
		DurationMonths:    6,
		DeliveryFrequency: entity.DeliveryWeekly,
		PaymentMethod:     entity.PaymentTransfer,
	}
}

func TestSign_ContratoNuevo(t *testing.T) {
	repo, uc := newFixture()

	view, err := uc.Sign(context.Background(), validInput())
	require.NoError(t, err)
	assert.True(t, view.Active)
	assert.Equal(t, int32(10), view.DiscountPercent)
	assert.Equal(t, int32(6), view.Contract.DurationMonths)
	// vence a los 6 meses de hoy
	assert.WithinDuration(t, time.Now().AddDate(0, 6, 0), view.Contract.ExpiresAt, 48*time.Hour)
	require.Len(t, repo.contracts, 1)
}

func TestSign_RechazaSegundoVigente(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.Sign(context.Background(), validInput())
	require.NoError(t, err)

	_, err = uc.Sign(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrActiveContractExists)
}

func TestSign_PermiteTrasVencimiento(t *testing.T) {
	repo, uc := newFixture()
	repo.contracts = append(repo.contracts, entity.Contract{
		ID:             "viejo",
		PharmacyNIT:    "900123456",
		SignedAt:       time.Now().AddDate(-1, 0, 0),
		ExpiresAt:      time.Now().AddDate(0, -6, 0),
		DurationMonths: 6,
	})

	_, err := uc.Sign(context.Background(), validInput())
	assert.NoError(t, err)
}

func TestSign_Validaciones(t *testing.T) {
	_, uc := newFixture()
	ctx := context.Background()

	in := validInput()
	in.PharmacyNIT = ""
	_, err := uc.Sign(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.DurationMonths = 0
	_, err = uc.Sign(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.DeliveryFrequency = entity.DeliveryFrequency("DIARIA")
	_, err = uc.Sign(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validInput()
	in.PaymentMethod = entity.PaymentMethod("CHEQUE")
	_, err = uc.Sign(ctx, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSign_FarmaciaInexistente(t *testing.T) {
	_, uc := newFixture()
	in := validInput()
	in.PharmacyNIT = "999999999"
	_, err := uc.Sign(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_ExpiraHoy(t *testing.T) {
	repo, uc := newFixture()
	_, err := uc.Sign(context.Background(), validInput())
	require.NoError(t, err)

	require.NoError(t, uc.Cancel(context.Background(), "900123456"))
	// tras cancelar no queda contrato vigente
	active, err := repo.ActiveByPharmacy(context.Background(), "900123456", time.Now())
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestCancel_SinVigente(t *testing.T) {
	_, uc := newFixture()
	err := uc.Cancel(context.Background(), "900123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_AnotaEstado(t *testing.T) {
	repo, uc := newFixture()
	now := time.Now()
	repo.contracts = append(repo.contracts,
		entity.Contract{ID: "viejo", PharmacyNIT: "900123456",
			SignedAt: now.AddDate(-2, 0, 0), ExpiresAt: now.AddDate(-1, 0, 0), DurationMonths: 12},
		entity.Contract{ID: "vigente", PharmacyNIT: "900123456",
			SignedAt: now.AddDate(0, -1, 0), ExpiresAt: now.AddDate(0, 2, 0), DurationMonths: 3},
	)

	views, err := uc.List(context.Background(), "900123456")
	require.NoError(t, err)
	require.Len(t, views, 2)
	// orden: firma más reciente primero
	assert.Equal(t, "vigente", views[0].Contract.ID)
	assert.True(t, views[0].Active)
	assert.Equal(t, int32(5), views[0].DiscountPercent)
	assert.Equal(t, "viejo", views[1].Contract.ID)
	assert.True(t, views[1].Expired)
	assert.Equal(t, int32(15), views[1].DiscountPercent)
}

func TestCurrent_PrefiereVigente(t *testing.T) {
	repo, uc := newFixture()
	now := time.Now()
	repo.contracts = append(repo.contracts,
		entity.Contract{ID: "vigente", PharmacyNIT: "900123456",
			SignedAt: now.AddDate(0, -2, 0), ExpiresAt: now.AddDate(0, 1, 0), DurationMonths: 3},
		entity.Contract{ID: "reciente-vencido", PharmacyNIT: "900123456",
			SignedAt: now.AddDate(0, -1, 0), ExpiresAt: now.AddDate(0, 0, -1), DurationMonths: 1},
	)

	view, err := uc.Current(context.Background(), "900123456")
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, "vigente", view.Contract.ID)
}

func TestCurrent_SinContratos(t *testing.T) {
	_, uc := newFixture()
	view, err := uc.Current(context.Background(), "900123456")
	require.NoError(t, err)
	assert.Nil(t, view)
}
