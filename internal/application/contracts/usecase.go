package contracts

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/contract"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// UseCase firma, cancelación y consulta de contratos de descuento. El chequeo
// de contrato activo se hace al firmar (no hay constraint en BD), igual que el
// resto de reglas de negocio de contratos.
type UseCase struct {
	contractRepo repository.ContractRepository
	pharmacyRepo repository.PharmacyRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(contractRepo repository.ContractRepository, pharmacyRepo repository.PharmacyRepository) *UseCase {
	return &UseCase{contractRepo: contractRepo, pharmacyRepo: pharmacyRepo}
}

// SignInput parámetros de firma de contrato.
type SignInput struct {
	PharmacyNIT       string
	DurationMonths    int32
	DeliveryFrequency entity.DeliveryFrequency
	PaymentMethod     entity.PaymentMethod
}

// ContractView contrato anotado con banderas y descuento derivados.
type ContractView struct {
	Contract        entity.Contract
	Active          bool
	Expired         bool
	DiscountPercent int32
}

// Sign crea un contrato nuevo si la farmacia no tiene uno vigente. La fecha de
// fin es AddMonths(hoy, meses) con recorte de fin de mes; el descuento que
// heredarán los próximos pedidos sale de DiscountPercent(meses). Los pedidos ya
// existentes no se tocan.
func (uc *UseCase) Sign(ctx context.Context, in SignInput) (*ContractView, error) {
	if in.PharmacyNIT == "" || in.DurationMonths <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if !in.DeliveryFrequency.Valid() || !in.PaymentMethod.Valid() {
		return nil, domain.ErrInvalidInput
	}

	pharmacy, err := uc.pharmacyRepo.GetByNIT(ctx, in.PharmacyNIT)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, domain.ErrNotFound
	}

	today := time.Now()
	existing, err := uc.contractRepo.ActiveByPharmacy(ctx, in.PharmacyNIT, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrActiveContractExists
	}

	c := &entity.Contract{
		ID:                uuid.New().String(),
		PharmacyNIT:       in.PharmacyNIT,
		DeliveryFrequency: in.DeliveryFrequency,
		PaymentMethod:     in.PaymentMethod,
		SignedAt:          today,
		ExpiresAt:         contract.AddMonths(today, in.DurationMonths),
		DurationMonths:    in.DurationMonths,
	}
	if err := uc.contractRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return uc.annotate(*c, today), nil
}

// Cancel expira hoy el contrato vigente de la farmacia.
func (uc *UseCase) Cancel(ctx context.Context, pharmacyNIT string) error {
	if pharmacyNIT == "" {
		return domain.ErrInvalidInput
	}
	today := time.Now()
	active, err := uc.contractRepo.ActiveByPharmacy(ctx, pharmacyNIT, today)
	if err != nil {
		return err
	}
	if active == nil {
		return domain.ErrNotFound
	}
	return uc.contractRepo.SetExpiry(ctx, active.ID, today)
}

// List contratos de la farmacia anotados, firma más reciente primero.
func (uc *UseCase) List(ctx context.Context, pharmacyNIT string) ([]ContractView, error) {
	if pharmacyNIT == "" {
		return nil, domain.ErrInvalidInput
	}
	cs, err := uc.contractRepo.ListByPharmacy(ctx, pharmacyNIT)
	if err != nil {
		return nil, err
	}
	today := time.Now()
	views := make([]ContractView, 0, len(cs))
	for _, c := range cs {
		views = append(views, *uc.annotate(c, today))
	}
	return views, nil
}

// Current contrato vigente, o el más reciente si ninguno está activo; nil sin
// contratos.
func (uc *UseCase) Current(ctx context.Context, pharmacyNIT string) (*ContractView, error) {
	views, err := uc.List(ctx, pharmacyNIT)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	for i := range views {
		if views[i].Active {
			return &views[i], nil
		}
	}
	return &views[0], nil
}

func (uc *UseCase) annotate(c entity.Contract, today time.Time) *ContractView {
	months := c.DurationMonths
	if months == 0 {
		months = contract.DurationMonths(c.SignedAt, c.ExpiresAt)
	}
	return &ContractView{
		Contract:        c,
		Active:          c.ActiveAt(today),
		Expired:         !c.ActiveAt(today),
		DiscountPercent: contract.DiscountPercent(months),
	}
}
