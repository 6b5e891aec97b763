package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/contract"
	"github.com/farmalink/suministro-api/internal/domain/delivery"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// CreateOrderUseCase crea pedidos de farmacia con el descuento del contrato
// activo fotografiado en el momento de creación (nunca se recalcula después).
type CreateOrderUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	contractRepo repository.ContractRepository
	pharmacyRepo repository.PharmacyRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	contractRepo repository.ContractRepository,
	pharmacyRepo repository.PharmacyRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		contractRepo: contractRepo,
		pharmacyRepo: pharmacyRepo,
	}
}

// OrderItemInput línea solicitada por la farmacia.
type OrderItemInput struct {
	ProductID string
	Quantity  int64
}

// CreateOrderResult datos del pedido recién creado, incluida la estimación de
// entrega calculada con la disponibilidad del momento (solo informativa).
type CreateOrderResult struct {
	OrderID         string
	Total           decimal.Decimal
	DiscountPercent int32
	EstimatedDays   int
	EstimatedAt     time.Time
}

// Create valida las líneas, resuelve precios, fotografía el descuento del
// contrato activo y persiste cabecera + líneas en una transacción. Los errores
// de validación se detectan antes de tocar el almacén.
func (uc *CreateOrderUseCase) Create(ctx context.Context, pharmacyNIT string, items []OrderItemInput) (*CreateOrderResult, error) {
	if pharmacyNIT == "" || len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	pharmacy, err := uc.pharmacyRepo.GetByNIT(ctx, pharmacyNIT)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		return nil, domain.ErrNotFound
	}

	productIDs := make([]string, 0, len(items))
	for _, it := range items {
		productIDs = append(productIDs, it.ProductID)
	}
	prices, err := uc.productRepo.PricesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	if len(prices) != len(productIDs) {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	discountPercent, err := uc.activeDiscount(ctx, pharmacyNIT, now)
	if err != nil {
		return nil, err
	}

	baseTotal := decimal.Zero
	for _, it := range items {
		baseTotal = baseTotal.Add(prices[it.ProductID].Mul(decimal.NewFromInt(it.Quantity)))
	}
	discount := decimal.NewFromInt32(discountPercent).Div(decimal.NewFromInt(100))
	total := baseTotal.Mul(decimal.NewFromInt(1).Sub(discount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	// La cabecera guarda el total ya descontado: es lo que la farmacia pagará
	// y lo que sus listados muestran.
	order := &entity.Order{
		ID:              uuid.New().String(),
		PharmacyNIT:     pharmacyNIT,
		Status:          entity.OrderStatusPending,
		BaseCost:        total,
		DiscountPercent: discountPercent,
		CreatedAt:       now,
	}
	lines := make([]entity.OrderLine, 0, len(items))
	estLines := make([]delivery.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, entity.OrderLine{
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Requested: it.Quantity,
		})
		estLines = append(estLines, delivery.Line{ProductID: it.ProductID, Requested: it.Quantity})
	}

	var days int
	var eta time.Time
	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		_ repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		if err := orderRepo.Create(ctx, order, lines); err != nil {
			return err
		}
		available, err := positionRepo.AvailableByProducts(ctx, productIDs)
		if err != nil {
			return err
		}
		days, eta = delivery.ETA(now, estLines, available)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateOrderResult{
		OrderID:         order.ID,
		Total:           total,
		DiscountPercent: discountPercent,
		EstimatedDays:   days,
		EstimatedAt:     eta,
	}, nil
}

// activeDiscount descuento del contrato vigente de la farmacia; 0 sin
// contrato. Un fallo del almacén se propaga: fotografiar 0% por un error
// transitorio dejaría el pedido sin descuento para siempre.
func (uc *CreateOrderUseCase) activeDiscount(ctx context.Context, pharmacyNIT string, today time.Time) (int32, error) {
	active, err := uc.contractRepo.ActiveByPharmacy(ctx, pharmacyNIT, today)
	if err != nil {
		return 0, fmt.Errorf("consultar contrato vigente: %w", err)
	}
	if active == nil {
		return 0, nil
	}
	return contract.DiscountPercent(active.DurationMonths), nil
}
