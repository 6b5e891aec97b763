package orders

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// PackingSlipLine línea del packing slip con el nombre de catálogo resuelto.
type PackingSlipLine struct {
	ProductID   string
	ProductName string
	Requested   int64
	Shipped     int64
}

// PackingSlipData todo lo que el generador necesita para la guía de despacho.
type PackingSlipData struct {
	Shipment entity.Shipment
	Order    entity.Order
	Pharmacy entity.Pharmacy
	Lines    []PackingSlipLine
}

// PackingSlipGenerator puerto del generador de la guía de despacho en PDF.
type PackingSlipGenerator interface {
	GeneratePackingSlip(ctx context.Context, data *PackingSlipData) ([]byte, error)
}

// PackingSlipUseCase arma los datos del envío y delega el render al generador.
type PackingSlipUseCase struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
	productRepo  repository.ProductRepository
	pharmacyRepo repository.PharmacyRepository
	generator    PackingSlipGenerator
}

// NewPackingSlipUseCase construye el caso de uso.
func NewPackingSlipUseCase(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	productRepo repository.ProductRepository,
	pharmacyRepo repository.PharmacyRepository,
	generator PackingSlipGenerator,
) *PackingSlipUseCase {
	return &PackingSlipUseCase{
		orderRepo:    orderRepo,
		shipmentRepo: shipmentRepo,
		productRepo:  productRepo,
		pharmacyRepo: pharmacyRepo,
		generator:    generator,
	}
}

// Generate produce el PDF de la guía de despacho del pedido. Falla con
// ErrNotFound si el pedido no tiene envío todavía.
func (uc *PackingSlipUseCase) Generate(ctx context.Context, orderID string) ([]byte, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	shipment, err := uc.shipmentRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if shipment == nil {
		return nil, domain.ErrNotFound
	}
	shipmentLines, err := uc.shipmentRepo.Lines(ctx, shipment.ID)
	if err != nil {
		return nil, err
	}
	orderLines, err := uc.orderRepo.Lines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	requested := make(map[string]int64, len(orderLines))
	for _, ln := range orderLines {
		requested[ln.ProductID] = ln.Requested
	}

	pharmacy, err := uc.pharmacyRepo.GetByNIT(ctx, order.PharmacyNIT)
	if err != nil {
		return nil, err
	}
	if pharmacy == nil {
		pharmacy = &entity.Pharmacy{NIT: order.PharmacyNIT}
	}

	data := &PackingSlipData{
		Shipment: *shipment,
		Order:    *order,
		Pharmacy: *pharmacy,
		Lines:    make([]PackingSlipLine, 0, len(shipmentLines)),
	}
	for _, ln := range shipmentLines {
		name := ln.ProductID
		if p, err := uc.productRepo.GetByID(ctx, ln.ProductID); err == nil && p != nil {
			name = p.Name
		}
		data.Lines = append(data.Lines, PackingSlipLine{
			ProductID:   ln.ProductID,
			ProductName: name,
			Requested:   requested[ln.ProductID],
			Shipped:     ln.Shipped,
		})
	}
	return uc.generator.GeneratePackingSlip(ctx, data)
}
