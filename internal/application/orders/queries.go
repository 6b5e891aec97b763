package orders

import (
	"context"
	"time"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/delivery"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// QueryUseCase listados de pedidos para farmacia y bodega (solo lectura, fuera
// de transacción).
type QueryUseCase struct {
	orderRepo    repository.OrderRepository
	shipmentRepo repository.ShipmentRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(orderRepo repository.OrderRepository, shipmentRepo repository.ShipmentRepository) *QueryUseCase {
	return &QueryUseCase{orderRepo: orderRepo, shipmentRepo: shipmentRepo}
}

// OrderView pedido con sus líneas enriquecidas y la estimación de entrega.
// La estimación es informativa: con envío creado deja de ser autoritativa y
// DeliveryRemaining queda en cero.
type OrderView struct {
	Summary           repository.OrderSummary
	Lines             []repository.OrderLineView
	EstimatedDays     int
	DeliveryRemaining time.Duration
}

// HistoryForPharmacy historial de pedidos de una farmacia, opcionalmente
// filtrado por estado; más reciente primero.
func (uc *QueryUseCase) HistoryForPharmacy(ctx context.Context, pharmacyNIT string, status *entity.OrderStatus) ([]OrderView, error) {
	if pharmacyNIT == "" {
		return nil, domain.ErrInvalidInput
	}
	summaries, err := uc.orderRepo.ListByPharmacy(ctx, pharmacyNIT, status)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, summaries)
}

// ListAll todos los pedidos para la pantalla de bodega.
func (uc *QueryUseCase) ListAll(ctx context.Context, status *entity.OrderStatus) ([]OrderView, error) {
	summaries, err := uc.orderRepo.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return uc.buildViews(ctx, summaries)
}

// GetShipment envío de un pedido con sus líneas, para detalle y packing slip.
func (uc *QueryUseCase) GetShipment(ctx context.Context, orderID string) (*entity.Shipment, []entity.ShipmentLine, error) {
	shipment, err := uc.shipmentRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if shipment == nil {
		return nil, nil, domain.ErrNotFound
	}
	lines, err := uc.shipmentRepo.Lines(ctx, shipment.ID)
	if err != nil {
		return nil, nil, err
	}
	return shipment, lines, nil
}

func (uc *QueryUseCase) buildViews(ctx context.Context, summaries []repository.OrderSummary) ([]OrderView, error) {
	if len(summaries) == 0 {
		return []OrderView{}, nil
	}
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.Order.ID)
	}
	linesByOrder, err := uc.orderRepo.LineViews(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]OrderView, 0, len(summaries))
	for _, s := range summaries {
		lines := linesByOrder[s.Order.ID]

		estLines := make([]delivery.Line, 0, len(lines))
		available := make(map[string]int64, len(lines))
		for _, ln := range lines {
			estLines = append(estLines, delivery.Line{ProductID: ln.ProductID, Requested: ln.Requested})
			available[ln.ProductID] = ln.Available
		}
		days := delivery.Days(estLines, available)

		var remaining time.Duration
		if s.ShipmentStatus == nil {
			remaining = delivery.Remaining(s.Order.CreatedAt, estLines, available, now)
		}
		views = append(views, OrderView{
			Summary:           s,
			Lines:             lines,
			EstimatedDays:     days,
			DeliveryRemaining: remaining,
		})
	}
	return views, nil
}
