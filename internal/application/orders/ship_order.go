package orders

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// ShipOrderUseCase es el allocator de despacho: reparte las cantidades pedidas
// entre las posiciones físicas del libro de inventario con semántica de
// cumplimiento parcial, y crea el envío exactamente una vez por pedido.
//
// Política de drenaje: orden fijo (bodega, pasillo, estante) ascendente; la
// posición de índice más bajo se vacía primero. Determinista, no optimizada
// por cantidad.
type ShipOrderUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewShipOrderUseCase construye el caso de uso.
func NewShipOrderUseCase(txRunner TxRunner, productRepo repository.ProductRepository) *ShipOrderUseCase {
	return &ShipOrderUseCase{txRunner: txRunner, productRepo: productRepo}
}

// ShipmentResult resultado estructurado del despacho para la capa de
// presentación (éxito + datos, nunca strings formateados).
type ShipmentResult struct {
	ShipmentID string
	OrderID    string
	RouteToken int32
	Status     entity.ShipmentStatus
	FinalCost  decimal.Decimal
	Lines      []entity.ShipmentLine
}

// Ship ejecuta el despacho del pedido como una única transacción:
//
//  1. Carga el pedido con bloqueo de fila y verifica que no exista ya un envío
//     (guard de exclusión mutua contra doble despacho, dentro de la misma tx
//     que creará el envío).
//  2. Por cada línea, drena las posiciones del producto en orden fijo hasta
//     cubrir lo pedido o agotar el stock; las posiciones que llegan a 0 se
//     eliminan.
//  3. Si ninguna línea pudo enviar nada, falla con ErrInsufficientStock sin
//     mutación alguna (jamás se crea un envío vacío).
//  4. Costo final = base enviada * (1 - descuento/100), acotado en 0. El envío
//     queda COMPLETE solo si toda línea se satisfizo; si no, PARTIAL.
//  5. Crea envío + líneas y avanza el pedido a SHIPPED.
//
// Cualquier error revierte todos los decrementos, el envío y el estado.
func (uc *ShipOrderUseCase) Ship(ctx context.Context, orderID string) (*ShipmentResult, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *ShipmentResult
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		// Guard de doble despacho: se chequea con la fila del pedido bloqueada.
		exists, err := shipmentRepo.ExistsForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrShipmentExists
		}

		lines, err := orderRepo.Lines(ctx, orderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrInvalidInput
		}

		productIDs := make([]string, 0, len(lines))
		for _, ln := range lines {
			productIDs = append(productIDs, ln.ProductID)
		}
		prices, err := uc.productRepo.PricesByIDs(ctx, productIDs)
		if err != nil {
			return err
		}

		baseCost := decimal.Zero
		allFulfilled := true
		shipped := make([]entity.ShipmentLine, 0, len(lines))

		for _, ln := range lines {
			unitPrice, ok := prices[ln.ProductID]
			if !ok {
				return domain.ErrNotFound
			}

			positions, err := positionRepo.ListForProductForUpdate(ctx, ln.ProductID)
			if err != nil {
				return err
			}

			remaining := ln.Requested
			var shippedQty int64
			for _, pos := range positions {
				if remaining <= 0 {
					break
				}
				if pos.Quantity <= 0 {
					continue
				}
				take := pos.Quantity
				if remaining < take {
					take = remaining
				}
				if err := positionRepo.Decrement(ctx, pos, take); err != nil {
					return err
				}
				shippedQty += take
				remaining -= take
			}

			if shippedQty > 0 {
				baseCost = baseCost.Add(unitPrice.Mul(decimal.NewFromInt(shippedQty)))
				shipped = append(shipped, entity.ShipmentLine{
					ProductID: ln.ProductID,
					Shipped:   shippedQty,
				})
			}
			if remaining > 0 {
				allFulfilled = false
			}
		}

		if len(shipped) == 0 {
			return domain.ErrInsufficientStock
		}

		status := entity.ShipmentStatusPartial
		if allFulfilled {
			status = entity.ShipmentStatusComplete
		}
		discount := decimal.NewFromInt32(order.DiscountPercent).Div(decimal.NewFromInt(100))
		finalCost := baseCost.Mul(decimal.NewFromInt(1).Sub(discount))
		if finalCost.IsNegative() {
			finalCost = decimal.Zero
		}

		shipment := &entity.Shipment{
			ID:         uuid.New().String(),
			OrderID:    orderID,
			RouteToken: int32(rand.Intn(900) + 100), // opaco, solo display
			Status:     status,
			FinalCost:  finalCost,
			ShippedAt:  time.Now(),
		}
		for i := range shipped {
			shipped[i].ShipmentID = shipment.ID
		}
		if err := shipmentRepo.Create(ctx, shipment, shipped); err != nil {
			return err
		}
		if err := orderRepo.UpdateStatus(ctx, orderID, entity.OrderStatusShipped); err != nil {
			return err
		}

		result = &ShipmentResult{
			ShipmentID: shipment.ID,
			OrderID:    orderID,
			RouteToken: shipment.RouteToken,
			Status:     status,
			FinalCost:  finalCost,
			Lines:      shipped,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
