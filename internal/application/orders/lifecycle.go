package orders

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// LifecycleUseCase orquesta las transiciones de estado de un pedido:
// PENDING pasa a PROCESSING y de ahí a SHIPPED o CANCELLED. La transición a SHIPPED se
// delega siempre al allocator (nunca es una escritura directa del campo).
type LifecycleUseCase struct {
	txRunner TxRunner
	shipper  *ShipOrderUseCase
}

// NewLifecycleUseCase construye el caso de uso.
func NewLifecycleUseCase(txRunner TxRunner, shipper *ShipOrderUseCase) *LifecycleUseCase {
	return &LifecycleUseCase{txRunner: txRunner, shipper: shipper}
}

// StatusResult resultado de una transición: el estado final y, si la
// transición despachó, el resultado del envío.
type StatusResult struct {
	OrderID  string
	Status   entity.OrderStatus
	Shipment *ShipmentResult
}

// SetStatus aplica la transición al estado objetivo.
//
// Con envío existente el estado queda congelado: cualquier transición a un
// estado distinto falla con ErrOrderLocked; reafirmar el mismo estado es un
// no-op permitido. Estados fuera del enum fallan con ErrInvalidInput y un
// pedido inexistente con ErrOrderNotFound.
func (uc *LifecycleUseCase) SetStatus(ctx context.Context, orderID string, target entity.OrderStatus) (*StatusResult, error) {
	if !target.Valid() {
		return nil, domain.ErrInvalidInput
	}

	if target == entity.OrderStatusShipped {
		shipResult, err := uc.shipper.Ship(ctx, orderID)
		if err != nil {
			return nil, err
		}
		return &StatusResult{OrderID: orderID, Status: entity.OrderStatusShipped, Shipment: shipResult}, nil
	}

	var result *StatusResult
	err := uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		_ repository.PositionRepository,
	) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrOrderNotFound
		}

		exists, err := shipmentRepo.ExistsForOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if exists {
			if order.Status == target {
				// reafirmar el estado vigente es un no-op
				result = &StatusResult{OrderID: orderID, Status: order.Status}
				return nil
			}
			return domain.ErrOrderLocked
		}

		if err := orderRepo.UpdateStatus(ctx, orderID, target); err != nil {
			return err
		}
		result = &StatusResult{OrderID: orderID, Status: target}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
