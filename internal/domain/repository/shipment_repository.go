package repository

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// ShipmentRepository puerto de persistencia de envíos. Un pedido tiene a lo
// sumo un envío; el allocator consulta ExistsForOrder dentro de la misma
// transacción que crea el envío.
type ShipmentRepository interface {
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
	GetByOrder(ctx context.Context, orderID string) (*entity.Shipment, error)
	Create(ctx context.Context, shipment *entity.Shipment, lines []entity.ShipmentLine) error
	Lines(ctx context.Context, shipmentID string) ([]entity.ShipmentLine, error)
}
