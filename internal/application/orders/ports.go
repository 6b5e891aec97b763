package orders

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// despacho: o comitean todos los decrementos del libro, el envío con sus
// líneas y el cambio de estado, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		shipmentRepo repository.ShipmentRepository,
		positionRepo repository.PositionRepository,
	) error) error
}
