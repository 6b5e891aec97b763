package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// OrderLineView línea de pedido enriquecida para listados: lo pedido, lo ya
// enviado y la disponibilidad agregada actual del producto.
type OrderLineView struct {
	OrderID   string
	ProductID string
	Name      string
	Requested int64
	Shipped   int64
	Available int64
	UnitPrice decimal.Decimal
}

// OrderSummary cabecera de pedido para listados de bodega, con la farmacia
// propietaria y el estado del envío si existe.
type OrderSummary struct {
	Order          entity.Order
	PharmacyNIT    string
	ShipmentStatus *entity.ShipmentStatus
	ShippedAt      *time.Time
}

// OrderRepository puerto de persistencia de pedidos y sus líneas.
type OrderRepository interface {
	// Create inserta cabecera y líneas. Atómico cuando el repositorio está
	// atado a una transacción (TxRunner).
	Create(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error

	GetByID(ctx context.Context, id string) (*entity.Order, error)

	// GetForUpdate carga el pedido bloqueando su fila; guard de exclusión mutua
	// del allocator frente a dos envíos simultáneos del mismo pedido.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)

	Lines(ctx context.Context, orderID string) ([]entity.OrderLine, error)

	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error

	// ListByPharmacy historial de una farmacia, más reciente primero.
	// status nil = sin filtro.
	ListByPharmacy(ctx context.Context, pharmacyNIT string, status *entity.OrderStatus) ([]OrderSummary, error)

	// ListAll todos los pedidos para la vista de bodega, más reciente primero.
	ListAll(ctx context.Context, status *entity.OrderStatus) ([]OrderSummary, error)

	// LineViews líneas enriquecidas de un conjunto de pedidos.
	LineViews(ctx context.Context, orderIDs []string) (map[string][]OrderLineView, error)
}
