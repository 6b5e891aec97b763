package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus enum cerrado de estados de envío.
type ShipmentStatus string

const (
	ShipmentStatusComplete ShipmentStatus = "COMPLETE"
	ShipmentStatusPartial  ShipmentStatus = "PARTIAL"
)

// Valid reporta si el valor pertenece al enum.
func (s ShipmentStatus) Valid() bool {
	return s == ShipmentStatusComplete || s == ShipmentStatusPartial
}

// Shipment es el envío de un pedido (relación 1:1, como máximo un envío por
// pedido; el allocator lo garantiza dentro de la transacción). RouteToken es un
// valor opaco de display sin garantía de unicidad; no usar como identificador.
type Shipment struct {
	ID         string
	OrderID    string
	RouteToken int32
	Status     ShipmentStatus
	FinalCost  decimal.Decimal
	ShippedAt  time.Time
}

// ShipmentLine cantidad realmente enviada de un producto. La suma por producto
// nunca excede lo pedido en la OrderLine correspondiente.
type ShipmentLine struct {
	ShipmentID string
	ProductID  string
	Shipped    int64
}
