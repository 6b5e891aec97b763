package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus enum cerrado de estados de pedido. El mapeo a etiquetas de
// presentación vive en la capa HTTP, nunca aquí.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// Valid reporta si el valor pertenece al enum.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reporta si el estado no admite más transiciones.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusShipped || s == OrderStatusCancelled
}

// Order es un pedido de farmacia contra la bodega compartida.
// DiscountPercent se fotografía del contrato activo al crear el pedido y no se
// recalcula jamás; BaseCost es el total ya descontado.
type Order struct {
	ID              string
	PharmacyNIT     string
	Status          OrderStatus
	BaseCost        decimal.Decimal
	DiscountPercent int32
	CreatedAt       time.Time
}

// OrderLine línea de pedido. Inmutable tras la creación: la cantidad enviada se
// registra aparte en ShipmentLine, nunca mutando la cantidad pedida.
type OrderLine struct {
	OrderID   string
	ProductID string
	Requested int64
}
