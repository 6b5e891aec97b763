package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto farmacéutico del catálogo (referencia inmutable
// para el motor: el precio unitario se lee al crear pedidos, nunca se recalcula).
type Product struct {
	ID           string
	Name         string
	Category     string
	UnitPrice    decimal.Decimal // costo unitario base del catálogo
	Manufacturer string
	Dosage       string // presentación/concentración, solo display
	CreatedAt    time.Time
}

// ProductAvailability producto junto con su disponibilidad agregada en bodega
// (suma de todas las posiciones). Usado por catálogo y estimación de entrega.
type ProductAvailability struct {
	Product
	Available int64
}
