package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// ProductRepository puerto de lectura del catálogo (referencia inmutable para
// el motor).
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// PricesByIDs precios unitarios de varios productos en un solo viaje.
	// El mapa solo contiene los IDs encontrados.
	PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)

	// ListWithAvailability catálogo completo con disponibilidad agregada,
	// ordenado por nombre.
	ListWithAvailability(ctx context.Context) ([]entity.ProductAvailability, error)
}

// PharmacyRepository lectura de farmacias registradas (la capa de identidad
// externa es quien las da de alta).
type PharmacyRepository interface {
	GetByNIT(ctx context.Context, nit string) (*entity.Pharmacy, error)
}
