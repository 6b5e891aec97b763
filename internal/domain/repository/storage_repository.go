package repository

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// StorageRepository puerto de bodegas y ubicaciones físicas.
type StorageRepository interface {
	// FreeSlot devuelve una ubicación registrada que no está ocupada por
	// ningún producto, o nil si no queda ninguna libre.
	FreeSlot(ctx context.Context) (*entity.StorageSlot, error)

	// MintSlot crea una bodega nueva con su primer (pasillo, estante) y lo
	// devuelve. Se usa cuando la recepción no encuentra ubicación libre.
	MintSlot(ctx context.Context) (entity.StorageSlot, error)

	// SupplierUnitID devuelve el ID de la bodega virtual de proveedores, o 0
	// si aún no existe.
	SupplierUnitID(ctx context.Context) (int64, error)

	// EnsureSupplierUnit devuelve el ID de la bodega virtual de proveedores,
	// creándola si no existe.
	EnsureSupplierUnit(ctx context.Context) (int64, error)
}
