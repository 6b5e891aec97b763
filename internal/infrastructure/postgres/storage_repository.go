package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ repository.StorageRepository = (*StorageRepo)(nil)

// StorageRepo implementación de StorageRepository sobre PostgreSQL (usable con pool o tx).
type StorageRepo struct {
	q Querier
}

// NewStorageRepository construye el adaptador de bodegas. Pasar pool o tx (Querier).
func NewStorageRepository(q Querier) *StorageRepo {
	return &StorageRepo{q: q}
}

// FreeSlot una ubicación registrada sin posición de stock, excluida la bodega
// virtual de proveedores. Nil si no queda ninguna libre.
func (r *StorageRepo) FreeSlot(ctx context.Context) (*entity.StorageSlot, error) {
	query := `
		SELECT sl.storage_unit_id, sl.aisle, sl.shelf
		FROM storage_slots sl
		JOIN storage_units u ON u.id = sl.storage_unit_id
		LEFT JOIN stock_positions p
		  ON p.storage_unit_id = sl.storage_unit_id AND p.aisle = sl.aisle AND p.shelf = sl.shelf
		WHERE u.location <> $1 AND p.product_id IS NULL
		ORDER BY sl.storage_unit_id, sl.aisle, sl.shelf
		LIMIT 1`
	var slot entity.StorageSlot
	err := r.q.QueryRow(ctx, query, entity.SupplierStorageLabel).Scan(
		&slot.StorageUnitID, &slot.Aisle, &slot.Shelf,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("free slot: %w", err)
	}
	return &slot, nil
}

// MintSlot crea una bodega nueva con su primera ubicación (1, 1).
func (r *StorageRepo) MintSlot(ctx context.Context) (entity.StorageSlot, error) {
	var unitID int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO storage_units (location) VALUES ('') RETURNING id`,
	).Scan(&unitID)
	if err != nil {
		return entity.StorageSlot{}, fmt.Errorf("mint storage unit: %w", err)
	}
	if _, err := r.q.Exec(ctx,
		`UPDATE storage_units SET location = 'BODEGA_' || id WHERE id = $1`, unitID); err != nil {
		return entity.StorageSlot{}, fmt.Errorf("label storage unit: %w", err)
	}
	slot := entity.StorageSlot{StorageUnitID: unitID, Aisle: 1, Shelf: 1}
	if _, err := r.q.Exec(ctx,
		`INSERT INTO storage_slots (storage_unit_id, aisle, shelf) VALUES ($1, $2, $3)`,
		slot.StorageUnitID, slot.Aisle, slot.Shelf,
	); err != nil {
		return entity.StorageSlot{}, fmt.Errorf("mint storage slot: %w", err)
	}
	return slot, nil
}

// SupplierUnitID el ID de la bodega virtual de proveedores, 0 si no existe.
func (r *StorageRepo) SupplierUnitID(ctx context.Context) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`SELECT id FROM storage_units WHERE location = $1`, entity.SupplierStorageLabel,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("supplier unit id: %w", err)
	}
	return id, nil
}

// EnsureSupplierUnit el ID de la bodega virtual de proveedores, creándola si falta.
func (r *StorageRepo) EnsureSupplierUnit(ctx context.Context) (int64, error) {
	if id, err := r.SupplierUnitID(ctx); err != nil || id != 0 {
		return id, err
	}
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO storage_units (location) VALUES ($1) RETURNING id`, entity.SupplierStorageLabel,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create supplier unit: %w", err)
	}
	return id, nil
}
