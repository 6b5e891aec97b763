package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ repository.BackorderRepository = (*BackorderRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// BackorderRepo implementación de BackorderRepository sobre PostgreSQL (usable con pool o tx).
type BackorderRepo struct {
	q Querier
}

// NewBackorderRepository construye el adaptador de backorders. Pasar pool o tx (Querier).
func NewBackorderRepository(q Querier) *BackorderRepo {
	return &BackorderRepo{q: q}
}

// Create inserta un backorder (pendiente o registro histórico completado).
func (r *BackorderRepo) Create(ctx context.Context, b *entity.Backorder) error {
	query := `
		INSERT INTO backorders (id, storage_unit_id, completed, moved_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, b.ID, b.StorageUnitID, b.Completed, b.MovedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert backorder: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de orden a proveedor.
func (r *BackorderRepo) CreateLine(ctx context.Context, line *entity.BackorderLine) error {
	query := `
		INSERT INTO backorder_lines (backorder_id, product_id, supplier_id, quantity)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.q.Exec(ctx, query, line.BackorderID, line.ProductID, line.SupplierID, line.Quantity); err != nil {
		return fmt.Errorf("insert backorder line: %w", err)
	}
	return nil
}

// GetByID obtiene un backorder, nil si no existe.
func (r *BackorderRepo) GetByID(ctx context.Context, id string) (*entity.Backorder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el backorder y bloquea la fila (SELECT FOR UPDATE).
func (r *BackorderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Backorder, error) {
	return r.get(ctx, id, true)
}

func (r *BackorderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Backorder, error) {
	query := `
		SELECT id, storage_unit_id, completed, moved_at
		FROM backorders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.Backorder
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.StorageUnitID, &b.Completed, &b.MovedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get backorder: %w", err)
	}
	return &b, nil
}

// Lines líneas de un backorder.
func (r *BackorderRepo) Lines(ctx context.Context, backorderID string) ([]entity.BackorderLine, error) {
	query := `
		SELECT backorder_id, product_id, supplier_id, quantity
		FROM backorder_lines WHERE backorder_id = $1`
	rows, err := r.q.Query(ctx, query, backorderID)
	if err != nil {
		return nil, fmt.Errorf("list backorder lines: %w", err)
	}
	defer rows.Close()

	var out []entity.BackorderLine
	for rows.Next() {
		var ln entity.BackorderLine
		if err := rows.Scan(&ln.BackorderID, &ln.ProductID, &ln.SupplierID, &ln.Quantity); err != nil {
			return nil, fmt.Errorf("scan backorder line: %w", err)
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}

// ListByStorageUnit backorders anclados a una bodega, más reciente primero.
func (r *BackorderRepo) ListByStorageUnit(ctx context.Context, storageUnitID int64) ([]entity.Backorder, error) {
	query := `
		SELECT id, storage_unit_id, completed, moved_at
		FROM backorders WHERE storage_unit_id = $1
		ORDER BY moved_at DESC`
	rows, err := r.q.Query(ctx, query, storageUnitID)
	if err != nil {
		return nil, fmt.Errorf("list backorders: %w", err)
	}
	defer rows.Close()

	var out []entity.Backorder
	for rows.Next() {
		var b entity.Backorder
		if err := rows.Scan(&b.ID, &b.StorageUnitID, &b.Completed, &b.MovedAt); err != nil {
			return nil, fmt.Errorf("scan backorder: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// MarkCompleted fija Completed y MovedAt.
func (r *BackorderRepo) MarkCompleted(ctx context.Context, id string, movedAt time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE backorders SET completed = TRUE, moved_at = $2 WHERE id = $1`, id, movedAt)
	if err != nil {
		return fmt.Errorf("mark backorder completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBackorderNotFound
	}
	return nil
}

// SupplierRepo implementación de SupplierRepository sobre PostgreSQL (usable con pool o tx).
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// Create inserta un proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `INSERT INTO suppliers (id, name, phone) VALUES ($1, $2, $3)`
	if _, err := r.q.Exec(ctx, query, s.ID, s.Name, s.Phone); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}
