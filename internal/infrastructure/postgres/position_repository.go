package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ repository.PositionRepository = (*PositionRepo)(nil)

// PositionRepo implementación de PositionRepository sobre PostgreSQL (usable con pool o tx).
type PositionRepo struct {
	q Querier
}

// NewPositionRepository construye el adaptador del libro de inventario. Pasar pool o tx (Querier).
func NewPositionRepository(q Querier) *PositionRepo {
	return &PositionRepo{q: q}
}

// ListForProductForUpdate posiciones del producto en orden fijo de drenaje, con bloqueo de fila.
func (r *PositionRepo) ListForProductForUpdate(ctx context.Context, productID string) ([]entity.StockPosition, error) {
	query := `
		SELECT product_id, storage_unit_id, aisle, shelf, quantity
		FROM stock_positions
		WHERE product_id = $1
		ORDER BY storage_unit_id, aisle, shelf
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list positions for update: %w", err)
	}
	defer rows.Close()

	var out []entity.StockPosition
	for rows.Next() {
		var p entity.StockPosition
		if err := rows.Scan(&p.ProductID, &p.StorageUnitID, &p.Aisle, &p.Shelf, &p.Quantity); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// BestForProductForUpdate la posición con mayor cantidad del producto, con bloqueo de fila.
func (r *PositionRepo) BestForProductForUpdate(ctx context.Context, productID string) (*entity.StockPosition, error) {
	query := `
		SELECT product_id, storage_unit_id, aisle, shelf, quantity
		FROM stock_positions
		WHERE product_id = $1
		ORDER BY quantity DESC
		LIMIT 1
		FOR UPDATE`
	var p entity.StockPosition
	err := r.q.QueryRow(ctx, query, productID).Scan(
		&p.ProductID, &p.StorageUnitID, &p.Aisle, &p.Shelf, &p.Quantity,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("best position for update: %w", err)
	}
	return &p, nil
}

// Decrement resta amount y elimina la fila si queda en cero.
func (r *PositionRepo) Decrement(ctx context.Context, pos entity.StockPosition, amount int64) error {
	query := `
		UPDATE stock_positions
		SET quantity = quantity - $5
		WHERE product_id = $1 AND storage_unit_id = $2 AND aisle = $3 AND shelf = $4
		  AND quantity >= $5`
	tag, err := r.q.Exec(ctx, query, pos.ProductID, pos.StorageUnitID, pos.Aisle, pos.Shelf, amount)
	if err != nil {
		return fmt.Errorf("decrement position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("decrement position: fila ausente o cantidad insuficiente")
	}
	// sin filas muertas: una posición en 0 se elimina
	cleanup := `
		DELETE FROM stock_positions
		WHERE product_id = $1 AND storage_unit_id = $2 AND aisle = $3 AND shelf = $4
		  AND quantity = 0`
	if _, err := r.q.Exec(ctx, cleanup, pos.ProductID, pos.StorageUnitID, pos.Aisle, pos.Shelf); err != nil {
		return fmt.Errorf("delete empty position: %w", err)
	}
	return nil
}

// Increment suma amount al slot, creando la fila si no existe.
func (r *PositionRepo) Increment(ctx context.Context, productID string, slot entity.StorageSlot, amount int64) error {
	query := `
		INSERT INTO stock_positions (product_id, storage_unit_id, aisle, shelf, quantity)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (product_id, storage_unit_id, aisle, shelf)
		DO UPDATE SET quantity = stock_positions.quantity + EXCLUDED.quantity`
	if _, err := r.q.Exec(ctx, query, productID, slot.StorageUnitID, slot.Aisle, slot.Shelf, amount); err != nil {
		return fmt.Errorf("increment position: %w", err)
	}
	return nil
}

// AvailableByProducts disponibilidad agregada por producto.
func (r *PositionRepo) AvailableByProducts(ctx context.Context, productIDs []string) (map[string]int64, error) {
	query := `
		SELECT product_id, SUM(quantity)
		FROM stock_positions
		WHERE product_id = ANY($1)
		GROUP BY product_id`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("available by products: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64, len(productIDs))
	for rows.Next() {
		var id string
		var total int64
		if err := rows.Scan(&id, &total); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		out[id] = total
	}
	return out, rows.Err()
}
