package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

// ShipmentRepo implementación de ShipmentRepository sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador de envíos. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// ExistsForOrder reporta si el pedido ya tiene envío.
func (r *ShipmentRepo) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shipments WHERE order_id = $1)`, orderID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("shipment exists: %w", err)
	}
	return exists, nil
}

// GetByOrder obtiene el envío de un pedido, nil si no hay.
func (r *ShipmentRepo) GetByOrder(ctx context.Context, orderID string) (*entity.Shipment, error) {
	query := `
		SELECT id, order_id, route_token, status, final_cost, shipped_at
		FROM shipments WHERE order_id = $1`
	var s entity.Shipment
	err := r.q.QueryRow(ctx, query, orderID).Scan(
		&s.ID, &s.OrderID, &s.RouteToken, &s.Status, &s.FinalCost, &s.ShippedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	return &s, nil
}

// Create inserta el envío y sus líneas. El índice único sobre order_id es la
// última defensa contra el doble despacho.
func (r *ShipmentRepo) Create(ctx context.Context, shipment *entity.Shipment, lines []entity.ShipmentLine) error {
	query := `
		INSERT INTO shipments (id, order_id, route_token, status, final_cost, shipped_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		shipment.ID, shipment.OrderID, shipment.RouteToken, shipment.Status,
		shipment.FinalCost, shipment.ShippedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrShipmentExists
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	for _, ln := range lines {
		lineQuery := `
			INSERT INTO shipment_lines (shipment_id, product_id, shipped)
			VALUES ($1, $2, $3)`
		if _, err := r.q.Exec(ctx, lineQuery, shipment.ID, ln.ProductID, ln.Shipped); err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}
	return nil
}

// Lines líneas de un envío.
func (r *ShipmentRepo) Lines(ctx context.Context, shipmentID string) ([]entity.ShipmentLine, error) {
	query := `
		SELECT shipment_id, product_id, shipped
		FROM shipment_lines WHERE shipment_id = $1`
	rows, err := r.q.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment lines: %w", err)
	}
	defer rows.Close()

	var out []entity.ShipmentLine
	for rows.Next() {
		var ln entity.ShipmentLine
		if err := rows.Scan(&ln.ShipmentID, &ln.ProductID, &ln.Shipped); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}
