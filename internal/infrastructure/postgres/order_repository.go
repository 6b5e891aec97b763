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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta cabecera y líneas del pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order, lines []entity.OrderLine) error {
	query := `
		INSERT INTO orders (id, pharmacy_nit, status, base_cost, discount_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.PharmacyNIT, order.Status, order.BaseCost, order.DiscountPercent, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for _, ln := range lines {
		lineQuery := `
			INSERT INTO order_lines (order_id, product_id, requested)
			VALUES ($1, $2, $3)`
		if _, err := r.q.Exec(ctx, lineQuery, order.ID, ln.ProductID, ln.Requested); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido por ID, nil si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el pedido y bloquea la fila (SELECT FOR UPDATE).
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.Order, error) {
	query := `
		SELECT id, pharmacy_nit, status, base_cost, discount_percent, created_at
		FROM orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.PharmacyNIT, &o.Status, &o.BaseCost, &o.DiscountPercent, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// Lines líneas del pedido.
func (r *OrderRepo) Lines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT order_id, product_id, requested
		FROM order_lines WHERE order_id = $1`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderLine
	for rows.Next() {
		var ln entity.OrderLine
		if err := rows.Scan(&ln.OrderID, &ln.ProductID, &ln.Requested); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		out = append(out, ln)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) error {
	tag, err := r.q.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListByPharmacy historial de pedidos de una farmacia, más reciente primero.
func (r *OrderRepo) ListByPharmacy(ctx context.Context, pharmacyNIT string, status *entity.OrderStatus) ([]repository.OrderSummary, error) {
	query := `
		SELECT o.id, o.pharmacy_nit, o.status, o.base_cost, o.discount_percent, o.created_at,
		       s.status, s.shipped_at
		FROM orders o
		LEFT JOIN shipments s ON s.order_id = o.id
		WHERE o.pharmacy_nit = $1 AND ($2::text IS NULL OR o.status = $2)
		ORDER BY o.created_at DESC`
	return r.listSummaries(ctx, query, pharmacyNIT, statusArg(status))
}

// ListAll todos los pedidos para la vista de bodega, más reciente primero.
func (r *OrderRepo) ListAll(ctx context.Context, status *entity.OrderStatus) ([]repository.OrderSummary, error) {
	query := `
		SELECT o.id, o.pharmacy_nit, o.status, o.base_cost, o.discount_percent, o.created_at,
		       s.status, s.shipped_at
		FROM orders o
		LEFT JOIN shipments s ON s.order_id = o.id
		WHERE ($1::text IS NULL OR o.status = $1)
		ORDER BY o.created_at DESC`
	return r.listSummaries(ctx, query, statusArg(status))
}

func statusArg(status *entity.OrderStatus) any {
	if status == nil {
		return nil
	}
	return string(*status)
}

func (r *OrderRepo) listSummaries(ctx context.Context, query string, args ...any) ([]repository.OrderSummary, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []repository.OrderSummary
	for rows.Next() {
		var s repository.OrderSummary
		if err := rows.Scan(
			&s.Order.ID, &s.Order.PharmacyNIT, &s.Order.Status, &s.Order.BaseCost,
			&s.Order.DiscountPercent, &s.Order.CreatedAt,
			&s.ShipmentStatus, &s.ShippedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order summary: %w", err)
		}
		s.PharmacyNIT = s.Order.PharmacyNIT
		out = append(out, s)
	}
	return out, rows.Err()
}

// LineViews líneas enriquecidas (pedido, enviado, disponible) de varios pedidos.
func (r *OrderRepo) LineViews(ctx context.Context, orderIDs []string) (map[string][]repository.OrderLineView, error) {
	query := `
		SELECT ol.order_id, ol.product_id, p.name, ol.requested,
		       COALESCE(sl.shipped, 0),
		       COALESCE(av.total, 0),
		       p.unit_price
		FROM order_lines ol
		JOIN products p ON p.id = ol.product_id
		LEFT JOIN (
			SELECT s.order_id, l.product_id, SUM(l.shipped) AS shipped
			FROM shipments s
			JOIN shipment_lines l ON l.shipment_id = s.id
			GROUP BY s.order_id, l.product_id
		) sl ON sl.order_id = ol.order_id AND sl.product_id = ol.product_id
		LEFT JOIN (
			SELECT product_id, SUM(quantity) AS total
			FROM stock_positions
			GROUP BY product_id
		) av ON av.product_id = ol.product_id
		WHERE ol.order_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list line views: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]repository.OrderLineView, len(orderIDs))
	for rows.Next() {
		var v repository.OrderLineView
		if err := rows.Scan(
			&v.OrderID, &v.ProductID, &v.Name, &v.Requested, &v.Shipped, &v.Available, &v.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan line view: %w", err)
		}
		out[v.OrderID] = append(out[v.OrderID], v)
	}
	return out, rows.Err()
}
