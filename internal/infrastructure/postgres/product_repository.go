package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.PharmacyRepository = (*PharmacyRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, name, category, unit_price, manufacturer, dosage, created_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Category, &p.UnitPrice, &p.Manufacturer, &p.Dosage, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// PricesByIDs precios unitarios de varios productos en un viaje.
func (r *ProductRepo) PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, unit_price FROM products WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("prices by ids: %w", err)
	}
	defer rows.Close()

	out := make(map[string]decimal.Decimal, len(ids))
	for rows.Next() {
		var id string
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		out[id] = price
	}
	return out, rows.Err()
}

// ListWithAvailability catálogo completo con disponibilidad agregada, por nombre.
func (r *ProductRepo) ListWithAvailability(ctx context.Context) ([]entity.ProductAvailability, error) {
	query := `
		SELECT p.id, p.name, p.category, p.unit_price, p.manufacturer, p.dosage, p.created_at,
		       COALESCE(SUM(sp.quantity), 0)
		FROM products p
		LEFT JOIN stock_positions sp ON sp.product_id = p.id
		GROUP BY p.id, p.name, p.category, p.unit_price, p.manufacturer, p.dosage, p.created_at
		ORDER BY p.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []entity.ProductAvailability
	for rows.Next() {
		var pa entity.ProductAvailability
		if err := rows.Scan(
			&pa.ID, &pa.Name, &pa.Category, &pa.UnitPrice, &pa.Manufacturer,
			&pa.Dosage, &pa.CreatedAt, &pa.Available,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

// PharmacyRepo implementación de PharmacyRepository sobre PostgreSQL (usable con pool o tx).
type PharmacyRepo struct {
	q Querier
}

// NewPharmacyRepository construye el adaptador de farmacias. Pasar pool o tx (Querier).
func NewPharmacyRepository(q Querier) *PharmacyRepo {
	return &PharmacyRepo{q: q}
}

// GetByNIT obtiene una farmacia por NIT, nil si no existe.
func (r *PharmacyRepo) GetByNIT(ctx context.Context, nit string) (*entity.Pharmacy, error) {
	query := `SELECT nit, name, address FROM pharmacies WHERE nit = $1`
	var p entity.Pharmacy
	err := r.q.QueryRow(ctx, query, nit).Scan(&p.NIT, &p.Name, &p.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pharmacy: %w", err)
	}
	return &p, nil
}
