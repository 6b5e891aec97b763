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

var _ repository.ContractRepository = (*ContractRepo)(nil)

// ContractRepo implementación de ContractRepository sobre PostgreSQL (usable con pool o tx).
type ContractRepo struct {
	q Querier
}

// NewContractRepository construye el adaptador de contratos. Pasar pool o tx (Querier).
func NewContractRepository(q Querier) *ContractRepo {
	return &ContractRepo{q: q}
}

// Create inserta un contrato.
func (r *ContractRepo) Create(ctx context.Context, c *entity.Contract) error {
	query := `
		INSERT INTO contracts (id, pharmacy_nit, delivery_frequency, payment_method, signed_at, expires_at, duration_months)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.PharmacyNIT, c.DeliveryFrequency, c.PaymentMethod, c.SignedAt, c.ExpiresAt, c.DurationMonths,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert contract: %w", err)
	}
	return nil
}

// ListByPharmacy contratos de una farmacia, firma más reciente primero.
func (r *ContractRepo) ListByPharmacy(ctx context.Context, pharmacyNIT string) ([]entity.Contract, error) {
	query := `
		SELECT id, pharmacy_nit, delivery_frequency, payment_method, signed_at, expires_at, duration_months
		FROM contracts WHERE pharmacy_nit = $1
		ORDER BY signed_at DESC`
	rows, err := r.q.Query(ctx, query, pharmacyNIT)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []entity.Contract
	for rows.Next() {
		var c entity.Contract
		if err := rows.Scan(
			&c.ID, &c.PharmacyNIT, &c.DeliveryFrequency, &c.PaymentMethod,
			&c.SignedAt, &c.ExpiresAt, &c.DurationMonths,
		); err != nil {
			return nil, fmt.Errorf("scan contract: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ActiveByPharmacy el contrato vigente (expiración estrictamente posterior a today), nil si no hay.
func (r *ContractRepo) ActiveByPharmacy(ctx context.Context, pharmacyNIT string, today time.Time) (*entity.Contract, error) {
	query := `
		SELECT id, pharmacy_nit, delivery_frequency, payment_method, signed_at, expires_at, duration_months
		FROM contracts
		WHERE pharmacy_nit = $1 AND expires_at > $2
		ORDER BY signed_at DESC
		LIMIT 1`
	var c entity.Contract
	err := r.q.QueryRow(ctx, query, pharmacyNIT, today).Scan(
		&c.ID, &c.PharmacyNIT, &c.DeliveryFrequency, &c.PaymentMethod,
		&c.SignedAt, &c.ExpiresAt, &c.DurationMonths,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("active contract: %w", err)
	}
	return &c, nil
}

// SetExpiry cambia la fecha de expiración del contrato.
func (r *ContractRepo) SetExpiry(ctx context.Context, id string, expiresAt time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE contracts SET expires_at = $2 WHERE id = $1`, id, expiresAt)
	if err != nil {
		return fmt.Errorf("set contract expiry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
