package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/application/replenishment"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)
var _ replenishment.TxRunner = (*ReplenishmentTxRunner)(nil)

// TxRunner ejecuta callbacks de pedidos dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	shipmentRepo repository.ShipmentRepository,
	positionRepo repository.PositionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx), NewShipmentRepository(tx), NewPositionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// ReplenishmentTxRunner ejecuta callbacks de reposición dentro de una
// transacción PostgreSQL.
type ReplenishmentTxRunner struct {
	pool *pgxpool.Pool
}

// NewReplenishmentTxRunner construye el runner con el pool.
func NewReplenishmentTxRunner(pool *pgxpool.Pool) *ReplenishmentTxRunner {
	return &ReplenishmentTxRunner{pool: pool}
}

// Run inicia una transacción con los repos de reposición atados a la tx.
func (r *ReplenishmentTxRunner) Run(ctx context.Context, fn func(
	backorderRepo repository.BackorderRepository,
	positionRepo repository.PositionRepository,
	storageRepo repository.StorageRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewBackorderRepository(tx),
		NewPositionRepository(tx),
		NewStorageRepository(tx),
		NewSupplierRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
