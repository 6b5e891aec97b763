package repository

import (
	"context"
	"time"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// BackorderRepository puerto para órdenes de reposición (pendientes) y el
// histórico de reabastecimiento por bodega (mismo agregado, ver entity.Backorder).
type BackorderRepository interface {
	// Create inserta un backorder: pendiente (orden a proveedor) o completado
	// (registro histórico de reabastecimiento de una bodega).
	Create(ctx context.Context, b *entity.Backorder) error

	CreateLine(ctx context.Context, line *entity.BackorderLine) error

	GetByID(ctx context.Context, id string) (*entity.Backorder, error)

	// GetForUpdate bloquea la fila del backorder; guard frente a dos
	// recepciones simultáneas de la misma orden.
	GetForUpdate(ctx context.Context, id string) (*entity.Backorder, error)

	Lines(ctx context.Context, backorderID string) ([]entity.BackorderLine, error)

	// ListByStorageUnit backorders anclados a una bodega (la virtual de
	// proveedores para órdenes pendientes), más reciente primero.
	ListByStorageUnit(ctx context.Context, storageUnitID int64) ([]entity.Backorder, error)

	// MarkCompleted fija Completed=true y MovedAt. Debe invocarse a lo sumo una
	// vez por backorder (el caso de uso lo garantiza con GetForUpdate).
	MarkCompleted(ctx context.Context, id string, movedAt time.Time) error
}

// SupplierRepository alta de proveedores (incluidos los placeholder de órdenes
// automáticas).
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
}
