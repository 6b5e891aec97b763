package replenishment

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de reposición atados a esa tx. La recepción de una orden a
// proveedor (incrementos de posición, histórico y flag de completado) comitea
// entera o no comitea.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		backorderRepo repository.BackorderRepository,
		positionRepo repository.PositionRepository,
		storageRepo repository.StorageRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}
