package catalog

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// UseCase catálogo de productos con disponibilidad agregada. Alimenta la
// pantalla de pedidos de farmacia y la de compras a proveedor de bodega.
type UseCase struct {
	productRepo repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository) *UseCase {
	return &UseCase{productRepo: productRepo}
}

// List productos ordenados por nombre con stock total.
func (uc *UseCase) List(ctx context.Context) ([]entity.ProductAvailability, error) {
	return uc.productRepo.ListWithAvailability(ctx)
}
