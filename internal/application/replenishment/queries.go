package replenishment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// QueryUseCase listados de órdenes a proveedor (solo lectura).
type QueryUseCase struct {
	backorderRepo repository.BackorderRepository
	storageRepo   repository.StorageRepository
	productRepo   repository.ProductRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	backorderRepo repository.BackorderRepository,
	storageRepo repository.StorageRepository,
	productRepo repository.ProductRepository,
) *QueryUseCase {
	return &QueryUseCase{backorderRepo: backorderRepo, storageRepo: storageRepo, productRepo: productRepo}
}

// SupplierOrderItemView línea de orden a proveedor con nombre y precio del
// catálogo (el costo de la línea es cantidad por precio unitario vigente).
type SupplierOrderItemView struct {
	ProductID string
	Name      string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// SupplierOrderView orden a proveedor con costo total calculado.
type SupplierOrderView struct {
	BackorderID string
	CreatedAt   time.Time
	Completed   bool
	TotalCost   decimal.Decimal
	Items       []SupplierOrderItemView
}

// ListSupplierOrders órdenes a proveedor (backorders de la bodega virtual),
// más reciente primero. completed nil = sin filtro.
func (uc *QueryUseCase) ListSupplierOrders(ctx context.Context, completed *bool) ([]SupplierOrderView, error) {
	unitID, err := uc.storageRepo.SupplierUnitID(ctx)
	if err != nil {
		return nil, err
	}
	if unitID == 0 {
		return []SupplierOrderView{}, nil
	}
	backorders, err := uc.backorderRepo.ListByStorageUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	views := make([]SupplierOrderView, 0, len(backorders))
	for _, b := range backorders {
		if completed != nil && b.Completed != *completed {
			continue
		}
		lines, err := uc.backorderRepo.Lines(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		view := SupplierOrderView{
			BackorderID: b.ID,
			CreatedAt:   b.MovedAt,
			Completed:   b.Completed,
			TotalCost:   decimal.Zero,
			Items:       make([]SupplierOrderItemView, 0, len(lines)),
		}
		for _, ln := range lines {
			item := SupplierOrderItemView{ProductID: ln.ProductID, Quantity: ln.Quantity}
			if p, err := uc.productRepo.GetByID(ctx, ln.ProductID); err == nil && p != nil {
				item.Name = p.Name
				item.UnitPrice = p.UnitPrice
				view.TotalCost = view.TotalCost.Add(p.UnitPrice.Mul(decimal.NewFromInt(ln.Quantity)))
			}
			view.Items = append(view.Items, item)
		}
		views = append(views, view)
	}
	return views, nil
}

// LastRestock fecha del último reabastecimiento registrado para una bodega, o
// nil si nunca se reabasteció.
func (uc *QueryUseCase) LastRestock(ctx context.Context, storageUnitID int64) (*time.Time, error) {
	backorders, err := uc.backorderRepo.ListByStorageUnit(ctx, storageUnitID)
	if err != nil {
		return nil, err
	}
	var last *time.Time
	for _, b := range backorders {
		if !b.Completed {
			continue
		}
		if last == nil || b.MovedAt.After(*last) {
			moved := b.MovedAt
			last = &moved
		}
	}
	return last, nil
}
