package replenishment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// CreateBackorderUseCase registra una orden de compra a proveedor como
// backorder pendiente anclado a la bodega virtual de proveedores (el modelo
// heredado no tiene entidad propia para órdenes de compra).
type CreateBackorderUseCase struct {
	txRunner TxRunner
}

// NewCreateBackorderUseCase construye el caso de uso.
func NewCreateBackorderUseCase(txRunner TxRunner) *CreateBackorderUseCase {
	return &CreateBackorderUseCase{txRunner: txRunner}
}

// BackorderItemInput línea solicitada al proveedor. Las líneas con cantidad o
// precio no positivos se descartan en la validación.
type BackorderItemInput struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Create valida las líneas, asegura la bodega virtual de proveedores, crea el
// backorder pendiente y una línea por producto con su proveedor placeholder.
// Todo en una transacción.
func (uc *CreateBackorderUseCase) Create(ctx context.Context, items []BackorderItemInput) (string, error) {
	valid := make([]BackorderItemInput, 0, len(items))
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 || !it.UnitPrice.IsPositive() {
			continue
		}
		valid = append(valid, it)
	}
	if len(valid) == 0 {
		return "", domain.ErrInvalidInput
	}

	backorderID := uuid.New().String()
	err := uc.txRunner.Run(ctx, func(
		backorderRepo repository.BackorderRepository,
		_ repository.PositionRepository,
		storageRepo repository.StorageRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		unitID, err := storageRepo.EnsureSupplierUnit(ctx)
		if err != nil {
			return err
		}
		if err := backorderRepo.Create(ctx, &entity.Backorder{
			ID:            backorderID,
			StorageUnitID: unitID,
			Completed:     false,
			MovedAt:       time.Now(),
		}); err != nil {
			return err
		}
		for _, it := range valid {
			supplier := &entity.Supplier{
				ID:    uuid.New().String(),
				Name:  entity.AutoSupplierName,
				Phone: entity.AutoSupplierPhone,
			}
			if err := supplierRepo.Create(ctx, supplier); err != nil {
				return err
			}
			if err := backorderRepo.CreateLine(ctx, &entity.BackorderLine{
				BackorderID: backorderID,
				ProductID:   it.ProductID,
				SupplierID:  supplier.ID,
				Quantity:    it.Quantity,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return backorderID, nil
}
