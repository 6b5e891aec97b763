package replenishment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// ReceiveBackorderUseCase asigna el stock recibido de proveedor a posiciones
// físicas y marca la orden como completada.
//
// Política de concentración: el stock entrante engorda la posición más llena
// del producto en vez de repartirse; solo si el producto no tiene posición en
// ninguna bodega se ocupa una ubicación libre (o se acuña una bodega nueva).
type ReceiveBackorderUseCase struct {
	txRunner TxRunner
}

// NewReceiveBackorderUseCase construye el caso de uso.
func NewReceiveBackorderUseCase(txRunner TxRunner) *ReceiveBackorderUseCase {
	return &ReceiveBackorderUseCase{txRunner: txRunner}
}

// ReceiveResult resultado estructurado de la recepción.
type ReceiveResult struct {
	BackorderID   string
	ReceivedAt    time.Time
	UnitsTouched  []int64 // bodegas que recibieron stock (histórico registrado)
	LinesReceived int
}

// Receive procesa la llegada de la orden a proveedor en una única transacción:
// incrementa posición por línea, deja un registro histórico de reabastecimiento
// por cada bodega tocada y fija el flag de completado (de false a true una sola vez,
// garantizado por el bloqueo de fila del backorder). Cualquier error revierte
// todo; nunca se crea una posición con cantidad no positiva.
func (uc *ReceiveBackorderUseCase) Receive(ctx context.Context, backorderID string) (*ReceiveResult, error) {
	if backorderID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *ReceiveResult
	err := uc.txRunner.Run(ctx, func(
		backorderRepo repository.BackorderRepository,
		positionRepo repository.PositionRepository,
		storageRepo repository.StorageRepository,
		_ repository.SupplierRepository,
	) error {
		backorder, err := backorderRepo.GetForUpdate(ctx, backorderID)
		if err != nil {
			return err
		}
		if backorder == nil {
			return domain.ErrBackorderNotFound
		}
		// Solo las órdenes ancladas a la bodega virtual de proveedores son
		// recibibles; los registros históricos de reabastecimiento comparten
		// la entidad pero viven en bodegas físicas.
		supplierUnitID, err := storageRepo.SupplierUnitID(ctx)
		if err != nil {
			return err
		}
		if supplierUnitID == 0 || backorder.StorageUnitID != supplierUnitID {
			return domain.ErrBackorderNotFound
		}
		if backorder.Completed {
			return domain.ErrBackorderCompleted
		}

		lines, err := backorderRepo.Lines(ctx, backorderID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyBackorder
		}

		receivedAt := time.Now()
		touched := make(map[int64]struct{})
		for _, ln := range lines {
			if ln.Quantity <= 0 {
				continue
			}
			unitID, err := uc.placeLine(ctx, positionRepo, storageRepo, ln)
			if err != nil {
				return err
			}
			touched[unitID] = struct{}{}
		}

		units := make([]int64, 0, len(touched))
		for unitID := range touched {
			// histórico: "la bodega unitID se reabasteció en receivedAt"
			if err := backorderRepo.Create(ctx, &entity.Backorder{
				ID:            uuid.New().String(),
				StorageUnitID: unitID,
				Completed:     true,
				MovedAt:       receivedAt,
			}); err != nil {
				return err
			}
			units = append(units, unitID)
		}

		if err := backorderRepo.MarkCompleted(ctx, backorderID, receivedAt); err != nil {
			return err
		}

		result = &ReceiveResult{
			BackorderID:   backorderID,
			ReceivedAt:    receivedAt,
			UnitsTouched:  units,
			LinesReceived: len(lines),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// placeLine decide la posición de destino de una línea recibida y la
// incrementa. Devuelve la bodega tocada.
func (uc *ReceiveBackorderUseCase) placeLine(
	ctx context.Context,
	positionRepo repository.PositionRepository,
	storageRepo repository.StorageRepository,
	ln entity.BackorderLine,
) (int64, error) {
	best, err := positionRepo.BestForProductForUpdate(ctx, ln.ProductID)
	if err != nil {
		return 0, err
	}
	if best != nil {
		if err := positionRepo.Increment(ctx, ln.ProductID, best.Slot(), ln.Quantity); err != nil {
			return 0, err
		}
		return best.StorageUnitID, nil
	}

	// producto sin posición en ninguna bodega: ubicación libre o bodega nueva
	slot, err := storageRepo.FreeSlot(ctx)
	if err != nil {
		return 0, err
	}
	if slot == nil {
		minted, err := storageRepo.MintSlot(ctx)
		if err != nil {
			return 0, err
		}
		slot = &minted
	}
	if err := positionRepo.Increment(ctx, ln.ProductID, *slot, ln.Quantity); err != nil {
		return 0, err
	}
	return slot.StorageUnitID, nil
}
