package repository

import (
	"context"
	"time"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// ContractRepository puerto de persistencia de contratos de farmacia.
type ContractRepository interface {
	Create(ctx context.Context, c *entity.Contract) error

	// ListByPharmacy contratos de una farmacia, firma más reciente primero.
	ListByPharmacy(ctx context.Context, pharmacyNIT string) ([]entity.Contract, error)

	// ActiveByPharmacy el contrato cuya expiración es estrictamente posterior a
	// today, o nil si no hay ninguno vigente.
	ActiveByPharmacy(ctx context.Context, pharmacyNIT string, today time.Time) (*entity.Contract, error)

	// SetExpiry adelanta la fecha de expiración (cancelación = expirar hoy).
	SetExpiry(ctx context.Context, id string, expiresAt time.Time) error
}
