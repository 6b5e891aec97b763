package repository

import (
	"context"

	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// PositionRepository es el puerto del libro de inventario por posición física.
// Las variantes ForUpdate bloquean las filas leídas (SELECT ... FOR UPDATE);
// deben usarse siempre dentro de una transacción para que dos envíos
// concurrentes no lean la misma cantidad pre-decremento y sobrevendan.
type PositionRepository interface {
	// ListForProductForUpdate devuelve las posiciones de un producto ordenadas
	// por (bodega, pasillo, estante) ascendente, el orden fijo de drenaje del
	// allocator, con bloqueo de fila.
	ListForProductForUpdate(ctx context.Context, productID string) ([]entity.StockPosition, error)

	// BestForProductForUpdate devuelve la posición con mayor cantidad del
	// producto (desempate arbitrario), o nil si el producto no tiene ninguna.
	BestForProductForUpdate(ctx context.Context, productID string) (*entity.StockPosition, error)

	// Decrement resta amount de la posición; amount debe ser menor o igual a la
	// cantidad actual. Si la posición queda en 0 la fila se elimina (nunca quedan filas
	// muertas en cero).
	Decrement(ctx context.Context, pos entity.StockPosition, amount int64) error

	// Increment suma amount al slot para el producto, creando la fila si no
	// existe. amount debe ser positivo.
	Increment(ctx context.Context, productID string, slot entity.StorageSlot, amount int64) error

	// AvailableByProducts disponibilidad agregada (suma de posiciones) por
	// producto; productos sin stock no aparecen en el mapa.
	AvailableByProducts(ctx context.Context, productIDs []string) (map[string]int64, error)
}
