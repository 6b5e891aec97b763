package entity

// StorageUnit representa una bodega física identificada por un entero secuencial.
// La unidad virtual SupplierStorageLabel agrupa las órdenes a proveedor y nunca
// recibe posiciones de stock.
type StorageUnit struct {
	ID       int64
	Location string
}

// SupplierStorageLabel etiqueta de la bodega virtual que ancla las órdenes a
// proveedor pendientes (ver replenishment.CreateBackorderUseCase).
const SupplierStorageLabel = "SUPPLIER_ORDERS_VIRTUAL"

// StorageSlot es una ubicación física (pasillo, estante) dentro de una bodega.
// Un slot sin fila en stock_positions está libre y puede recibir cualquier producto.
type StorageSlot struct {
	StorageUnitID int64
	Aisle         int32
	Shelf         int32
}

// StockPosition es la fila del libro de inventario: cantidad de UN producto en
// un slot concreto. Invariante: una posición con cantidad 0 no persiste (se
// elimina la fila, nunca se deja en cero).
type StockPosition struct {
	ProductID     string
	StorageUnitID int64
	Aisle         int32
	Shelf         int32
	Quantity      int64
}

// Slot devuelve la ubicación física de la posición.
func (p StockPosition) Slot() StorageSlot {
	return StorageSlot{StorageUnitID: p.StorageUnitID, Aisle: p.Aisle, Shelf: p.Shelf}
}
