package entity

import "time"

// Backorder lote de reposición del lado bodega. Cumple doble papel, heredado
// del modelo de datos: con Completed=false es una orden a proveedor pendiente
// (anclada a la bodega virtual de proveedores); con Completed=true y StorageUnitID
// de una bodega real es el registro histórico "esta bodega se reabasteció en
// MovedAt". ReceiveBackorderUseCase produce ambos.
type Backorder struct {
	ID            string
	StorageUnitID int64
	Completed     bool
	MovedAt       time.Time
}

// BackorderLine línea de una orden a proveedor: producto, proveedor y cantidad
// pactada. La cantidad es fija desde la creación.
type BackorderLine struct {
	BackorderID string
	ProductID   string
	SupplierID  string
	Quantity    int64
}

// Supplier proveedor registrado. Las órdenes automáticas crean proveedores
// placeholder con nombre y teléfono por defecto.
type Supplier struct {
	ID    string
	Name  string
	Phone string
}

// AutoSupplierName y AutoSupplierPhone datos del proveedor placeholder que se
// inserta al registrar líneas de orden a proveedor sin proveedor explícito.
const (
	AutoSupplierName  = "AUTO_SUPPLIER"
	AutoSupplierPhone = "2100000000"
)
