package entity

// Pharmacy farmacia cliente identificada por su NIT. La capa de identidad
// externa ya validó el NIT; el motor solo lo usa como dueño de pedidos y
// contratos.
type Pharmacy struct {
	NIT     string
	Name    string
	Address string
}
