package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrDuplicate            = errors.New("recurso duplicado")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrOrderNotFound        = errors.New("pedido no encontrado")
	ErrOrderLocked          = errors.New("pedido con envío: estado congelado")
	ErrShipmentExists       = errors.New("el pedido ya tiene envío")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrActiveContractExists = errors.New("la farmacia ya tiene un contrato vigente")
	ErrBackorderNotFound    = errors.New("orden a proveedor no encontrada")
	ErrBackorderCompleted   = errors.New("orden a proveedor ya recibida")
	ErrEmptyBackorder       = errors.New("orden a proveedor sin líneas")
)
