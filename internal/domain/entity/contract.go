package entity

import "time"

// DeliveryFrequency frecuencia de entrega pactada en el contrato.
type DeliveryFrequency string

const (
	DeliveryWeekly   DeliveryFrequency = "WEEKLY"
	DeliveryBiweekly DeliveryFrequency = "BIWEEKLY"
	DeliveryMonthly  DeliveryFrequency = "MONTHLY"
)

// Valid reporta si el valor pertenece al enum.
func (f DeliveryFrequency) Valid() bool {
	return f == DeliveryWeekly || f == DeliveryBiweekly || f == DeliveryMonthly
}

// PaymentMethod método de pago pactado en el contrato.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// Valid reporta si el valor pertenece al enum.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard || m == PaymentTransfer
}

// Contract acuerdo de descuento de una farmacia. Una farmacia puede acumular
// contratos históricos pero a lo sumo uno activo (chequeo al firmar, no
// constraint de BD). Un contrato cuenta como activo mientras ExpiresAt sea
// estrictamente posterior a hoy.
type Contract struct {
	ID                string
	PharmacyNIT       string
	DeliveryFrequency DeliveryFrequency
	PaymentMethod     PaymentMethod
	SignedAt          time.Time
	ExpiresAt         time.Time
	DurationMonths    int32
}

// ActiveAt reporta si el contrato está vigente en la fecha dada.
func (c Contract) ActiveAt(today time.Time) bool {
	return c.ExpiresAt.After(today)
}
