package dto

import (
	"time"

	"github.com/farmalink/suministro-api/internal/application/contracts"
)

// SignContractRequest cuerpo de firma de contrato.
type SignContractRequest struct {
	DurationMonths    int32  `json:"duration_months"`
	DeliveryFrequency string `json:"delivery_frequency"`
	PaymentMethod     string `json:"payment_method"`
}

// ContractDTO contrato anotado para respuesta.
type ContractDTO struct {
	ContractID        string    `json:"contract_id"`
	PharmacyNIT       string    `json:"pharmacy_nit"`
	DeliveryFrequency string    `json:"delivery_frequency"`
	PaymentMethod     string    `json:"payment_method"`
	SignedAt          time.Time `json:"signed_at"`
	ExpiresAt         time.Time `json:"expires_at"`
	DurationMonths    int32     `json:"duration_months"`
	Active            bool      `json:"active"`
	Expired           bool      `json:"expired"`
	DiscountPercent   int32     `json:"discount_percent"`
}

// FromContractView convierte la vista de aplicación al DTO.
func FromContractView(v contracts.ContractView) ContractDTO {
	return ContractDTO{
		ContractID:        v.Contract.ID,
		PharmacyNIT:       v.Contract.PharmacyNIT,
		DeliveryFrequency: string(v.Contract.DeliveryFrequency),
		PaymentMethod:     string(v.Contract.PaymentMethod),
		SignedAt:          v.Contract.SignedAt,
		ExpiresAt:         v.Contract.ExpiresAt,
		DurationMonths:    v.Contract.DurationMonths,
		Active:            v.Active,
		Expired:           v.Expired,
		DiscountPercent:   v.DiscountPercent,
	}
}
