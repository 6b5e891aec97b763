package dto

import "github.com/farmalink/suministro-api/internal/domain/entity"

// ProductDTO producto del catálogo con disponibilidad agregada.
type ProductDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	UnitPrice    string `json:"unit_price"`
	Manufacturer string `json:"manufacturer"`
	Dosage       string `json:"dosage"`
	Available    int64  `json:"available"`
}

// FromProductAvailability convierte la entidad al DTO.
func FromProductAvailability(pa entity.ProductAvailability) ProductDTO {
	return ProductDTO{
		ProductID:    pa.ID,
		Name:         pa.Name,
		Category:     pa.Category,
		UnitPrice:    pa.UnitPrice.StringFixed(2),
		Manufacturer: pa.Manufacturer,
		Dosage:       pa.Dosage,
		Available:    pa.Available,
	}
}
