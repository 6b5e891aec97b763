package dto

import (
	"time"

	"github.com/farmalink/suministro-api/internal/application/replenishment"
)

// CreateBackorderRequest cuerpo de creación de orden a proveedor.
type CreateBackorderRequest struct {
	Items []BackorderItemRequest `json:"items"`
}

// BackorderItemRequest línea solicitada al proveedor.
type BackorderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// SupplierOrderItemDTO línea de orden a proveedor con datos de catálogo.
type SupplierOrderItemDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// SupplierOrderDTO orden a proveedor con costo total.
type SupplierOrderDTO struct {
	BackorderID string                 `json:"backorder_id"`
	CreatedAt   time.Time              `json:"created_at"`
	Completed   bool                   `json:"completed"`
	StatusLabel string                 `json:"status_label"`
	TotalCost   string                 `json:"total_cost"`
	Items       []SupplierOrderItemDTO `json:"items"`
}

// ReceiveResultDTO resultado de la recepción de una orden a proveedor.
type ReceiveResultDTO struct {
	BackorderID   string    `json:"backorder_id"`
	ReceivedAt    time.Time `json:"received_at"`
	UnitsTouched  []int64   `json:"units_touched"`
	LinesReceived int       `json:"lines_received"`
}

// FromSupplierOrderView convierte la vista de aplicación al DTO.
func FromSupplierOrderView(v replenishment.SupplierOrderView) SupplierOrderDTO {
	label := "Pendiente"
	if v.Completed {
		label = "Recibida"
	}
	out := SupplierOrderDTO{
		BackorderID: v.BackorderID,
		CreatedAt:   v.CreatedAt,
		Completed:   v.Completed,
		StatusLabel: label,
		TotalCost:   v.TotalCost.StringFixed(2),
		Items:       make([]SupplierOrderItemDTO, 0, len(v.Items)),
	}
	for _, it := range v.Items {
		out.Items = append(out.Items, SupplierOrderItemDTO{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
		})
	}
	return out
}

// FromReceiveResult convierte el resultado de recepción al DTO.
func FromReceiveResult(r *replenishment.ReceiveResult) ReceiveResultDTO {
	return ReceiveResultDTO{
		BackorderID:   r.BackorderID,
		ReceivedAt:    r.ReceivedAt,
		UnitsTouched:  r.UnitsTouched,
		LinesReceived: r.LinesReceived,
	}
}
