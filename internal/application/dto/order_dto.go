package dto

import (
	"time"

	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// CreateOrderRequest cuerpo de creación de pedido de farmacia.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// OrderItemRequest línea pedida.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateOrderResponse respuesta de creación con la estimación de entrega.
type CreateOrderResponse struct {
	OrderID         string    `json:"order_id"`
	Total           string    `json:"total"`
	DiscountPercent int32     `json:"discount_percent"`
	EstimatedDays   int       `json:"estimated_days"`
	EstimatedAt     time.Time `json:"estimated_at"`
}

// StatusUpdateRequest cambio de estado desde la pantalla de bodega.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

// ShipmentLineDTO línea enviada.
type ShipmentLineDTO struct {
	ProductID string `json:"product_id"`
	Shipped   int64  `json:"shipped"`
}

// ShipmentDTO envío de un pedido.
type ShipmentDTO struct {
	ShipmentID  string            `json:"shipment_id"`
	OrderID     string            `json:"order_id"`
	RouteToken  int32             `json:"route_token"`
	Status      string            `json:"status"`
	StatusLabel string            `json:"status_label"`
	FinalCost   string            `json:"final_cost"`
	ShippedAt   time.Time         `json:"shipped_at,omitempty"`
	Lines       []ShipmentLineDTO `json:"lines,omitempty"`
}

// OrderLineDTO línea de pedido enriquecida para listados.
type OrderLineDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Requested int64  `json:"requested"`
	Shipped   int64  `json:"shipped"`
	Available int64  `json:"available"`
	UnitPrice string `json:"unit_price"`
}

// OrderDTO pedido con líneas, estado y estimación para farmacia/bodega.
type OrderDTO struct {
	OrderID           string         `json:"order_id"`
	PharmacyNIT       string         `json:"pharmacy_nit"`
	Status            string         `json:"status"`
	StatusLabel       string         `json:"status_label"`
	Total             string         `json:"total"`
	DiscountPercent   int32          `json:"discount_percent"`
	CreatedAt         time.Time      `json:"created_at"`
	ShipmentStatus    *string        `json:"shipment_status,omitempty"`
	ShippedAt         *time.Time     `json:"shipped_at,omitempty"`
	EstimatedDays     int            `json:"estimated_days"`
	DeliveryRemaining string         `json:"delivery_remaining,omitempty"`
	Lines             []OrderLineDTO `json:"lines"`
}

// OrderStatusLabel etiqueta de display del estado de pedido.
func OrderStatusLabel(s entity.OrderStatus) string {
	switch s {
	case entity.OrderStatusPending:
		return "Pendiente"
	case entity.OrderStatusProcessing:
		return "En preparación"
	case entity.OrderStatusShipped:
		return "Enviado"
	case entity.OrderStatusCancelled:
		return "Cancelado"
	default:
		return string(s)
	}
}

// ShipmentStatusLabel etiqueta de display del estado de envío.
func ShipmentStatusLabel(s entity.ShipmentStatus) string {
	switch s {
	case entity.ShipmentStatusComplete:
		return "Completo"
	case entity.ShipmentStatusPartial:
		return "Parcial"
	default:
		return string(s)
	}
}

// FromOrderView convierte la vista de aplicación al DTO de respuesta.
func FromOrderView(v orders.OrderView) OrderDTO {
	out := OrderDTO{
		OrderID:         v.Summary.Order.ID,
		PharmacyNIT:     v.Summary.PharmacyNIT,
		Status:          string(v.Summary.Order.Status),
		StatusLabel:     OrderStatusLabel(v.Summary.Order.Status),
		Total:           v.Summary.Order.BaseCost.StringFixed(2),
		DiscountPercent: v.Summary.Order.DiscountPercent,
		CreatedAt:       v.Summary.Order.CreatedAt,
		EstimatedDays:   v.EstimatedDays,
		Lines:           make([]OrderLineDTO, 0, len(v.Lines)),
	}
	if v.Summary.ShipmentStatus != nil {
		s := string(*v.Summary.ShipmentStatus)
		out.ShipmentStatus = &s
		out.ShippedAt = v.Summary.ShippedAt
	}
	if v.DeliveryRemaining > 0 {
		out.DeliveryRemaining = v.DeliveryRemaining.Round(time.Minute).String()
	}
	for _, ln := range v.Lines {
		out.Lines = append(out.Lines, OrderLineDTO{
			ProductID: ln.ProductID,
			Name:      ln.Name,
			Requested: ln.Requested,
			Shipped:   ln.Shipped,
			Available: ln.Available,
			UnitPrice: ln.UnitPrice.StringFixed(2),
		})
	}
	return out
}

// FromShipmentResult convierte el resultado del despacho al DTO.
func FromShipmentResult(r *orders.ShipmentResult) ShipmentDTO {
	out := ShipmentDTO{
		ShipmentID:  r.ShipmentID,
		OrderID:     r.OrderID,
		RouteToken:  r.RouteToken,
		Status:      string(r.Status),
		StatusLabel: ShipmentStatusLabel(r.Status),
		FinalCost:   r.FinalCost.StringFixed(2),
		Lines:       make([]ShipmentLineDTO, 0, len(r.Lines)),
	}
	for _, ln := range r.Lines {
		out.Lines = append(out.Lines, ShipmentLineDTO{ProductID: ln.ProductID, Shipped: ln.Shipped})
	}
	return out
}

// FromShipment convierte la entidad persistida al DTO.
func FromShipment(s *entity.Shipment, lines []entity.ShipmentLine) ShipmentDTO {
	out := ShipmentDTO{
		ShipmentID:  s.ID,
		OrderID:     s.OrderID,
		RouteToken:  s.RouteToken,
		Status:      string(s.Status),
		StatusLabel: ShipmentStatusLabel(s.Status),
		FinalCost:   s.FinalCost.StringFixed(2),
		ShippedAt:   s.ShippedAt,
		Lines:       make([]ShipmentLineDTO, 0, len(lines)),
	}
	for _, ln := range lines {
		out.Lines = append(out.Lines, ShipmentLineDTO{ProductID: ln.ProductID, Shipped: ln.Shipped})
	}
	return out
}
