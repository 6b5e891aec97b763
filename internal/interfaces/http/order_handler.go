package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/farmalink/suministro-api/internal/application/dto"
	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de pedidos (farmacia y bodega).
type OrderHandler struct {
	createUC      *orders.CreateOrderUseCase
	lifecycleUC   *orders.LifecycleUseCase
	queryUC       *orders.QueryUseCase
	packingSlipUC *orders.PackingSlipUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(
	createUC *orders.CreateOrderUseCase,
	lifecycleUC *orders.LifecycleUseCase,
	queryUC *orders.QueryUseCase,
	packingSlipUC *orders.PackingSlipUseCase,
) *OrderHandler {
	return &OrderHandler{
		createUC:      createUC,
		lifecycleUC:   lifecycleUC,
		queryUC:       queryUC,
		packingSlipUC: packingSlipUC,
	}
}

// Create godoc
// @Summary      Crear pedido de farmacia
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "líneas del pedido"
// @Success      201   {object}  dto.CreateOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]orders.OrderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, orders.OrderItemInput{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	res, err := h.createUC.Create(c.Context(), nit, items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "farmacia o producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateOrderResponse{
		OrderID:         res.OrderID,
		Total:           res.Total.StringFixed(2),
		DiscountPercent: res.DiscountPercent,
		EstimatedDays:   res.EstimatedDays,
		EstimatedAt:     res.EstimatedAt,
	})
}

// History godoc
// @Summary      Historial de pedidos de la farmacia autenticada
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado (PENDING|PROCESSING|SHIPPED|CANCELLED)"
// @Success      200  {array}   dto.OrderDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) History(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	status, err := statusFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
	}
	views, err := h.queryUC.HistoryForPharmacy(c.Context(), nit, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderDTOs(views))
}

// ListAll godoc
// @Summary      Todos los pedidos (pantalla de bodega)
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Success      200  {array}   dto.OrderDTO
// @Router       /api/warehouse/orders [get]
func (h *OrderHandler) ListAll(c *fiber.Ctx) error {
	status, err := statusFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
	}
	views, err := h.queryUC.ListAll(c.Context(), status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(toOrderDTOs(views))
}

// SetStatus godoc
// @Summary      Cambiar el estado de un pedido; SHIPPED despacha
// @Description  La transición a SHIPPED ejecuta la asignación de stock y crea el
//               envío; las demás solo cambian el estado. Un pedido con envío no
//               admite más cambios.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del pedido"
// @Param        body  body  dto.StatusUpdateRequest  true  "estado objetivo"
// @Success      200   {object}  dto.ShipmentDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/warehouse/orders/{id}/status [put]
func (h *OrderHandler) SetStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var in dto.StatusUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.lifecycleUC.SetStatus(c.Context(), orderID, entity.OrderStatus(in.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estado inválido"})
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrShipmentExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SHIPMENT_EXISTS", Message: "el pedido ya fue despachado"})
		case errors.Is(err, domain.ErrOrderLocked):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ORDER_LOCKED", Message: "pedido con envío: estado congelado"})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "sin stock para ninguna línea"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto del pedido no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	body := fiber.Map{
		"order_id":     res.OrderID,
		"status":       string(res.Status),
		"status_label": dto.OrderStatusLabel(res.Status),
	}
	if res.Shipment != nil {
		body["shipment"] = dto.FromShipmentResult(res.Shipment)
	}
	return c.JSON(body)
}

// GetShipment godoc
// @Summary      Envío de un pedido
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {object}  dto.ShipmentDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/orders/{id}/shipment [get]
func (h *OrderHandler) GetShipment(c *fiber.Ctx) error {
	orderID := c.Params("id")
	shipment, lines, err := h.queryUC.GetShipment(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el pedido no tiene envío"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromShipment(shipment, lines))
}

// PackingSlip godoc
// @Summary      Guía de despacho en PDF
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del pedido"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/warehouse/orders/{id}/packing-slip [get]
func (h *OrderHandler) PackingSlip(c *fiber.Ctx) error {
	orderID := c.Params("id")
	pdfBytes, err := h.packingSlipUC.Generate(c.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pedido no encontrado"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "el pedido no tiene envío"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="guia-`+orderID+`.pdf"`)
	return c.Send(pdfBytes)
}

func statusFilter(c *fiber.Ctx) (*entity.OrderStatus, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status := entity.OrderStatus(raw)
	if !status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	return &status, nil
}

func toOrderDTOs(views []orders.OrderView) []dto.OrderDTO {
	out := make([]dto.OrderDTO, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromOrderView(v))
	}
	return out
}
