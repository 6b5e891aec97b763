package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/application/dto"
	"github.com/farmalink/suministro-api/internal/application/replenishment"
	"github.com/farmalink/suministro-api/internal/domain"
)

// ReplenishmentHandler maneja las órdenes a proveedor y su recepción.
type ReplenishmentHandler struct {
	createUC  *replenishment.CreateBackorderUseCase
	receiveUC *replenishment.ReceiveBackorderUseCase
	queryUC   *replenishment.QueryUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(
	createUC *replenishment.CreateBackorderUseCase,
	receiveUC *replenishment.ReceiveBackorderUseCase,
	queryUC *replenishment.QueryUseCase,
) *ReplenishmentHandler {
	return &ReplenishmentHandler{createUC: createUC, receiveUC: receiveUC, queryUC: queryUC}
}

// Create godoc
// @Summary      Crear orden a proveedor
// @Tags         replenishment
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBackorderRequest  true  "líneas a pedir"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/warehouse/supplier-orders [post]
func (h *ReplenishmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBackorderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]replenishment.BackorderItemInput, 0, len(in.Items))
	for _, it := range in.Items {
		price, err := decimal.NewFromString(it.UnitPrice)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "precio unitario inválido"})
		}
		items = append(items, replenishment.BackorderItemInput{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: price,
		})
	}
	id, err := h.createUC.Create(c.Context(), items)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ninguna línea válida"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"backorder_id": id})
}

// Receive godoc
// @Summary      Recibir una orden a proveedor y ubicar el stock
// @Description  Mueve cada línea a la posición con más existencias del producto,
//               o a una ubicación libre, acuñando una bodega nueva si no hay.
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la orden a proveedor"
// @Success      200  {object}  dto.ReceiveResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/warehouse/supplier-orders/{id}/receive [post]
func (h *ReplenishmentHandler) Receive(c *fiber.Ctx) error {
	backorderID := c.Params("id")
	res, err := h.receiveUC.Receive(c.Context(), backorderID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBackorderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden a proveedor no encontrada"})
		case errors.Is(err, domain.ErrBackorderCompleted):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_RECEIVED", Message: "la orden ya fue recibida"})
		case errors.Is(err, domain.ErrEmptyBackorder):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMPTY_BACKORDER", Message: "la orden no tiene líneas"})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.FromReceiveResult(res))
}

// List godoc
// @Summary      Órdenes a proveedor, más reciente primero
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        completed  query  bool  false  "filtrar por recibidas (true) o pendientes (false)"
// @Success      200  {array}   dto.SupplierOrderDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouse/supplier-orders [get]
func (h *ReplenishmentHandler) List(c *fiber.Ctx) error {
	var completed *bool
	if raw := c.Query("completed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtro completed inválido"})
		}
		completed = &v
	}
	views, err := h.queryUC.ListSupplierOrders(c.Context(), completed)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.SupplierOrderDTO, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromSupplierOrderView(v))
	}
	return c.JSON(out)
}

// LastRestock godoc
// @Summary      Fecha del último reabastecimiento de una bodega
// @Tags         replenishment
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la bodega"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/warehouse/storage-units/{id}/last-restock [get]
func (h *ReplenishmentHandler) LastRestock(c *fiber.Ctx) error {
	unitID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || unitID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id de bodega inválido"})
	}
	last, err := h.queryUC.LastRestock(c.Context(), unitID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"storage_unit_id": unitID, "last_restock": last})
}
