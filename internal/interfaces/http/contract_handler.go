package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/farmalink/suministro-api/internal/application/contracts"
	"github.com/farmalink/suministro-api/internal/application/dto"
	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

// ContractHandler maneja los contratos de suministro de la farmacia autenticada.
type ContractHandler struct {
	uc *contracts.UseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *contracts.UseCase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Sign godoc
// @Summary      Firmar contrato de suministro
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignContractRequest  true  "condiciones del contrato"
// @Success      201   {object}  dto.ContractDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Sign(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SignContractRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	view, err := h.uc.Sign(c.Context(), contracts.SignInput{
		PharmacyNIT:       nit,
		DurationMonths:    in.DurationMonths,
		DeliveryFrequency: entity.DeliveryFrequency(in.DeliveryFrequency),
		PaymentMethod:     entity.PaymentMethod(in.PaymentMethod),
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "condiciones inválidas"})
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "farmacia no encontrada"})
		case errors.Is(err, domain.ErrActiveContractExists):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ACTIVE_CONTRACT", Message: "ya existe un contrato vigente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromContractView(*view))
}

// Cancel godoc
// @Summary      Cancelar el contrato vigente
// @Description  El contrato expira hoy; los descuentos dejan de aplicar desde el
//               próximo pedido.
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/current [delete]
func (h *ContractHandler) Cancel(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	if err := h.uc.Cancel(c.Context(), nit); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la farmacia no tiene contrato vigente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Contratos de la farmacia, más reciente primero
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ContractDTO
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	views, err := h.uc.List(c.Context(), nit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ContractDTO, 0, len(views))
	for _, v := range views {
		out = append(out, dto.FromContractView(v))
	}
	return c.JSON(out)
}

// Current godoc
// @Summary      Contrato vigente de la farmacia
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ContractDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/current [get]
func (h *ContractHandler) Current(c *fiber.Ctx) error {
	nit := GetPharmacyNIT(c)
	if nit == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	view, err := h.uc.Current(c.Context(), nit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if view == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la farmacia no tiene contrato vigente"})
	}
	return c.JSON(dto.FromContractView(*view))
}
