package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmalink/suministro-api/internal/application/catalog"
	"github.com/farmalink/suministro-api/internal/application/dto"
)

// CatalogHandler expone el catálogo de productos con disponibilidad.
type CatalogHandler struct {
	uc *catalog.UseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.UseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo de productos con disponibilidad total
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductDTO
// @Router       /api/products [get]
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.FromProductAvailability(p))
	}
	return c.JSON(out)
}
