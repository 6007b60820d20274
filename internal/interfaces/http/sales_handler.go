package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/petstore-sync/internal/application/dto"
	"github.com/jhoicas/petstore-sync/internal/application/usecase"
	"github.com/jhoicas/petstore-sync/internal/domain"
)

// SalesHandler maneja el cálculo de totales de ventas y devoluciones.
type SalesHandler struct {
	uc *usecase.SalesUseCase
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// Totals POST /api/ventas/totales
func (h *SalesHandler) Totals(c *fiber.Ctx) error {
	var in dto.SaleTotalsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	out, err := h.uc.Totals(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "renglones o descuento inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
