package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/operia/stock-ajustes-api/internal/application/dto"
	"github.com/operia/stock-ajustes-api/internal/application/usecase"
	"github.com/operia/stock-ajustes-api/internal/domain"
)

// MovimientoHandler consultas de auditoría sobre el libro de movimientos.
type MovimientoHandler struct {
	uc *usecase.MovimientoUseCase
}

// NewMovimientoHandler construye el handler.
func NewMovimientoHandler(uc *usecase.MovimientoUseCase) *MovimientoHandler {
	return &MovimientoHandler{uc: uc}
}

// List lista movimientos de la empresa; ?transaction_id= filtra un lote concreto.
func (h *MovimientoHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "paginación inválida"})
	}
	out, err := h.uc.Listar(GetCompanyID(c), c.Query("transaction_id"), page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Acta descarga el acta PDF del lote de ajuste.
func (h *MovimientoHandler) Acta(c *fiber.Ctx) error {
	transactionID := c.Params("transactionId")
	contenido, err := h.uc.GenerarActa(c.UserContext(), GetCompanyID(c), transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="acta-`+transactionID+`.pdf"`)
	return c.Send(contenido)
}
