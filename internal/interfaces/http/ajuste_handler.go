package http

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/application/dto"
	"github.com/operia/stock-ajustes-api/internal/domain"
)

// maxPlanillaBytes tope del archivo subido (planillas reales rondan los KB).
const maxPlanillaBytes = 10 << 20 // 10 MiB

// AjusteHandler maneja el flujo de conciliación de stock por planilla.
type AjusteHandler struct {
	importar   *ajuste.ImportarUseCase
	exportador *ajuste.Exportador
}

// NewAjusteHandler construye el handler.
func NewAjusteHandler(importar *ajuste.ImportarUseCase, exportador *ajuste.Exportador) *AjusteHandler {
	return &AjusteHandler{importar: importar, exportador: exportador}
}

// leerPlanilla extrae el archivo "archivo" del multipart form.
func leerPlanilla(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("archivo")
	if err != nil {
		return nil, err
	}
	if fh.Size > maxPlanillaBytes {
		return nil, errors.New("archivo demasiado grande")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxPlanillaBytes))
}

// Previsualizar procesa la planilla sin efectos y devuelve candidatos,
// filas nuevas y errores de validación.
func (h *AjusteHandler) Previsualizar(c *fiber.Ctx) error {
	contenido, err := leerPlanilla(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'archivo' (xlsx) requerido"})
	}
	out, err := h.importar.Previsualizar(c.UserContext(), GetCompanyID(c), contenido)
	if err != nil {
		if errors.Is(err, domain.ErrArchivoInvalido) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PARSE", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if len(out.Errores) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "la planilla contiene filas inválidas", Detalle: out.Errores,
		})
	}
	return c.JSON(out)
}

// Confirmar ejecuta el flujo completo con efectos y devuelve el resultado por
// proyecto. politica es query param: "crear" | "solo_nombre" (requerida solo si
// hay filas nuevas).
func (h *AjusteHandler) Confirmar(c *fiber.Ctx) error {
	contenido, err := leerPlanilla(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "archivo 'archivo' (xlsx) requerido"})
	}
	politica := ajuste.Politica(c.Query("politica"))

	resultado, errores, err := h.importar.Confirmar(c.UserContext(), GetCompanyID(c), GetUserID(c), contenido, politica)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrArchivoInvalido):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "PARSE", Message: err.Error()})
		case errors.Is(err, domain.ErrValidacion):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
				Code: "VALIDATION", Message: "la planilla contiene filas inválidas", Detalle: errores,
			})
		case errors.Is(err, domain.ErrCreacionMateriales):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CREATION", Message: err.Error()})
		case errors.Is(err, domain.ErrInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	// Éxito parcial: 207 cuando algún lote falló, 200 cuando todos pasaron.
	status := fiber.StatusOK
	if resultado.Fallidos > 0 {
		status = fiber.StatusMultiStatus
	}
	return c.Status(status).JSON(resultado)
}

// Exportar descarga la planilla de stock vigente de la empresa.
func (h *AjusteHandler) Exportar(c *fiber.Ctx) error {
	contenido, err := h.exportador.Exportar(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	nombre := "stock-" + time.Now().Format("20060102-150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+nombre+`"`)
	return c.Send(contenido)
}
