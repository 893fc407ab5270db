package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lotes-api/internal/application/dto"
	"github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/domain"
)

// ReportHandler expone reportes PDF de trazabilidad.
type ReportHandler struct {
	expiry *lots.ExpiryReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(expiry *lots.ExpiryReportUseCase) *ReportHandler {
	return &ReportHandler{expiry: expiry}
}

// ExpiryReport godoc
// @Summary      Reporte PDF de vencimientos de un producto (orden FEFO)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/reports/expiry [get]
func (h *ReportHandler) ExpiryReport(c *fiber.Ctx) error {
	pdfBytes, err := h.expiry.Generate(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="vencimientos.pdf"`)
	return c.Send(pdfBytes)
}
