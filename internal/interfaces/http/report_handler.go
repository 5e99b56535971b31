package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/application/reports"
)

// ReportHandler genera reportes PDF (protegido).
type ReportHandler struct {
	kardex *reports.KardexReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(kardex *reports.KardexReportUseCase) *ReportHandler {
	return &ReportHandler{kardex: kardex}
}

// KardexPDF godoc
// @Summary      Reporte PDF del kardex de un repuesto
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "fecha inicial (RFC3339)"
// @Param        to    query  string  false  "fecha final (RFC3339)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/kardex/{partID}/pdf [get]
func (h *ReportHandler) KardexPDF(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	pdfBytes, err := h.kardex.GeneratePDF(c.Context(), c.Params("partID"), from, to)
	if err != nil {
		return mapDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="kardex.pdf"`)
	return c.Send(pdfBytes)
}
