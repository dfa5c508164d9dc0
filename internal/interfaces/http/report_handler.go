package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/application/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler reporte de demanda por cliente y producto.
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

func (h *ReportHandler) params(c *fiber.Ctx) (report.DemandParams, error) {
	q, err := listQuery(c, report.DemandSchema)
	if err != nil {
		return report.DemandParams{}, err
	}
	return report.DemandParams{From: c.Query("from"), To: c.Query("to"), Query: q}, nil
}

// Demand godoc
// @Summary      Reporte de demanda
// @Description  Agrupa líneas de catálogo por (cliente, producto) en el rango: veces pedido, piezas, promedio y última fecha.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from           query  string  true   "YYYY-MM-DD"
// @Param        to             query  string  true   "YYYY-MM-DD"
// @Param        f.customer_id  query  string  false  "ID del cliente"
// @Param        sort           query  string  false  "customer_name | product_name | ordered_times | total_pieces | avg_pieces_per_order | last_order_date"
// @Param        dir            query  string  false  "asc | desc"
// @Param        page           query  int     false  "Página"
// @Param        size           query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.DemandReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/demand [get]
func (h *ReportHandler) Demand(c *fiber.Ctx) error {
	p, err := h.params(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Demand(c.Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Reporte de demanda en Excel
// @Description  Mismo reporte sin paginar, en el orden pedido.
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  true  "YYYY-MM-DD"
// @Param        to    query  string  true  "YYYY-MM-DD"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/demand/xlsx [get]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	p, err := h.params(c)
	if err != nil {
		return err
	}
	data, filename, err := h.uc.Export(c.Context(), p)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}
