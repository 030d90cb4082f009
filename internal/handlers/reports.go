package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/report"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

// ReportHandler handles report generation and export
type ReportHandler struct {
	repo *repositories.ReportRepository
}

// NewReportHandler creates a new report handler
func NewReportHandler(repo *repositories.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// GenerateReportRequest is the request body for building a report
type GenerateReportRequest struct {
	Source  string                                `json:"source" validate:"required,oneof=sap hilan"`
	Columns []string                              `json:"columns" validate:"required,min=1"`
	Filters map[string]repositories.ReportFilter `json:"filters"`
}

// ExportReportRequest is the request body for exporting a report
type ExportReportRequest struct {
	GenerateReportRequest
	Format string `json:"format" validate:"required,oneof=csv xlsx document"`
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(g *echo.Group) {
	reports := g.Group("/reports")
	reports.POST("", h.Generate)
	reports.POST("/export", h.Export)
	reports.GET("/:source/columns/:column/values", h.UniqueValues)
}

// Generate handles POST /reports
func (h *ReportHandler) Generate(c echo.Context) error {
	ctx := c.Request().Context()

	var req GenerateReportRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	rows, err := h.repo.Generate(ctx, req.Source, req.Filters, req.Columns)
	if err != nil {
		return err
	}

	return SuccessResponse(c, map[string]any{
		"columns": req.Columns,
		"rows":    rows,
	})
}

// Export handles POST /reports/export. The report is regenerated and
// streamed back as an attachment in the requested format.
func (h *ReportHandler) Export(c echo.Context) error {
	ctx := c.Request().Context()

	var req ExportReportRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	rows, err := h.repo.Generate(ctx, req.Source, req.Filters, req.Columns)
	if err != nil {
		return err
	}

	fileName := fmt.Sprintf("report-%s-%s", req.Source, time.Now().Format("20060102-150405"))
	w := c.Response()

	switch req.Format {
	case "csv":
		w.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		w.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName+".csv"))
		w.WriteHeader(http.StatusOK)
		return report.WriteCSV(w, req.Columns, rows)
	case "xlsx":
		w.Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName+".xlsx"))
		w.WriteHeader(http.StatusOK)
		return report.WriteXLSX(w, req.Columns, rows)
	case "document":
		w.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
		w.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName+".txt"))
		w.WriteHeader(http.StatusOK)
		return report.WriteDocument(w, req.Columns, rows)
	default:
		return BadRequest("unsupported export format")
	}
}

// UniqueValues handles GET /reports/:source/columns/:column/values
func (h *ReportHandler) UniqueValues(c echo.Context) error {
	ctx := c.Request().Context()

	values, err := h.repo.UniqueValues(ctx, c.Param("source"), c.Param("column"))
	if err != nil {
		return err
	}

	return SuccessResponse(c, map[string]any{"values": values})
}
