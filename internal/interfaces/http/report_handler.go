package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/techstore/pos-api/internal/application/dto"
	"github.com/techstore/pos-api/internal/application/reports"
)

// reportRangeDays rango por defecto de los reportes cuando no se indica from/to.
const reportRangeDays = 30

// ReportHandler reportes de ventas (solo admin).
type ReportHandler struct {
	uc *reports.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary agregados de ventas en el rango.
// GET /api/reports/summary?from=2026-01-01&to=2026-01-31
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben tener formato YYYY-MM-DD"})
	}
	out, err := h.uc.SalesSummary(c.Context(), from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// TopProducts productos más vendidos en el rango.
// GET /api/reports/top-products?from=...&to=...&limit=5
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	from, to, err := parseRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from/to deben tener formato YYYY-MM-DD"})
	}
	limit := c.QueryInt("limit", 5)
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	out, err := h.uc.TopProducts(c.Context(), from, to, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// parseRange lee from/to (YYYY-MM-DD); por defecto los últimos 30 días.
// El límite superior incluye el día completo de "to".
func parseRange(c *fiber.Ctx) (from, to time.Time, err error) {
	now := time.Now()
	from = now.AddDate(0, 0, -reportRangeDays)
	to = now
	if s := c.Query("from"); s != "" {
		from, err = time.Parse("2006-01-02", s)
		if err != nil {
			return
		}
	}
	if s := c.Query("to"); s != "" {
		to, err = time.Parse("2006-01-02", s)
		if err != nil {
			return
		}
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return
}
