package handlers

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/repositories"
)

// AttendanceHandler handles attendance lookups
type AttendanceHandler struct {
	repo *repositories.AttendanceRepository
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(repo *repositories.AttendanceRepository) *AttendanceHandler {
	return &AttendanceHandler{repo: repo}
}

// RegisterRoutes registers the attendance routes
func (h *AttendanceHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/employees/hilan/:id/attendance", h.List)
}

// List handles GET /employees/hilan/:id/attendance
func (h *AttendanceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	start, err := parseDate(c.QueryParam("start_date"))
	if err != nil {
		return BadRequest("start_date must be YYYY-MM-DD")
	}
	end, err := parseDate(c.QueryParam("end_date"))
	if err != nil {
		return BadRequest("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return BadRequest("end_date must not be before start_date")
	}
	// include the whole end day
	end = end.Add(24*time.Hour - time.Millisecond)

	entries, err := h.repo.ListRange(ctx, id, start, end)
	if err != nil {
		return err
	}

	return SuccessResponse(c, map[string]any{"attendance": entries})
}

func parseDate(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, time.UTC)
}
