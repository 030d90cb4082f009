package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/repositories"
)

// statusFilterAll is the UI's "all statuses" sentinel, kept for
// compatibility with the existing front end.
const statusFilterAll = "הכל"

// InterfaceHandler handles the payroll interface review screen
type InterfaceHandler struct {
	repo *repositories.InterfaceRepository
}

// NewInterfaceHandler creates a new interface record handler
func NewInterfaceHandler(repo *repositories.InterfaceRepository) *InterfaceHandler {
	return &InterfaceHandler{repo: repo}
}

// UpdateInterfaceRequest is the request body for reviewing a record
type UpdateInterfaceRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// RegisterRoutes registers the interface record routes
func (h *InterfaceHandler) RegisterRoutes(g *echo.Group) {
	records := g.Group("/interface-records")
	records.GET("", h.List)
	records.PUT("/:id", h.Update)
}

// List handles GET /interface-records
func (h *InterfaceHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	filters := repositories.InterfaceFilters{
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	if status := c.QueryParam("status"); status != "" && status != statusFilterAll {
		filters.Status = status
	}
	if raw := c.QueryParam("event_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return BadRequest("event_id must be a number")
		}
		filters.EventID = &id
	}
	if raw := c.QueryParam("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return BadRequest("employee_id must be a number")
		}
		filters.EmployeeID = &id
	}

	result, err := h.repo.List(ctx, IntQuery(c, "page", 1), IntQuery(c, "page_size", 100), filters)
	if err != nil {
		return err
	}

	return SuccessResponse(c, result)
}

// Update handles PUT /interface-records/:id
func (h *InterfaceHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateInterfaceRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.repo.UpdateReview(ctx, id, req.Status, req.Note); err != nil {
		return err
	}

	return NoContentResponse(c)
}
