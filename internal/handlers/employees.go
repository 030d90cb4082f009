package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/repositories"
)

// EmployeeHandler handles employee search, profile and cross-system lookups
type EmployeeHandler struct {
	sap   *repositories.SAPEmployeeRepository
	hilan *repositories.HilanEmployeeRepository
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(sap *repositories.SAPEmployeeRepository, hilan *repositories.HilanEmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{sap: sap, hilan: hilan}
}

// RegisterRoutes registers the employee routes
func (h *EmployeeHandler) RegisterRoutes(g *echo.Group) {
	employees := g.Group("/employees")
	employees.GET("/sap", h.SearchSAP)
	employees.GET("/hilan", h.SearchHilan)
	employees.GET("/:system/:id", h.Get)
	employees.GET("/:system/:id/counterpart", h.Counterpart)
}

// SearchSAP handles GET /employees/sap
func (h *EmployeeHandler) SearchSAP(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.sap.Search(ctx,
		c.QueryParam("query"),
		IntQuery(c, "page", 1),
		IntQuery(c, "page_size", 10),
		c.QueryParam("sort_field"),
		c.QueryParam("sort_order"),
	)
	if err != nil {
		return err
	}

	return SuccessResponse(c, result)
}

// SearchHilan handles GET /employees/hilan
func (h *EmployeeHandler) SearchHilan(c echo.Context) error {
	ctx := c.Request().Context()

	result, err := h.hilan.Search(ctx,
		c.QueryParam("query"),
		IntQuery(c, "page", 1),
		IntQuery(c, "page_size", 10),
		c.QueryParam("sort_field"),
		c.QueryParam("sort_order"),
	)
	if err != nil {
		return err
	}

	return SuccessResponse(c, result)
}

// Get handles GET /employees/:system/:id
func (h *EmployeeHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	switch c.Param("system") {
	case "sap":
		employee, err := h.sap.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return SuccessResponse(c, employee)
	case "hilan":
		employee, err := h.hilan.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return SuccessResponse(c, employee)
	default:
		return BadRequest("system must be sap or hilan")
	}
}

// Counterpart handles GET /employees/:system/:id/counterpart. It returns
// the same employee's record in the other system, matched by employee id.
func (h *EmployeeHandler) Counterpart(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	switch c.Param("system") {
	case "sap":
		employee, err := h.hilan.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return SuccessResponse(c, employee)
	case "hilan":
		employee, err := h.sap.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return SuccessResponse(c, employee)
	default:
		return BadRequest("system must be sap or hilan")
	}
}
