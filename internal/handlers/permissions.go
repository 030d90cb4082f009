package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

// PermissionHandler handles Hilan permission grants
type PermissionHandler struct {
	repo *repositories.PermissionRepository
}

// NewPermissionHandler creates a new permission handler
func NewPermissionHandler(repo *repositories.PermissionRepository) *PermissionHandler {
	return &PermissionHandler{repo: repo}
}

// AddPermissionRequest is the request body for granting a permission
type AddPermissionRequest struct {
	PermissionName string `json:"permission_name" validate:"required"`
}

// AddSystemRequest attaches a system grant to a permission
type AddSystemRequest struct {
	SystemName     string  `json:"system_name" validate:"required"`
	PermissionType *string `json:"permission_type"`
	Population     *string `json:"population"`
}

// UpdatePermissionRequest replaces a permission's name and system grants
type UpdatePermissionRequest struct {
	PermissionName string             `json:"permission_name" validate:"required"`
	Systems        []AddSystemRequest `json:"systems"`
}

// RegisterRoutes registers the permission routes
func (h *PermissionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/employees/hilan/:id/permissions", h.ListByEmployee)
	g.POST("/employees/hilan/:id/permissions", h.Add)

	permissions := g.Group("/permissions")
	permissions.POST("/:id/systems", h.AddSystem)
	permissions.PUT("/:id", h.Update)
	permissions.DELETE("/:id", h.Delete)
}

// ListByEmployee handles GET /employees/hilan/:id/permissions
func (h *PermissionHandler) ListByEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	permissions, err := h.repo.ListByEmployee(ctx, id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, permissions)
}

// Add handles POST /employees/hilan/:id/permissions
func (h *PermissionHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req AddPermissionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.repo.Add(ctx, employeeID, req.PermissionName)
	if err != nil {
		return err
	}

	return CreatedResponse(c, map[string]int64{"id": id})
}

// AddSystem handles POST /permissions/:id/systems
func (h *PermissionHandler) AddSystem(c echo.Context) error {
	ctx := c.Request().Context()

	permissionID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req AddSystemRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.repo.AddSystem(ctx, permissionID, req.SystemName, req.PermissionType, req.Population)
	if err != nil {
		return err
	}

	return CreatedResponse(c, map[string]int64{"id": id})
}

// Update handles PUT /permissions/:id
func (h *PermissionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePermissionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	permission := &models.EmployeePermission{
		ID:             id,
		PermissionName: req.PermissionName,
	}
	for _, system := range req.Systems {
		permission.Systems = append(permission.Systems, models.PermissionSystem{
			PermissionID:   id,
			SystemName:     system.SystemName,
			PermissionType: system.PermissionType,
			Population:     system.Population,
		})
	}

	if err := h.repo.Update(ctx, permission); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// Delete handles DELETE /permissions/:id
func (h *PermissionHandler) Delete(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return err
	}

	return NoContentResponse(c)
}
