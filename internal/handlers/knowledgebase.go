package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/knowledgebase"
)

// KnowledgeBaseHandler handles the shared document browser
type KnowledgeBaseHandler struct {
	service *knowledgebase.Service
}

// NewKnowledgeBaseHandler creates a new knowledge base handler
func NewKnowledgeBaseHandler(service *knowledgebase.Service) *KnowledgeBaseHandler {
	return &KnowledgeBaseHandler{service: service}
}

// CreateItemRequest is the request body for adding a file or folder
type CreateItemRequest struct {
	ParentPath string `json:"parent_path"`
	Name       string `json:"name" validate:"required"`
	IsFolder   bool   `json:"is_folder"`
}

// RenameItemRequest is the request body for renaming an item
type RenameItemRequest struct {
	Path    string `json:"path" validate:"required"`
	NewName string `json:"new_name" validate:"required"`
}

// RegisterRoutes registers the knowledge base routes
func (h *KnowledgeBaseHandler) RegisterRoutes(g *echo.Group) {
	kb := g.Group("/knowledge-base")
	kb.GET("/tree", h.Tree)
	kb.GET("/content", h.Content)
	kb.POST("/items", h.CreateItem)
	kb.PUT("/items/rename", h.RenameItem)
	kb.DELETE("/items", h.DeleteItem)
}

// Tree handles GET /knowledge-base/tree
func (h *KnowledgeBaseHandler) Tree(c echo.Context) error {
	ctx := c.Request().Context()

	tree, err := h.service.Tree(ctx)
	if err != nil {
		return err
	}

	return SuccessResponse(c, map[string]any{"structure": tree})
}

// Content handles GET /knowledge-base/content?path=...
func (h *KnowledgeBaseHandler) Content(c echo.Context) error {
	ctx := c.Request().Context()

	path := c.QueryParam("path")
	if path == "" {
		return BadRequest("path is required")
	}

	content, err := h.service.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	return SuccessResponse(c, content)
}

// CreateItem handles POST /knowledge-base/items
func (h *KnowledgeBaseHandler) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req CreateItemRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.CreateItem(ctx, req.ParentPath, req.Name, req.IsFolder); err != nil {
		return err
	}

	return CreatedResponse(c, map[string]bool{"success": true})
}

// RenameItem handles PUT /knowledge-base/items/rename
func (h *KnowledgeBaseHandler) RenameItem(c echo.Context) error {
	ctx := c.Request().Context()

	var req RenameItemRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.Rename(ctx, req.Path, req.NewName); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// DeleteItem handles DELETE /knowledge-base/items?path=...
func (h *KnowledgeBaseHandler) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()

	path := c.QueryParam("path")
	if path == "" {
		return BadRequest("path is required")
	}

	if err := h.service.Delete(ctx, path); err != nil {
		return err
	}

	return NoContentResponse(c)
}
