package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/repositories"
)

// TransactionHandler handles SAP transaction grants
type TransactionHandler struct {
	repo *repositories.TransactionRepository
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(repo *repositories.TransactionRepository) *TransactionHandler {
	return &TransactionHandler{repo: repo}
}

// AddTransactionRequest is the request body for granting a transaction
type AddTransactionRequest struct {
	TransactionCode string `json:"transaction_code" validate:"required"`
}

// UpdateTransactionRequest replaces a transaction's code and infotypes
type UpdateTransactionRequest struct {
	TransactionCode string            `json:"transaction_code" validate:"required"`
	Infotypes       []InfotypeRequest `json:"infotypes"`
}

// InfotypeRequest is one infotype grant in an update
type InfotypeRequest struct {
	InfotypeCode string  `json:"infotype_code" validate:"required"`
	Population   *string `json:"population"`
}

// RegisterRoutes registers the transaction routes
func (h *TransactionHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/employees/sap/:id/transactions", h.ListByEmployee)
	g.POST("/employees/sap/:id/transactions", h.Add)

	transactions := g.Group("/transactions")
	transactions.PUT("/:id", h.Update)
	transactions.DELETE("/:id", h.Delete)
}

// ListByEmployee handles GET /employees/sap/:id/transactions
func (h *TransactionHandler) ListByEmployee(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	transactions, err := h.repo.ListByEmployee(ctx, id)
	if err != nil {
		return err
	}

	return SuccessResponse(c, transactions)
}

// Add handles POST /employees/sap/:id/transactions
func (h *TransactionHandler) Add(c echo.Context) error {
	ctx := c.Request().Context()

	employeeID, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req AddTransactionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	id, err := h.repo.Add(ctx, employeeID, req.TransactionCode)
	if err != nil {
		return err
	}

	return CreatedResponse(c, map[string]int64{"id": id})
}

// Update handles PUT /transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}

	var req UpdateTransactionRequest
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	transaction := &models.EmployeeTransaction{
		ID:              id,
		TransactionCode: req.TransactionCode,
	}
	for _, infotype := range req.Infotypes {
		transaction.Infotypes = append(transaction.Infotypes, models.TransactionInfotype{
			TransactionID: id,
			InfotypeCode:  infotype.InfotypeCode,
			Population:    infotype.Population,
		})
	}

	if err := h.repo.Update(ctx, transaction); err != nil {
		return err
	}

	return NoContentResponse(c)
}

// Delete handles DELETE /transactions/:id
func (h *TransactionHandler) Delete(c echo.Context) error {
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
