package repositories

import (
	"context"
	"net/http"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// TransactionRepository handles database operations for SAP transaction grants
type TransactionRepository struct {
	*Repository
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db database.DB, logger ectologger.Logger) *TransactionRepository {
	return &TransactionRepository{
		Repository: NewRepository(db, logger),
	}
}

// ListByEmployee returns an employee's transactions with their infotypes
func (r *TransactionRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]models.EmployeeTransaction, error) {
	ctx, span := tracing.StartSpan(ctx, "TransactionRepository.ListByEmployee")
	defer span.End()

	const query = `
		SELECT t.id, t.sap_employee_id, t.transaction_code,
		       i.id AS infotype_id, i.infotype_code, i.population
		FROM sap_employee_transactions t
		LEFT JOIN sap_transaction_infotypes i ON t.id = i.transaction_id
		WHERE t.sap_employee_id = ?
		ORDER BY t.id, i.id`

	rows, err := r.DB().QueryxContext(ctx, query, employeeID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"sap_employee_id": employeeID,
		}).Error("failed to list transactions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list transactions")
	}
	defer rows.Close()

	transactions := []models.EmployeeTransaction{}
	index := map[int64]int{}
	for rows.Next() {
		var row struct {
			ID              int64   `db:"id"`
			SAPEmployeeID   int64   `db:"sap_employee_id"`
			TransactionCode string  `db:"transaction_code"`
			InfotypeID      *int64  `db:"infotype_id"`
			InfotypeCode    *string `db:"infotype_code"`
			Population      *string `db:"population"`
		}
		if err := rows.StructScan(&row); err != nil {
			r.logger.WithContext(ctx).WithError(err).Error("failed to scan transaction row")
			return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list transactions")
		}

		pos, ok := index[row.ID]
		if !ok {
			transactions = append(transactions, models.EmployeeTransaction{
				ID:              row.ID,
				SAPEmployeeID:   row.SAPEmployeeID,
				TransactionCode: row.TransactionCode,
				Infotypes:       []models.TransactionInfotype{},
			})
			pos = len(transactions) - 1
			index[row.ID] = pos
		}
		if row.InfotypeID != nil {
			infotype := models.TransactionInfotype{
				ID:            *row.InfotypeID,
				TransactionID: row.ID,
				Population:    row.Population,
			}
			if row.InfotypeCode != nil {
				infotype.InfotypeCode = *row.InfotypeCode
			}
			transactions[pos].Infotypes = append(transactions[pos].Infotypes, infotype)
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list transactions")
		return nil, httperror.NewHTTPError(http.StatusInternalServerError, "failed to list transactions")
	}

	return transactions, nil
}

// Add grants a transaction code to an employee and returns the new row id
func (r *TransactionRepository) Add(ctx context.Context, employeeID int64, transactionCode string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "TransactionRepository.Add")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(TransactionsTable).
		Cols("sap_employee_id", "transaction_code").
		Values(employeeID, transactionCode)

	query, args := ib.Build()
	result, err := r.DB().ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"sap_employee_id": employeeID,
		}).Error("failed to add transaction")
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add transaction")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, httperror.NewHTTPError(http.StatusInternalServerError, "failed to add transaction")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"transaction_id":  id,
		"sap_employee_id": employeeID,
	}).Debugf("Created %s", TransactionsTable)
	return id, nil
}

// Update renames a transaction and replaces its infotypes in one transaction
func (r *TransactionRepository) Update(ctx context.Context, transaction *models.EmployeeTransaction) error {
	ctx, span := tracing.StartSpan(ctx, "TransactionRepository.Update")
	defer span.End()

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
	}
	defer tx.Rollback(ctx)

	result, err := tx.ExecContext(ctx,
		"UPDATE sap_employee_transactions SET transaction_code = ? WHERE id = ?",
		transaction.TransactionCode, transaction.ID)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"transaction_id": transaction.ID,
		}).Error("failed to update transaction")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "transaction %d does not exist", transaction.ID)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sap_transaction_infotypes WHERE transaction_id = ?", transaction.ID); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"transaction_id": transaction.ID,
		}).Error("failed to replace infotypes")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
	}

	for _, infotype := range transaction.Infotypes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO sap_transaction_infotypes (transaction_id, infotype_code, population) VALUES (?, ?, ?)",
			transaction.ID, infotype.InfotypeCode, infotype.Population); err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"transaction_id": transaction.ID,
			}).Error("failed to replace infotypes")
			return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to update transaction")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"transaction_id": transaction.ID,
	}).Debugf("Updated %s", TransactionsTable)
	return nil
}

// Delete removes a transaction and its infotypes in one transaction
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracing.StartSpan(ctx, "TransactionRepository.Delete")
	defer span.End()

	ctx, tx, err := r.DB().GetTx(ctx, nil)
	if err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete transaction")
	}
	defer tx.Rollback(ctx)

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM sap_transaction_infotypes WHERE transaction_id = ?", id); err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"transaction_id": id,
		}).Error("failed to delete infotypes")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete transaction")
	}

	result, err := tx.ExecContext(ctx,
		"DELETE FROM sap_employee_transactions WHERE id = ?", id)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"transaction_id": id,
		}).Error("failed to delete transaction")
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete transaction")
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "transaction %d does not exist", id)
	}

	if err := tx.Commit(ctx); err != nil {
		return httperror.NewHTTPError(http.StatusInternalServerError, "failed to delete transaction")
	}

	r.logger.WithContext(ctx).WithFields(map[string]any{
		"transaction_id": id,
	}).Debugf("Deleted %s", TransactionsTable)
	return nil
}
