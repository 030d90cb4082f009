package models

// EmployeeTransaction is a SAP transaction code granted to an employee.
type EmployeeTransaction struct {
	ID              int64  `db:"id" json:"id"`
	SAPEmployeeID   int64  `db:"sap_employee_id" json:"sap_employee_id"`
	TransactionCode string `db:"transaction_code" json:"transaction_code"`

	// Infotypes are the infotype grants under this transaction. Not a
	// database column; populated by the repository.
	Infotypes []TransactionInfotype `db:"-" json:"infotypes,omitempty"`
}

// TableName returns the database table name
func (EmployeeTransaction) TableName() string {
	return "sap_employee_transactions"
}

// TransactionInfotype is an infotype grant under a transaction.
type TransactionInfotype struct {
	ID            int64   `db:"id" json:"id"`
	TransactionID int64   `db:"transaction_id" json:"transaction_id"`
	InfotypeCode  string  `db:"infotype_code" json:"infotype_code"`
	Population    *string `db:"population" json:"population,omitempty"`
}

// TableName returns the database table name
func (TransactionInfotype) TableName() string {
	return "sap_transaction_infotypes"
}
