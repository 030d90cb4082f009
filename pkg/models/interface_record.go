package models

// InterfaceRecord is a row from the payroll interface error feed. Column
// names keep the upstream capitalization so reloads match existing rows.
type InterfaceRecord struct {
	ID             int64   `db:"id" json:"id"`
	EventID        *int64  `db:"EventID" json:"event_id,omitempty"`
	Status         *string `db:"Status" json:"status,omitempty"`
	Date           *string `db:"Date" json:"date,omitempty"`
	EmployeeID     *int64  `db:"EmployeeID" json:"employee_id,omitempty"`
	SendCode       *int64  `db:"SendCode" json:"send_code,omitempty"`
	SubEvent       *int64  `db:"SubEvent" json:"sub_event,omitempty"`
	EventName      *string `db:"EventName" json:"event_name,omitempty"`
	LastName       *string `db:"LastName" json:"last_name,omitempty"`
	FirstName      *string `db:"FirstName" json:"first_name,omitempty"`
	CorrectedValue *string `db:"CorrectedValue" json:"corrected_value,omitempty"`
	Error          *string `db:"Error" json:"error,omitempty"`
	Note           *string `db:"Note" json:"note,omitempty"`
}

// TableName returns the database table name
func (InterfaceRecord) TableName() string {
	return "hilan_interface"
}
