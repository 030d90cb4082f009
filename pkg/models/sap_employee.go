package models

// SAPEmployee is a row from the SAP personnel extract. All columns except
// the employee id are nullable because extracts are frequently partial.
type SAPEmployee struct {
	SAPEmployeeID       int64    `db:"sap_employee_id" json:"sap_employee_id"`
	Name                *string  `db:"sap_name" json:"sap_name,omitempty"`
	Title               *string  `db:"sap_title" json:"sap_title,omitempty"`
	Gender              *string  `db:"sap_gender" json:"sap_gender,omitempty"`
	BirthDate           *string  `db:"sap_birth_date" json:"sap_birth_date,omitempty"`
	Citizenship         *string  `db:"sap_citizenship" json:"sap_citizenship,omitempty"`
	PersonalID          *string  `db:"sap_personal_id" json:"sap_personal_id,omitempty"`
	RelationshipStatus  *string  `db:"sap_relationship_status" json:"sap_relationship_status,omitempty"`
	Status              *string  `db:"sap_status" json:"sap_status,omitempty"`
	Company             *string  `db:"sap_company" json:"sap_company,omitempty"`
	Hospital            *string  `db:"sap_hospital" json:"sap_hospital,omitempty"`
	EmployeeGroup       *string  `db:"sap_employee_group" json:"sap_employee_group,omitempty"`
	EmployeeSubgroup    *string  `db:"sap_employee_subgroup" json:"sap_employee_subgroup,omitempty"`
	Department          *string  `db:"sap_department" json:"sap_department,omitempty"`
	Role                *string  `db:"sap_role" json:"sap_role,omitempty"`
	JobTitle            *string  `db:"sap_job_title" json:"sap_job_title,omitempty"`
	Address             *string  `db:"sap_address" json:"sap_address,omitempty"`
	City                *string  `db:"sap_city" json:"sap_city,omitempty"`
	Level               *int64   `db:"sap_level" json:"sap_level,omitempty"`
	Email               *string  `db:"sap_email" json:"sap_email,omitempty"`
	Phone               *string  `db:"sap_phone" json:"sap_phone,omitempty"`
	EmploymentStart     *string  `db:"sap_employment_start" json:"sap_employment_start,omitempty"`
	ManagerName         *string  `db:"sap_manager_name" json:"sap_manager_name,omitempty"`
	JobPercentage       *float64 `db:"sap_job_percentage" json:"sap_job_percentage,omitempty"`
}

// TableName returns the database table name
func (SAPEmployee) TableName() string {
	return "sap_employees"
}
