package models

// HilanEmployee is a row from the Hilan personnel extract.
type HilanEmployee struct {
	HilanEmployeeID    int64    `db:"hilan_employee_id" json:"hilan_employee_id"`
	LastName           *string  `db:"hilan_last_name" json:"hilan_last_name,omitempty"`
	FirstName          *string  `db:"hilan_first_name" json:"hilan_first_name,omitempty"`
	PersonalID         *string  `db:"hilan_personal_id" json:"hilan_personal_id,omitempty"`
	BirthDate          *string  `db:"hilan_birth_date" json:"hilan_birth_date,omitempty"`
	City               *string  `db:"hilan_city" json:"hilan_city,omitempty"`
	Address            *string  `db:"hilan_address" json:"hilan_address,omitempty"`
	Email              *string  `db:"hilan_email" json:"hilan_email,omitempty"`
	Citizenship        *string  `db:"hilan_citizenship" json:"hilan_citizenship,omitempty"`
	RelationshipStatus *string  `db:"hilan_relationship_status" json:"hilan_relationship_status,omitempty"`
	Gender             *string  `db:"hilan_gender" json:"hilan_gender,omitempty"`
	Phone              *string  `db:"hilan_phone" json:"hilan_phone,omitempty"`
	Status             *string  `db:"hilan_status" json:"hilan_status,omitempty"`
	Hospital           *string  `db:"hilan_hospital" json:"hilan_hospital,omitempty"`
	Department         *string  `db:"hilan_department" json:"hilan_department,omitempty"`
	Title              *string  `db:"hilan_title" json:"hilan_title,omitempty"`
	JobTitle           *string  `db:"hilan_job_title" json:"hilan_job_title,omitempty"`
	Company            *string  `db:"hilan_company" json:"hilan_company,omitempty"`
	ManagerName        *string  `db:"hilan_manager_name" json:"hilan_manager_name,omitempty"`
	Level              *string  `db:"hilan_level" json:"hilan_level,omitempty"`
	JobPercentage      *float64 `db:"hilan_job_percentage" json:"hilan_job_percentage,omitempty"`
	EmploymentStart    *string  `db:"hilan_employment_start" json:"hilan_employment_start,omitempty"`
	Group              *string  `db:"hilan_group" json:"hilan_group,omitempty"`
	Role               *string  `db:"hilan_role" json:"hilan_role,omitempty"`
}

// TableName returns the database table name
func (HilanEmployee) TableName() string {
	return "hilan_employees"
}
