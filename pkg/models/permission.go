package models

// EmployeePermission is a Hilan permission granted to an employee.
type EmployeePermission struct {
	ID              int64  `db:"id" json:"id"`
	HilanEmployeeID int64  `db:"hilan_employee_id" json:"hilan_employee_id"`
	PermissionName  string `db:"permission_name" json:"permission_name"`

	// Systems are the system grants under this permission. Not a database
	// column; populated by the repository.
	Systems []PermissionSystem `db:"-" json:"systems,omitempty"`
}

// TableName returns the database table name
func (EmployeePermission) TableName() string {
	return "hilan_employee_permissions"
}

// PermissionSystem is a system grant under a permission.
type PermissionSystem struct {
	ID             int64   `db:"id" json:"id"`
	PermissionID   int64   `db:"permission_id" json:"permission_id"`
	SystemName     string  `db:"system_name" json:"system_name"`
	PermissionType *string `db:"permission_type" json:"permission_type,omitempty"`
	Population     *string `db:"population" json:"population,omitempty"`
}

// TableName returns the database table name
func (PermissionSystem) TableName() string {
	return "hilan_permission_systems"
}
