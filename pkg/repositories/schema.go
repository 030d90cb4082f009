package repositories

// Column allow-lists for every table that accepts caller-supplied column or
// sort names. Identifiers are never interpolated into SQL without passing
// through these.

const (
	SAPEmployeesTable    = "sap_employees"
	HilanEmployeesTable  = "hilan_employees"
	AttendanceTable      = "hilan_attendance"
	InterfaceTable       = "hilan_interface"
	TransactionsTable    = "sap_employee_transactions"
	InfotypesTable       = "sap_transaction_infotypes"
	PermissionsTable     = "hilan_employee_permissions"
	PermissionSysTable   = "hilan_permission_systems"
	UsersTable           = "users"
)

var sapEmployeeColumns = []string{
	"sap_employee_id", "sap_name", "sap_title", "sap_gender", "sap_birth_date",
	"sap_citizenship", "sap_personal_id", "sap_relationship_status", "sap_status",
	"sap_company", "sap_hospital", "sap_employee_group", "sap_employee_subgroup",
	"sap_department", "sap_role", "sap_job_title", "sap_address", "sap_city",
	"sap_level", "sap_email", "sap_phone", "sap_employment_start",
	"sap_manager_name", "sap_job_percentage",
}

var hilanEmployeeColumns = []string{
	"hilan_employee_id", "hilan_last_name", "hilan_first_name", "hilan_personal_id",
	"hilan_birth_date", "hilan_city", "hilan_address", "hilan_email",
	"hilan_citizenship", "hilan_relationship_status", "hilan_gender", "hilan_phone",
	"hilan_status", "hilan_hospital", "hilan_department", "hilan_title",
	"hilan_job_title", "hilan_company", "hilan_manager_name", "hilan_level",
	"hilan_job_percentage", "hilan_employment_start", "hilan_group", "hilan_role",
}

var attendanceColumns = []string{
	"hilan_employee_id", "date", "start_time", "end_time", "attendance_type",
}

var tableColumns = map[string][]string{
	SAPEmployeesTable:   sapEmployeeColumns,
	HilanEmployeesTable: hilanEmployeeColumns,
	AttendanceTable:     attendanceColumns,
}

// TableColumns returns the loadable columns for a bulk-import table, or false
// if the table does not accept bulk loads.
func TableColumns(table string) ([]string, bool) {
	cols, ok := tableColumns[table]
	return cols, ok
}

// ColumnAllowed reports whether col is a known column of table.
func ColumnAllowed(table, col string) bool {
	cols, ok := tableColumns[table]
	if !ok {
		return false
	}
	for _, c := range cols {
		if c == col {
			return true
		}
	}
	return false
}
