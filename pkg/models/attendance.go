package models

// AttendanceRecord is a single punch-clock entry. Date and the time columns
// hold epoch milliseconds serialized as text, matching the upstream export.
type AttendanceRecord struct {
	ID              int64   `db:"id" json:"id"`
	HilanEmployeeID int64   `db:"hilan_employee_id" json:"hilan_employee_id"`
	Date            *string `db:"date" json:"date,omitempty"`
	StartTime       *string `db:"start_time" json:"start_time,omitempty"`
	EndTime         *string `db:"end_time" json:"end_time,omitempty"`
	AttendanceType  *string `db:"attendance_type" json:"attendance_type,omitempty"`
}

// TableName returns the database table name
func (AttendanceRecord) TableName() string {
	return "hilan_attendance"
}

// AttendanceEntry is an attendance record with the epoch-millisecond columns
// rendered as calendar date and wall-clock times.
type AttendanceEntry struct {
	ID              int64  `json:"id"`
	HilanEmployeeID int64  `json:"hilan_employee_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AttendanceType  string `json:"attendance_type"`
}
