// Report read models. These rows come from precomputed views and SQL
// functions in the store (v_employee_daily_stats, v_department_daily_stats,
// v_employee_last_activity, fn_top_overworked_employees, fn_department_load);
// the API treats them as opaque read-only data sources and never writes them.
package domain

import "time"

// EmployeeDailyReport is one row of v_employee_daily_stats: the aggregate
// screen time of one employee for one day, denormalized with the employee's
// department and position names.
type EmployeeDailyReport struct {
	EmployeeID        uint      `json:"employee_id"`
	FirstName         string    `json:"first_name"`
	LastName          string    `json:"last_name"`
	DepartmentName    *string   `json:"department_name"`
	PositionName      *string   `json:"position_name"`
	StatDate          time.Time `json:"stat_date"`
	TotalSeconds      int       `json:"total_seconds"`
	SessionsCount     int       `json:"sessions_count"`
	AvgSessionSeconds float64   `json:"avg_session_seconds"`
}

// DepartmentDailyReport is one row of v_department_daily_stats: total screen
// time and session count per department for one day.
type DepartmentDailyReport struct {
	DepartmentID   uint      `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	StatDate       time.Time `json:"stat_date"`
	TotalSeconds   int       `json:"total_seconds"`
	SessionsCount  int       `json:"sessions_count"`
}

// EmployeeLastActivity is one row of v_employee_last_activity: the most
// recent recorded session per employee.
type EmployeeLastActivity struct {
	EmployeeID    uint      `json:"employee_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	WorkstationID uint      `json:"workstation_id"`
	Hostname      string    `json:"hostname"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
	ActiveSeconds int       `json:"active_seconds"`
}

// TopOverworkedEmployee is one row of fn_top_overworked_employees: an
// employee whose average daily screen time over the requested period exceeds
// the threshold.
type TopOverworkedEmployee struct {
	EmployeeID     uint    `json:"employee_id"`
	AvgHoursPerDay float64 `json:"avg_hours_per_day"`
	TotalDays      int     `json:"total_days"`
}

// DepartmentLoad is one row of fn_department_load: total and per-employee
// average screen time per department over the requested period.
type DepartmentLoad struct {
	DepartmentID          uint    `json:"department_id"`
	TotalSeconds          int     `json:"total_seconds"`
	AvgSecondsPerEmployee float64 `json:"avg_seconds_per_employee"`
}
