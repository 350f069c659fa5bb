// Read-only report queries against precomputed views and SQL functions.
// The views and functions are owned by the database migration scripts; this
// file only parameterizes and scans them. All queries are read-only and never
// mutate state.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// EmployeeDailyStats returns the aggregate screen-time row for one employee
// on one day from v_employee_daily_stats. The result may be empty when the
// employee had no activity that day.
func EmployeeDailyStats(ctx context.Context, db *gorm.DB, employeeID uint, statDate time.Time) ([]domain.EmployeeDailyReport, error) {
	var out []domain.EmployeeDailyReport
	err := db.WithContext(ctx).
		Raw("SELECT * FROM v_employee_daily_stats WHERE employee_id = ? AND stat_date = ?", employeeID, statDate).
		Scan(&out).Error
	return out, err
}

// DepartmentDailyStats returns per-department totals for one day from
// v_department_daily_stats.
func DepartmentDailyStats(ctx context.Context, db *gorm.DB, statDate time.Time) ([]domain.DepartmentDailyReport, error) {
	var out []domain.DepartmentDailyReport
	err := db.WithContext(ctx).
		Raw("SELECT * FROM v_department_daily_stats WHERE stat_date = ?", statDate).
		Scan(&out).Error
	return out, err
}

// EmployeeLastActivity returns the most recent recorded session per employee
// from v_employee_last_activity.
func EmployeeLastActivity(ctx context.Context, db *gorm.DB) ([]domain.EmployeeLastActivity, error) {
	var out []domain.EmployeeLastActivity
	err := db.WithContext(ctx).
		Raw("SELECT * FROM v_employee_last_activity").
		Scan(&out).Error
	return out, err
}

// TopOverworkedEmployees returns employees whose average daily screen time
// over [dateFrom, dateTo] exceeds minHoursPerDay, computed by
// fn_top_overworked_employees in the store.
func TopOverworkedEmployees(ctx context.Context, db *gorm.DB, dateFrom, dateTo time.Time, minHoursPerDay float64) ([]domain.TopOverworkedEmployee, error) {
	var out []domain.TopOverworkedEmployee
	err := db.WithContext(ctx).
		Raw("SELECT * FROM fn_top_overworked_employees(?, ?, ?)", dateFrom, dateTo, minHoursPerDay).
		Scan(&out).Error
	return out, err
}

// DepartmentLoad returns per-department totals and per-employee averages over
// [dateFrom, dateTo], computed by fn_department_load in the store.
func DepartmentLoad(ctx context.Context, db *gorm.DB, dateFrom, dateTo time.Time) ([]domain.DepartmentLoad, error) {
	var out []domain.DepartmentLoad
	err := db.WithContext(ctx).
		Raw("SELECT * FROM fn_department_load(?, ?)", dateFrom, dateTo).
		Scan(&out).Error
	return out, err
}
