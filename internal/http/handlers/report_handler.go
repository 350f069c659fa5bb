// Reporting HTTP handlers. All report endpoints are read-only projections
// over store views and functions; they never mutate state.
//
// Date query parameters use the YYYY-MM-DD form. Range endpoints reject an
// inverted range (date_from after date_to) with 400 before querying.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-screentime-backend/internal/repo"
)

// dateLayout is the wire format of report date parameters.
const dateLayout = "2006-01-02"

// queryDate parses a required YYYY-MM-DD query parameter. On failure it
// attaches a BAD_REQUEST error and returns ok=false.
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		_ = c.Error(BadRequest(name + " is required (YYYY-MM-DD)"))
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		_ = c.Error(BadRequest(name + " must be a date in YYYY-MM-DD form"))
		return time.Time{}, false
	}
	return t, true
}

// queryDateRange parses the date_from/date_to pair and rejects inverted
// ranges.
func queryDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	from, valid := queryDate(c, "date_from")
	if !valid {
		return
	}
	to, valid = queryDate(c, "date_to")
	if !valid {
		return
	}
	if from.After(to) {
		_ = c.Error(BadRequest("date_from must not be after date_to"))
		return
	}
	return from, to, true
}

// EmployeeDailyReport godoc
// @ID          employeeDailyReport
// @Summary     Daily screen-time stats for one employee
// @Tags        Reports
// @Produce     json
//
// @Param       employee_id  query  int     true  "Employee ID"
// @Param       stat_date    query  string  true  "Date (YYYY-MM-DD)"  example(2024-06-03)
//
// @Success     200  {array}   domain.EmployeeDailyReport
// @Failure     400  {object}  handlers.ErrorEnvelope  "Missing or malformed parameters"
// @Router      /reports/employee-daily [get]
func (h *Handlers) EmployeeDailyReport(c *gin.Context) {
	empID, err := strconv.ParseUint(c.Query("employee_id"), 10, 32)
	if err != nil || empID == 0 {
		_ = c.Error(BadRequest("employee_id must be a positive integer"))
		return
	}
	statDate, valid := queryDate(c, "stat_date")
	if !valid {
		return
	}
	out, err := repo.EmployeeDailyStats(c.Request.Context(), h.db, uint(empID), statDate)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// DepartmentDailyReport godoc
// @ID          departmentDailyReport
// @Summary     Daily screen-time stats aggregated per department
// @Tags        Reports
// @Produce     json
//
// @Param       stat_date  query  string  true  "Date (YYYY-MM-DD)"  example(2024-06-03)
//
// @Success     200  {array}   domain.DepartmentDailyReport
// @Failure     400  {object}  handlers.ErrorEnvelope  "Missing or malformed parameters"
// @Router      /reports/department-daily [get]
func (h *Handlers) DepartmentDailyReport(c *gin.Context) {
	statDate, valid := queryDate(c, "stat_date")
	if !valid {
		return
	}
	out, err := repo.DepartmentDailyStats(c.Request.Context(), h.db, statDate)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// LastActivityReport godoc
// @ID          lastActivityReport
// @Summary     Most recent session end per employee
// @Tags        Reports
// @Produce     json
//
// @Success     200  {array}   domain.EmployeeLastActivity
// @Failure     500  {object}  handlers.ErrorEnvelope  "Store failure"
// @Router      /reports/last-activity [get]
func (h *Handlers) LastActivityReport(c *gin.Context) {
	out, err := repo.EmployeeLastActivity(c.Request.Context(), h.db)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// TopOverworkedReport godoc
// @ID          topOverworkedReport
// @Summary     Employees averaging above a daily screen-time threshold
// @Tags        Reports
// @Produce     json
//
// @Param       date_from          query  string  true   "Range start (YYYY-MM-DD)"  example(2024-06-01)
// @Param       date_to            query  string  true   "Range end (YYYY-MM-DD)"    example(2024-06-30)
// @Param       min_hours_per_day  query  number  false  "Threshold in hours"        default(8)
//
// @Success     200  {array}   domain.TopOverworkedEmployee
// @Failure     400  {object}  handlers.ErrorEnvelope  "Missing or malformed parameters"
// @Router      /reports/top-overworked [get]
func (h *Handlers) TopOverworkedReport(c *gin.Context) {
	from, to, valid := queryDateRange(c)
	if !valid {
		return
	}
	minHours := 8.0
	if raw := c.Query("min_hours_per_day"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			_ = c.Error(BadRequest("min_hours_per_day must be a non-negative number"))
			return
		}
		minHours = v
	}
	out, err := repo.TopOverworkedEmployees(c.Request.Context(), h.db, from, to, minHours)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}

// DepartmentLoadReport godoc
// @ID          departmentLoadReport
// @Summary     Aggregate department load over a date range
// @Tags        Reports
// @Produce     json
//
// @Param       date_from  query  string  true  "Range start (YYYY-MM-DD)"  example(2024-06-01)
// @Param       date_to    query  string  true  "Range end (YYYY-MM-DD)"    example(2024-06-30)
//
// @Success     200  {array}   domain.DepartmentLoad
// @Failure     400  {object}  handlers.ErrorEnvelope  "Missing or malformed parameters"
// @Router      /reports/department-load [get]
func (h *Handlers) DepartmentLoadReport(c *gin.Context) {
	from, to, valid := queryDateRange(c)
	if !valid {
		return
	}
	out, err := repo.DepartmentLoad(c.Request.Context(), h.db, from, to)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, out)
}
