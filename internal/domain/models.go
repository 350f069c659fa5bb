// Package domain defines the persistence models for the screen-time tracking
// schema: organizational entities (departments, positions, users, employees),
// hardware (workstations), tracked software (applications), screen sessions,
// precomputed daily aggregates, and the batch-import audit log. These types
// are mapped with GORM and form the core data layer of the application.
package domain

import "time"

// Batch import log statuses. Transitions are one-way:
// IN_PROGRESS → SUCCESS or IN_PROGRESS → FAILED.
const (
	ImportStatusInProgress = "IN_PROGRESS"
	ImportStatusSuccess    = "SUCCESS"
	ImportStatusFailed     = "FAILED"
)

// Department represents an organizational unit. Department names and codes
// are unique across the company.
//
// Fields:
//   - ID: integer primary key.
//   - Name / Code: unique human-readable name and short code.
//   - CreatedAt: creation timestamp (UTC).
//   - IsActive: soft activity flag; inactive departments are kept for history.
//   - Description: optional free text.
type Department struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(100);not null;uniqueIndex:uq_department_name"`
	Code        string    `json:"code"        gorm:"type:varchar(20);not null;uniqueIndex:uq_department_code"`
	CreatedAt   time.Time `json:"created_at"  gorm:"not null"`
	IsActive    bool      `json:"is_active"   gorm:"not null;default:true"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
}

// TableName returns the database table name for Department.
func (Department) TableName() string { return "departments" }

// Position represents a job position with a seniority level between 1 and 10
// (enforced by the chk_position_level CHECK constraint).
type Position struct {
	ID          uint      `json:"id"          gorm:"primaryKey"`
	Name        string    `json:"name"        gorm:"type:varchar(100);not null;uniqueIndex:uq_position_name"`
	Level       int       `json:"level"       gorm:"not null;check:chk_position_level,level BETWEEN 1 AND 10"`
	CreatedAt   time.Time `json:"created_at"  gorm:"not null"`
	Description *string   `json:"description,omitempty" gorm:"type:text"`
	IsActive    bool      `json:"is_active"   gorm:"not null;default:true"`
}

// TableName returns the database table name for Position.
func (Position) TableName() string { return "positions" }

// User is an account record linked one-to-one with an employee. The API does
// not expose authentication endpoints; the table exists for the schema's
// referential integrity.
type User struct {
	ID           uint      `json:"id"         gorm:"primaryKey"`
	Username     string    `json:"username"   gorm:"type:varchar(50);not null;uniqueIndex:uq_user_username"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	Role         string    `json:"role"       gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time `json:"created_at" gorm:"not null"`
	IsActive     bool      `json:"is_active"  gorm:"not null;default:true"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Employee represents a tracked staff member. Department, position, and user
// references are optional and survive deletion of the referenced row
// (ON DELETE SET NULL).
type Employee struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	FirstName    string    `json:"first_name"    gorm:"type:varchar(50);not null"`
	LastName     string    `json:"last_name"     gorm:"type:varchar(50);not null"`
	Email        *string   `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex:uq_employee_email"`
	DepartmentID *uint     `json:"department_id,omitempty" gorm:"index"`
	PositionID   *uint     `json:"position_id,omitempty"`
	UserID       *uint     `json:"user_id,omitempty" gorm:"uniqueIndex:uq_employee_user"`
	HiredAt      time.Time `json:"hired_at"      gorm:"type:date;not null"`
	IsActive     bool      `json:"is_active"     gorm:"not null;default:true"`

	Department *Department `json:"-" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Position   *Position   `json:"-" gorm:"foreignKey:PositionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	User       *User       `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Employee.
func (Employee) TableName() string { return "employees" }

// Workstation is a physical machine assigned to a department. Hostnames are
// unique within a department (uq_workstation_host_per_dept); inventory
// numbers are unique globally. Workstations are cascade-deleted with their
// department.
type Workstation struct {
	ID              uint      `json:"id"               gorm:"primaryKey"`
	Hostname        string    `json:"hostname"         gorm:"type:varchar(100);not null;uniqueIndex:uq_workstation_host_per_dept,priority:1"`
	InventoryNumber string    `json:"inventory_number" gorm:"type:varchar(50);not null;uniqueIndex:uq_workstation_inventory"`
	DepartmentID    uint      `json:"department_id"    gorm:"not null;uniqueIndex:uq_workstation_host_per_dept,priority:2"`
	OSName          string    `json:"os_name"          gorm:"type:varchar(50);not null"`
	CreatedAt       time.Time `json:"created_at"       gorm:"not null"`
	IsActive        bool      `json:"is_active"        gorm:"not null;default:true"`

	Department Department `json:"-" gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Workstation.
func (Workstation) TableName() string { return "workstations" }

// Application is a piece of software whose usage is tracked inside sessions.
// The IsProductive flag drives productivity reporting.
type Application struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	Name         string    `json:"name"          gorm:"type:varchar(100);not null"`
	Code         string    `json:"code"          gorm:"type:varchar(50);not null;uniqueIndex:uq_application_code"`
	Category     string    `json:"category"      gorm:"type:varchar(50);not null"`
	IsProductive bool      `json:"is_productive" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"    gorm:"not null"`
	IsActive     bool      `json:"is_active"     gorm:"not null;default:true"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "applications" }

// EmployeeWorkstation records an assignment of a workstation to an employee.
// The pair forms the primary key; UnassignedAt is nil while the assignment
// is current.
type EmployeeWorkstation struct {
	EmployeeID    uint       `json:"employee_id"    gorm:"primaryKey"`
	WorkstationID uint       `json:"workstation_id" gorm:"primaryKey"`
	AssignedAt    time.Time  `json:"assigned_at"    gorm:"not null"`
	UnassignedAt  *time.Time `json:"unassigned_at,omitempty"`

	Employee    Employee    `json:"-" gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Workstation Workstation `json:"-" gorm:"foreignKey:WorkstationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for EmployeeWorkstation.
func (EmployeeWorkstation) TableName() string { return "employee_workstations" }

// ScreenSession is one continuous stretch of screen activity by an employee
// at a workstation. The chk_session_time CHECK constraint enforces
// ended_at > started_at at the store level; ActiveSeconds counts the
// non-idle portion of the window.
type ScreenSession struct {
	ID            uint      `json:"id"             gorm:"primaryKey"`
	EmployeeID    uint      `json:"employee_id"    gorm:"not null;index"`
	WorkstationID uint      `json:"workstation_id" gorm:"not null;index"`
	StartedAt     time.Time `json:"started_at"     gorm:"not null;check:chk_session_time,ended_at > started_at"`
	EndedAt       time.Time `json:"ended_at"       gorm:"not null"`
	ActiveSeconds int       `json:"active_seconds" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"     gorm:"not null"`

	Employee    Employee    `json:"-" gorm:"foreignKey:EmployeeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Workstation Workstation `json:"-" gorm:"foreignKey:WorkstationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ScreenSession.
func (ScreenSession) TableName() string { return "screen_sessions" }

// SessionApplicationUsage attributes a share of a session's active time to a
// specific application. The (session, application) pair is the primary key.
type SessionApplicationUsage struct {
	SessionID     uint `json:"session_id"     gorm:"primaryKey"`
	ApplicationID uint `json:"application_id" gorm:"primaryKey"`
	ActiveSeconds int  `json:"active_seconds" gorm:"not null"`

	Session     ScreenSession `json:"-" gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Application Application   `json:"-" gorm:"foreignKey:ApplicationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for SessionApplicationUsage.
func (SessionApplicationUsage) TableName() string { return "session_application_usage" }

// DailyEmployeeStat is a per-employee, per-day aggregate maintained by store
// triggers. The API only reads it through the report views.
type DailyEmployeeStat struct {
	EmployeeID        uint      `json:"employee_id"         gorm:"primaryKey"`
	StatDate          time.Time `json:"stat_date"           gorm:"primaryKey;type:date"`
	TotalSeconds      int       `json:"total_seconds"       gorm:"not null;default:0;check:chk_daily_total_seconds,total_seconds >= 0"`
	SessionsCount     int       `json:"sessions_count"      gorm:"not null;default:0"`
	AvgSessionSeconds float64   `json:"avg_session_seconds" gorm:"type:numeric(10,2);not null;default:0"`
}

// TableName returns the database table name for DailyEmployeeStat.
func (DailyEmployeeStat) TableName() string { return "daily_employee_stats" }

// BatchImportLog is the durable audit record of one batch-import invocation.
//
// Lifecycle: the row is created (flushed, not committed) with status
// IN_PROGRESS at the start of an import so it receives an identifier, mutated
// in place while rows are processed, and finalized exactly once, either with
// the batch commit (normal path) or in an independent recovery commit after a
// fatal failure.
//
// Invariants once terminal:
//   - SuccessRows + ErrorRows == TotalRows
//   - Status is SUCCESS iff ErrorRows == 0
//   - ErrorMessage holds newline-joined per-row failure descriptions, or a
//     single "Fatal error: ..." description on the fatal path.
type BatchImportLog struct {
	ID           uint       `json:"id"            gorm:"primaryKey"`
	ImportType   string     `json:"import_type"   gorm:"type:varchar(50);not null"`
	FileName     *string    `json:"file_name,omitempty" gorm:"type:text"`
	StartedAt    time.Time  `json:"started_at"    gorm:"not null"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	TotalRows    int        `json:"total_rows"    gorm:"not null;default:0"`
	SuccessRows  int        `json:"success_rows"  gorm:"not null;default:0"`
	ErrorRows    int        `json:"error_rows"    gorm:"not null;default:0"`
	Status       string     `json:"status"        gorm:"type:varchar(20);not null;default:'IN_PROGRESS'"`
	ErrorMessage *string    `json:"error_message,omitempty" gorm:"type:text"`
}

// TableName returns the database table name for BatchImportLog.
func (BatchImportLog) TableName() string { return "batch_import_logs" }
