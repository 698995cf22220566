// Package domain defines the persistence models for admins, agents, uploads,
// and lead assignments. These types are mapped with GORM and form the core
// data layer of the lead distribution application.
package domain

import "time"

// Role identifies the kind of an authenticated principal. It is a closed
// enumeration: every principal is either an admin or an agent.
type Role string

const (
	// RoleAdmin principals manage agents and trigger lead distribution.
	RoleAdmin Role = "admin"
	// RoleAgent principals receive lead assignments and can only view
	// their own slice of the assignment set.
	RoleAgent Role = "agent"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleAgent }

// Admin represents an administrator account. Admins self-register and are the
// only principals allowed to manage the roster and upload lead files.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Name: display name.
//   - Email: login identifier, stored lowercase; unique within this table.
//     Uniqueness across admins AND agents (one login namespace) is enforced
//     by the service layer, since the two kinds live in separate tables.
//   - PasswordHash: bcrypt hash; never serialized to JSON.
//   - CreatedAt: registration timestamp.
type Admin struct {
	ID           string    `json:"id"    gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"  gorm:"type:varchar(255);not null"`
	Email        string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_admin_email"`
	Role         Role      `json:"role"  gorm:"type:varchar(16);not null;default:'admin'"`
	PasswordHash string    `json:"-"     gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Admin.
func (Admin) TableName() string { return "admins" }

// Agent represents a sales agent that leads are distributed to. Agents are
// created by admins and additionally carry a contact number.
type Agent struct {
	ID           string    `json:"id"     gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name"   gorm:"type:varchar(255);not null"`
	Email        string    `json:"email"  gorm:"type:varchar(255);not null;uniqueIndex:ux_agent_email"`
	Mobile       string    `json:"mobile" gorm:"type:varchar(32);not null"`
	Role         Role      `json:"role"   gorm:"type:varchar(16);not null;default:'agent'"`
	PasswordHash string    `json:"-"      gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the database table name for Agent.
func (Agent) TableName() string { return "agents" }

// Upload records one ingestion event: a lead file that was parsed and
// distributed. Rows are immutable once written and are never deleted; an
// Upload is the durable evidence that an ingestion was attempted, even when
// the subsequent assignment batch write fails.
type Upload struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	Filename     string    `json:"filename"      gorm:"type:varchar(255);not null"`
	TotalRecords int       `json:"total_records" gorm:"not null"`
	UploadedBy   string    `json:"uploaded_by"   gorm:"type:varchar(255);not null"`
	UploadedAt   time.Time `json:"uploaded_at"   gorm:"index"`
}

// TableName returns the database table name for Upload.
func (Upload) TableName() string { return "uploads" }

// Assignment binds one lead row to exactly one agent and one upload.
//
// AgentName is a deliberate denormalized snapshot of the agent's display name
// at distribution time; it is not kept in sync with later renames because it
// records who owned the lead when it was assigned. No foreign keys are
// declared: referential integrity is maintained by the distribution engine at
// write time, and rows are removed only as a cascade of agent deletion.
type Assignment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	AgentID   string    `json:"agent_id"   gorm:"type:char(36);not null;index:idx_assignments_agent"`
	AgentName string    `json:"agent_name" gorm:"type:varchar(255);not null"`
	FirstName string    `json:"first_name" gorm:"type:varchar(255);not null"`
	Phone     string    `json:"phone"      gorm:"type:varchar(64);not null"`
	Notes     string    `json:"notes"      gorm:"type:text"`
	UploadID  string    `json:"upload_id"  gorm:"type:char(36);not null;index:idx_assignments_upload"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Assignment.
func (Assignment) TableName() string { return "assignments" }
