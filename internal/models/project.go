package models

import "time"

// Project statuses
const (
	ProjectStatusNotStarted = "not_started"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
	ProjectStatusOnHold     = "on_hold"
)

// Project represents a tracked project (PostgreSQL). Progress is derived
// from the completion state of the project's milestones and is never written
// directly by a user after creation.
type Project struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"` // Owner; mutations are filtered on this
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status" gorm:"size:20;default:'in_progress'"`
	Progress      int       `json:"progress" gorm:"default:0"` // 0-100, recomputed from milestones
	IsPublic      bool      `json:"is_public" gorm:"default:false"`
	PublicShareID string    `json:"public_share_id,omitempty" gorm:"size:36;index"` // Set iff the project is public
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValidProjectStatus reports whether s is one of the known statuses.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusNotStarted, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}
