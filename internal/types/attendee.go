package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttendeeRole string

const (
	AttendeeRoleInstructor AttendeeRole = "instructor"
	AttendeeRoleStudent    AttendeeRole = "student"
)

type Attendee struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FullName  string         `gorm:"column:full_name;not null" json:"full_name"`
	Email     string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Role      AttendeeRole   `gorm:"column:role;not null;index" json:"role"`
	Metadata  datatypes.JSON `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
}

func (Attendee) TableName() string { return "attendee" }
