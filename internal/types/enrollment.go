package types

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment rows are owned by their session and removed with it.
type Enrollment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_session_student" json:"session_id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_session_student" json:"student_id"`
	Student   *Attendee `gorm:"foreignKey:StudentID;references:ID" json:"student,omitempty"`
	Status    string    `gorm:"column:status;not null" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Enrollment) TableName() string { return "enrollment" }
