package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourseSession is the persisted shape of the scheduling aggregate.
// RowVersion is the optimistic-concurrency token: the repo rotates it
// on every successful Update and rejects writes carrying a stale one.
type CourseSession struct {
	ID          uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	CourseID    uuid.UUID            `gorm:"type:uuid;not null;index" json:"course_id"`
	Course      *Course              `gorm:"foreignKey:CourseID;references:ID" json:"course,omitempty"`
	CourseCode  string               `gorm:"column:course_code;not null" json:"course_code"`
	StartDate   time.Time            `gorm:"column:start_date;not null" json:"start_date"`
	EndDate     time.Time            `gorm:"column:end_date;not null" json:"end_date"`
	Capacity    int                  `gorm:"column:capacity;not null" json:"capacity"`
	LocationID  uuid.UUID            `gorm:"type:uuid;not null;index" json:"location_id"`
	Location    *Location            `gorm:"foreignKey:LocationID;references:ID" json:"location,omitempty"`
	RowVersion  uuid.UUID            `gorm:"type:uuid;column:row_version;not null" json:"row_version"`
	Metadata    datatypes.JSON       `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
	Instructors []*SessionInstructor `gorm:"foreignKey:SessionID;references:ID" json:"instructors,omitempty"`
	Enrollments []*Enrollment        `gorm:"foreignKey:SessionID;references:ID" json:"enrollments,omitempty"`
	CreatedAt   time.Time            `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time            `gorm:"not null" json:"updated_at"`
}

func (CourseSession) TableName() string { return "course_session" }

// SessionInstructor links a session to an instructor it references.
// The attendee itself is not owned by the session.
type SessionInstructor struct {
	SessionID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"session_id"`
	AttendeeID uuid.UUID `gorm:"type:uuid;primaryKey" json:"attendee_id"`
	Attendee   *Attendee `gorm:"foreignKey:AttendeeID;references:ID" json:"attendee,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (SessionInstructor) TableName() string { return "session_instructor" }
