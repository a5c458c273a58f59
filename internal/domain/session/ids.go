package session

import (
	"github.com/google/uuid"
)

// Typed identifiers keep the core from mixing up the many uuid-shaped
// references a session carries. All of them reject the zero uuid.

type SessionID uuid.UUID

func NewSessionID() SessionID { return SessionID(uuid.New()) }

func ParseSessionID(s string) (SessionID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return SessionID{}, NewError(CodeValidation, "ParseSessionID", "malformed session id", err)
	}
	if id == uuid.Nil {
		return SessionID{}, NewError(CodeValidation, "ParseSessionID", "session id must not be zero", nil)
	}
	return SessionID(id), nil
}

func (id SessionID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) String() string { return uuid.UUID(id).String() }
func (id SessionID) UUID() uuid.UUID { return uuid.UUID(id) }

type CourseID uuid.UUID

func NewCourseID() CourseID { return CourseID(uuid.New()) }

func (id CourseID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id CourseID) String() string  { return uuid.UUID(id).String() }
func (id CourseID) UUID() uuid.UUID { return uuid.UUID(id) }

type LocationID uuid.UUID

func NewLocationID() LocationID { return LocationID(uuid.New()) }

func (id LocationID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id LocationID) String() string  { return uuid.UUID(id).String() }
func (id LocationID) UUID() uuid.UUID { return uuid.UUID(id) }

// AttendeeID identifies a person known to the attendee directory,
// whether they act as instructor or student.
type AttendeeID uuid.UUID

func NewAttendeeID() AttendeeID { return AttendeeID(uuid.New()) }

func ParseAttendeeID(s string) (AttendeeID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return AttendeeID{}, NewError(CodeValidation, "ParseAttendeeID", "malformed attendee id", err)
	}
	if id == uuid.Nil {
		return AttendeeID{}, NewError(CodeValidation, "ParseAttendeeID", "attendee id must not be zero", nil)
	}
	return AttendeeID(id), nil
}

func (id AttendeeID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AttendeeID) String() string  { return uuid.UUID(id).String() }
func (id AttendeeID) UUID() uuid.UUID { return uuid.UUID(id) }

type EnrollmentID uuid.UUID

func NewEnrollmentID() EnrollmentID { return EnrollmentID(uuid.New()) }

func (id EnrollmentID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id EnrollmentID) String() string  { return uuid.UUID(id).String() }
func (id EnrollmentID) UUID() uuid.UUID { return uuid.UUID(id) }
