package session

import (
	"time"
)

// EnrollmentStatus is the approval state of a student's enrollment.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentApproved EnrollmentStatus = "approved"
	EnrollmentDenied   EnrollmentStatus = "denied"
)

func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentPending, EnrollmentApproved, EnrollmentDenied:
		return true
	}
	return false
}

// Enrollment is a student's request to join one session. It lives and
// dies with its owning CourseSession; the aggregate is the only writer.
type Enrollment struct {
	id        EnrollmentID
	studentID AttendeeID
	sessionID SessionID
	status    EnrollmentStatus
	createdAt time.Time
	updatedAt time.Time
}

func newEnrollment(studentID AttendeeID, sessionID SessionID, now time.Time) *Enrollment {
	return &Enrollment{
		id:        NewEnrollmentID(),
		studentID: studentID,
		sessionID: sessionID,
		status:    EnrollmentPending,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreEnrollment rehydrates a stored enrollment without re-running
// creation rules; persisted rows are trusted as-is.
func RestoreEnrollment(id EnrollmentID, studentID AttendeeID, sessionID SessionID, status EnrollmentStatus, createdAt, updatedAt time.Time) *Enrollment {
	return &Enrollment{
		id:        id,
		studentID: studentID,
		sessionID: sessionID,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (e *Enrollment) ID() EnrollmentID        { return e.id }
func (e *Enrollment) StudentID() AttendeeID   { return e.studentID }
func (e *Enrollment) SessionID() SessionID    { return e.sessionID }
func (e *Enrollment) Status() EnrollmentStatus { return e.status }
func (e *Enrollment) CreatedAt() time.Time    { return e.createdAt }
func (e *Enrollment) UpdatedAt() time.Time    { return e.updatedAt }

// setStatus applies the target status after the status-machine checks
// that do not need aggregate context. Capacity is the aggregate's job.
func (e *Enrollment) setStatus(to EnrollmentStatus, now time.Time) (changed bool, err error) {
	const op = "Enrollment.setStatus"
	if !to.Valid() {
		return false, NewError(CodeValidation, op, "unknown enrollment status", nil)
	}
	if to == EnrollmentPending {
		return false, NewError(CodeValidation, op, "cannot revert enrollment to pending", nil)
	}
	if to == e.status {
		return false, nil
	}
	e.status = to
	e.updatedAt = now
	return true, nil
}
