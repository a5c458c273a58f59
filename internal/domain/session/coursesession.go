package session

import (
	"fmt"
	"time"
)

const (
	MinCapacity = 1
	MaxCapacity = 40
)

// CourseSession is the aggregate root of the scheduling core. It owns
// its enrollments and references (never owns) instructors, the course
// and the location. Every mutation re-checks the invariants:
//
//   - endDate strictly after startDate
//   - capacity within [MinCapacity, MaxCapacity]
//   - capacity never below the approved-enrollment count
//   - instructors unique; at least one before any student joins
//   - one enrollment per student
type CourseSession struct {
	id          SessionID
	courseID    CourseID
	courseCode  CourseCode
	startDate   time.Time
	endDate     time.Time
	capacity    int
	locationID  LocationID
	instructors []AttendeeID
	enrollments []*Enrollment
	createdAt   time.Time
	updatedAt   time.Time
}

// NewCourseSession validates and builds a fresh session with no
// instructors and no enrollments.
func NewCourseSession(id SessionID, courseID CourseID, courseCode CourseCode, start, end time.Time, capacity int, locationID LocationID) (*CourseSession, error) {
	const op = "NewCourseSession"
	if id.IsZero() {
		return nil, NewError(CodeValidation, op, "session id must not be zero", nil)
	}
	if courseID.IsZero() {
		return nil, NewError(CodeValidation, op, "course id must not be zero", nil)
	}
	if courseCode.IsZero() {
		return nil, NewError(CodeValidation, op, "course code must not be zero", nil)
	}
	if err := validateDates(op, start, end); err != nil {
		return nil, err
	}
	if err := validateCapacity(op, capacity); err != nil {
		return nil, err
	}
	if locationID.IsZero() {
		return nil, NewError(CodeValidation, op, "location id must not be zero", nil)
	}
	now := time.Now().UTC()
	return &CourseSession{
		id:         id,
		courseID:   courseID,
		courseCode: courseCode,
		startDate:  start,
		endDate:    end,
		capacity:   capacity,
		locationID: locationID,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// RestoreCourseSession rehydrates a persisted session. Stored state is
// trusted; historical rows are not re-validated.
func RestoreCourseSession(id SessionID, courseID CourseID, courseCode CourseCode, start, end time.Time, capacity int, locationID LocationID, instructors []AttendeeID, enrollments []*Enrollment, createdAt, updatedAt time.Time) *CourseSession {
	return &CourseSession{
		id:          id,
		courseID:    courseID,
		courseCode:  courseCode,
		startDate:   start,
		endDate:     end,
		capacity:    capacity,
		locationID:  locationID,
		instructors: append([]AttendeeID(nil), instructors...),
		enrollments: append([]*Enrollment(nil), enrollments...),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (cs *CourseSession) ID() SessionID          { return cs.id }
func (cs *CourseSession) CourseID() CourseID     { return cs.courseID }
func (cs *CourseSession) CourseCode() CourseCode { return cs.courseCode }
func (cs *CourseSession) StartDate() time.Time   { return cs.startDate }
func (cs *CourseSession) EndDate() time.Time     { return cs.endDate }
func (cs *CourseSession) Capacity() int          { return cs.capacity }
func (cs *CourseSession) LocationID() LocationID { return cs.locationID }
func (cs *CourseSession) CreatedAt() time.Time   { return cs.createdAt }
func (cs *CourseSession) UpdatedAt() time.Time   { return cs.updatedAt }

// Instructors returns a copy; the aggregate keeps the only mutable list.
func (cs *CourseSession) Instructors() []AttendeeID {
	return append([]AttendeeID(nil), cs.instructors...)
}

// Enrollments returns a copied view. Enrollment exposes no mutators, so
// sharing the elements is safe.
func (cs *CourseSession) Enrollments() []*Enrollment {
	return append([]*Enrollment(nil), cs.enrollments...)
}

func (cs *CourseSession) HasInstructor(id AttendeeID) bool {
	for _, existing := range cs.instructors {
		if existing == id {
			return true
		}
	}
	return false
}

func (cs *CourseSession) EnrollmentFor(studentID AttendeeID) (*Enrollment, bool) {
	for _, e := range cs.enrollments {
		if e.studentID == studentID {
			return e, true
		}
	}
	return nil, false
}

// ApprovedEnrollmentsCount is recomputed on every call so it can never
// drift from the enrollment list.
func (cs *CourseSession) ApprovedEnrollmentsCount() int {
	count := 0
	for _, e := range cs.enrollments {
		if e.status == EnrollmentApproved {
			count++
		}
	}
	return count
}

func (cs *CourseSession) UpdateCapacity(newCapacity int) error {
	const op = "CourseSession.UpdateCapacity"
	if err := validateCapacity(op, newCapacity); err != nil {
		return err
	}
	if newCapacity == cs.capacity {
		return nil
	}
	if approved := cs.ApprovedEnrollmentsCount(); newCapacity < approved {
		return NewError(CodeInvariantViolation, op, fmt.Sprintf("capacity %d is below %d approved enrollments", newCapacity, approved), nil)
	}
	cs.capacity = newCapacity
	cs.touch()
	return nil
}

func (cs *CourseSession) UpdateDates(start, end time.Time) error {
	const op = "CourseSession.UpdateDates"
	if err := validateDates(op, start, end); err != nil {
		return err
	}
	if start.Equal(cs.startDate) && end.Equal(cs.endDate) {
		return nil
	}
	cs.startDate = start
	cs.endDate = end
	cs.touch()
	return nil
}

func (cs *CourseSession) UpdateLocation(id LocationID) error {
	const op = "CourseSession.UpdateLocation"
	if id.IsZero() {
		return NewError(CodeValidation, op, "location id must not be zero", nil)
	}
	if id == cs.locationID {
		return nil
	}
	cs.locationID = id
	cs.touch()
	return nil
}

func (cs *CourseSession) UpdateCourse(courseID CourseID, courseCode CourseCode) error {
	const op = "CourseSession.UpdateCourse"
	if courseID.IsZero() {
		return NewError(CodeValidation, op, "course id must not be zero", nil)
	}
	if courseCode.IsZero() {
		return NewError(CodeValidation, op, "course code must not be zero", nil)
	}
	if courseID == cs.courseID && courseCode == cs.courseCode {
		return nil
	}
	cs.courseID = courseID
	cs.courseCode = courseCode
	cs.touch()
	return nil
}

// SetInstructors replaces the whole instructor set.
func (cs *CourseSession) SetInstructors(instructors []AttendeeID) error {
	const op = "CourseSession.SetInstructors"
	if len(instructors) == 0 {
		return NewError(CodeValidation, op, "at least one instructor is required", nil)
	}
	seen := make(map[AttendeeID]struct{}, len(instructors))
	for _, id := range instructors {
		if id.IsZero() {
			return NewError(CodeValidation, op, "instructor id must not be zero", nil)
		}
		if _, dup := seen[id]; dup {
			return NewError(CodeValidation, op, fmt.Sprintf("duplicate instructor %s", id), nil)
		}
		seen[id] = struct{}{}
	}
	if cs.sameInstructorSet(seen) {
		return nil
	}
	cs.instructors = append([]AttendeeID(nil), instructors...)
	cs.touch()
	return nil
}

func (cs *CourseSession) AddInstructor(id AttendeeID) error {
	const op = "CourseSession.AddInstructor"
	if id.IsZero() {
		return NewError(CodeValidation, op, "instructor id must not be zero", nil)
	}
	if cs.HasInstructor(id) {
		return NewError(CodeConflict, op, fmt.Sprintf("instructor %s already assigned", id), nil)
	}
	cs.instructors = append(cs.instructors, id)
	cs.touch()
	return nil
}

// AddStudent creates the student's Pending enrollment. A session with
// no instructor cannot take students.
func (cs *CourseSession) AddStudent(studentID AttendeeID) (*Enrollment, error) {
	const op = "CourseSession.AddStudent"
	if studentID.IsZero() {
		return nil, NewError(CodeValidation, op, "student id must not be zero", nil)
	}
	if len(cs.instructors) == 0 {
		return nil, NewError(CodePreconditionFailed, op, "no instructor assigned to session", nil)
	}
	if _, exists := cs.EnrollmentFor(studentID); exists {
		return nil, NewError(CodeConflict, op, fmt.Sprintf("student %s already enrolled", studentID), nil)
	}
	enrollment := newEnrollment(studentID, cs.id, time.Now().UTC())
	cs.enrollments = append(cs.enrollments, enrollment)
	cs.touch()
	return enrollment, nil
}

// SetEnrollmentStatus drives the status machine for one student.
// Entering Approved is gated on free capacity at this exact moment;
// leaving Approved never is. Pending is not a reachable target.
func (cs *CourseSession) SetEnrollmentStatus(studentID AttendeeID, to EnrollmentStatus) error {
	const op = "CourseSession.SetEnrollmentStatus"
	enrollment, ok := cs.EnrollmentFor(studentID)
	if !ok {
		return NewError(CodeNotFound, op, fmt.Sprintf("student %s not enrolled", studentID), nil)
	}
	if to == EnrollmentApproved && enrollment.status != EnrollmentApproved {
		if cs.ApprovedEnrollmentsCount() >= cs.capacity {
			return NewError(CodeInvariantViolation, op, "session full", nil)
		}
	}
	changed, err := enrollment.setStatus(to, time.Now().UTC())
	if err != nil {
		return err
	}
	if changed {
		cs.touch()
	}
	return nil
}

func (cs *CourseSession) sameInstructorSet(want map[AttendeeID]struct{}) bool {
	if len(want) != len(cs.instructors) {
		return false
	}
	for _, id := range cs.instructors {
		if _, ok := want[id]; !ok {
			return false
		}
	}
	return true
}

func (cs *CourseSession) touch() {
	cs.updatedAt = time.Now().UTC()
}

func validateDates(op string, start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return NewError(CodeValidation, op, "start and end dates are required", nil)
	}
	if !end.After(start) {
		return NewError(CodeValidation, op, "end date must be after start date", nil)
	}
	return nil
}

func validateCapacity(op string, capacity int) error {
	if capacity < MinCapacity || capacity > MaxCapacity {
		return NewError(CodeValidation, op, fmt.Sprintf("capacity must be within [%d,%d]", MinCapacity, MaxCapacity), nil)
	}
	return nil
}
