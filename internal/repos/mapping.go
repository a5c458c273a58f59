package repos

import (
  "fmt"

  "github.com/google/uuid"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// sessionToModel flattens the domain aggregate into its persisted rows.
// RowVersion is left to the repo; the aggregate never sees it.
func sessionToModel(cs *session.CourseSession) *types.CourseSession {
  model := &types.CourseSession{
    ID:         cs.ID().UUID(),
    CourseID:   cs.CourseID().UUID(),
    CourseCode: cs.CourseCode().String(),
    StartDate:  cs.StartDate(),
    EndDate:    cs.EndDate(),
    Capacity:   cs.Capacity(),
    LocationID: cs.LocationID().UUID(),
    CreatedAt:  cs.CreatedAt(),
    UpdatedAt:  cs.UpdatedAt(),
  }
  for _, instructorID := range cs.Instructors() {
    model.Instructors = append(model.Instructors, &types.SessionInstructor{
      SessionID:  model.ID,
      AttendeeID: instructorID.UUID(),
    })
  }
  for _, e := range cs.Enrollments() {
    model.Enrollments = append(model.Enrollments, &types.Enrollment{
      ID:        e.ID().UUID(),
      SessionID: e.SessionID().UUID(),
      StudentID: e.StudentID().UUID(),
      Status:    string(e.Status()),
      CreatedAt: e.CreatedAt(),
      UpdatedAt: e.UpdatedAt(),
    })
  }
  return model
}

// sessionFromModel rehydrates the aggregate from persisted rows.
func sessionFromModel(model *types.CourseSession) (*session.CourseSession, error) {
  code, err := session.ParseCourseCode(model.CourseCode)
  if err != nil {
    return nil, fmt.Errorf("stored course code %q is malformed: %w", model.CourseCode, err)
  }
  instructors := make([]session.AttendeeID, 0, len(model.Instructors))
  for _, si := range model.Instructors {
    instructors = append(instructors, session.AttendeeID(si.AttendeeID))
  }
  enrollments := make([]*session.Enrollment, 0, len(model.Enrollments))
  for _, e := range model.Enrollments {
    enrollments = append(enrollments, session.RestoreEnrollment(
      session.EnrollmentID(e.ID),
      session.AttendeeID(e.StudentID),
      session.SessionID(e.SessionID),
      session.EnrollmentStatus(e.Status),
      e.CreatedAt,
      e.UpdatedAt,
    ))
  }
  return session.RestoreCourseSession(
    session.SessionID(model.ID),
    session.CourseID(model.CourseID),
    code,
    model.StartDate,
    model.EndDate,
    model.Capacity,
    session.LocationID(model.LocationID),
    instructors,
    enrollments,
    model.CreatedAt,
    model.UpdatedAt,
  ), nil
}

func enrollmentIDs(enrollments []*types.Enrollment) []uuid.UUID {
  ids := make([]uuid.UUID, 0, len(enrollments))
  for _, e := range enrollments {
    ids = append(ids, e.ID)
  }
  return ids
}
