package services

import (
  "context"
  "testing"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// fakeSessionRepo keeps aggregates in memory and enforces the same
// token-rotation contract as the real repo.
type fakeSessionRepo struct {
  sessions map[uuid.UUID]*session.CourseSession
  tokens   map[uuid.UUID]uuid.UUID
}

func newFakeSessionRepo() *fakeSessionRepo {
  return &fakeSessionRepo{
    sessions: map[uuid.UUID]*session.CourseSession{},
    tokens:   map[uuid.UUID]uuid.UUID{},
  }
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error) {
  return f.GetByIDWithInstructorsAndEnrollments(ctx, tx, id)
}

func (f *fakeSessionRepo) GetByIDWithInstructorsAndEnrollments(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error) {
  cs, ok := f.sessions[id]
  if !ok {
    return nil, uuid.Nil, session.NewError(session.CodeNotFound, "fakeSessionRepo.GetByID", "course session not found", nil)
  }
  return cs, f.tokens[id], nil
}

func (f *fakeSessionRepo) GetProjection(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseSession, error) {
  if _, ok := f.sessions[id]; !ok {
    return nil, session.NewError(session.CodeNotFound, "fakeSessionRepo.GetProjection", "course session not found", nil)
  }
  return &types.CourseSession{ID: id, RowVersion: f.tokens[id]}, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, tx *gorm.DB, filter repos.CourseSessionFilter) ([]*types.CourseSession, error) {
  return nil, nil
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, cs *session.CourseSession) (uuid.UUID, error) {
  token := uuid.New()
  f.sessions[cs.ID().UUID()] = cs
  f.tokens[cs.ID().UUID()] = token
  return token, nil
}

func (f *fakeSessionRepo) Update(ctx context.Context, tx *gorm.DB, cs *session.CourseSession, expectedToken uuid.UUID) (uuid.UUID, error) {
  id := cs.ID().UUID()
  if _, ok := f.sessions[id]; !ok {
    return uuid.Nil, session.NewError(session.CodeNotFound, "fakeSessionRepo.Update", "course session not found", nil)
  }
  if f.tokens[id] != expectedToken {
    return uuid.Nil, session.NewError(session.CodeConflict, "fakeSessionRepo.Update", "course session was modified concurrently", nil)
  }
  newToken := uuid.New()
  f.sessions[id] = cs
  f.tokens[id] = newToken
  return newToken, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
  if _, ok := f.sessions[id]; !ok {
    return false, nil
  }
  delete(f.sessions, id)
  delete(f.tokens, id)
  return true, nil
}

type fakeAttendeeRepo struct {
  attendees map[uuid.UUID]*types.Attendee
  lookups   int
}

func (f *fakeAttendeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attendee, error) {
  f.lookups++
  return f.attendees[id], nil
}

func (f *fakeAttendeeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attendee, error) {
  var out []*types.Attendee
  for _, id := range ids {
    if a, ok := f.attendees[id]; ok {
      out = append(out, a)
    }
  }
  return out, nil
}

func (f *fakeAttendeeRepo) List(ctx context.Context, tx *gorm.DB, role types.AttendeeRole) ([]*types.Attendee, error) {
  return nil, nil
}

func (f *fakeAttendeeRepo) Create(ctx context.Context, tx *gorm.DB, attendees []*types.Attendee) ([]*types.Attendee, error) {
  return attendees, nil
}

type fakeCourseRepo struct {
  courses map[string]*types.Course
}

func (f *fakeCourseRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Course, error) {
  return f.courses[code], nil
}

func (f *fakeCourseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
  return nil, nil
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  return courses, nil
}

type fakeLocationRepo struct {
  locations map[string]*types.Location
}

func (f *fakeLocationRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Location, error) {
  return f.locations[name], nil
}

func (f *fakeLocationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Location, error) {
  return nil, nil
}

func (f *fakeLocationRepo) Create(ctx context.Context, tx *gorm.DB, locations []*types.Location) ([]*types.Location, error) {
  return locations, nil
}

type serviceFixture struct {
  svc       CourseSessionService
  sessions  *fakeSessionRepo
  attendees *fakeAttendeeRepo
  courses   *fakeCourseRepo
  locations *fakeLocationRepo

  instructorID uuid.UUID
  studentID    uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
  t.Helper()
  log, err := logger.New("test")
  if err != nil {
    t.Fatalf("logger.New: %v", err)
  }

  instructorID := uuid.New()
  studentID := uuid.New()
  now := time.Now().UTC()

  fx := &serviceFixture{
    sessions: newFakeSessionRepo(),
    attendees: &fakeAttendeeRepo{attendees: map[uuid.UUID]*types.Attendee{
      instructorID: {ID: instructorID, FullName: "Maaike de Vries", Role: types.AttendeeRoleInstructor, CreatedAt: now, UpdatedAt: now},
      studentID:    {ID: studentID, FullName: "Priya Nair", Role: types.AttendeeRoleStudent, CreatedAt: now, UpdatedAt: now},
    }},
    courses: &fakeCourseRepo{courses: map[string]*types.Course{
      "GOL-FC-010": {ID: uuid.New(), Code: "GOL-FC-010", Subject: "Go Language", Title: "Go Foundations"},
    }},
    locations: &fakeLocationRepo{locations: map[string]*types.Location{
      "Amsterdam HQ": {ID: uuid.New(), Name: "Amsterdam HQ", Seats: 40},
    }},
    instructorID: instructorID,
    studentID:    studentID,
  }
  fx.svc = NewCourseSessionService(nil, log, fx.sessions, fx.attendees, fx.courses, fx.locations)
  return fx
}

func validCreateInput(fx *serviceFixture) CreateCourseSessionInput {
  start := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)
  return CreateCourseSessionInput{
    CourseCode:    "GOL-FC-010",
    LocationName:  "Amsterdam HQ",
    StartDate:     start,
    EndDate:       start.Add(8 * time.Hour),
    Capacity:      12,
    InstructorIDs: []uuid.UUID{fx.instructorID},
  }
}

func (fx *serviceFixture) createSession(t *testing.T) (uuid.UUID, string) {
  t.Helper()
  projection, err := fx.svc.CreateCourseSession(context.Background(), nil, validCreateInput(fx))
  if err != nil {
    t.Fatalf("CreateCourseSession: %v", err)
  }
  return projection.ID, projection.RowVersion.String()
}

func TestCreateCourseSessionRequiresInstructors(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.InstructorIDs = nil

  _, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("want validation error, got %v", err)
  }
}

func TestCreateCourseSessionDedupesInstructors(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.InstructorIDs = []uuid.UUID{fx.instructorID, fx.instructorID, fx.instructorID}

  projection, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if err != nil {
    t.Fatalf("CreateCourseSession: %v", err)
  }
  if fx.attendees.lookups != 1 {
    t.Fatalf("attendee lookups: want=1 got=%d", fx.attendees.lookups)
  }
  cs := fx.sessions.sessions[projection.ID]
  if got := len(cs.Instructors()); got != 1 {
    t.Fatalf("instructor count: want=1 got=%d", got)
  }
}

func TestCreateCourseSessionUnknownCourse(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.CourseCode = "KUB-FC-010"

  _, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if !session.IsCode(err, session.CodeNotFound) {
    t.Fatalf("want not_found, got %v", err)
  }
}

func TestCreateCourseSessionUnknownLocation(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.LocationName = "Atlantis"

  _, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if !session.IsCode(err, session.CodeNotFound) {
    t.Fatalf("want not_found, got %v", err)
  }
}

func TestCreateCourseSessionRejectsNonInstructorRole(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.InstructorIDs = []uuid.UUID{fx.studentID}

  _, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("want validation (wrong role), got %v", err)
  }
}

func TestCreateCourseSessionUnknownAttendee(t *testing.T) {
  fx := newServiceFixture(t)
  in := validCreateInput(fx)
  in.InstructorIDs = []uuid.UUID{uuid.New()}

  _, err := fx.svc.CreateCourseSession(context.Background(), nil, in)
  if !session.IsCode(err, session.CodeNotFound) {
    t.Fatalf("want not_found, got %v", err)
  }
}

func TestMutationsRejectMissingToken(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, _ := fx.createSession(t)

  if _, err := fx.svc.EnrollStudent(context.Background(), nil, sessionID, fx.studentID, ""); !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("EnrollStudent empty token: want validation, got %v", err)
  }
  if _, err := fx.svc.AddInstructorToCourseSession(context.Background(), nil, sessionID, fx.instructorID, "not-a-token"); !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("AddInstructor malformed token: want validation, got %v", err)
  }
}

func TestEnrollStudentRequiresStudentRole(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  _, err := fx.svc.EnrollStudent(context.Background(), nil, sessionID, fx.instructorID, token)
  if !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("want validation (wrong role), got %v", err)
  }
}

func TestEnrollStudentHappyPath(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  projection, err := fx.svc.EnrollStudent(context.Background(), nil, sessionID, fx.studentID, token)
  if err != nil {
    t.Fatalf("EnrollStudent: %v", err)
  }
  if projection.RowVersion.String() == token {
    t.Fatalf("token was not rotated")
  }
  cs := fx.sessions.sessions[sessionID]
  enrollment, ok := cs.EnrollmentFor(session.AttendeeID(fx.studentID))
  if !ok {
    t.Fatalf("enrollment missing")
  }
  if enrollment.Status() != session.EnrollmentPending {
    t.Fatalf("status: want=%q got=%q", session.EnrollmentPending, enrollment.Status())
  }
}

func TestSetEnrollmentStatusRejectsPendingTarget(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  tx := &gorm.DB{}
  _, err := fx.svc.SetEnrollmentStatus(context.Background(), tx, sessionID, fx.studentID, session.EnrollmentPending, token)
  if !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("pending target: want validation, got %v", err)
  }
}

func TestSetEnrollmentStatusApproves(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  projection, err := fx.svc.EnrollStudent(context.Background(), nil, sessionID, fx.studentID, token)
  if err != nil {
    t.Fatalf("EnrollStudent: %v", err)
  }

  tx := &gorm.DB{}
  if _, err := fx.svc.SetEnrollmentStatus(context.Background(), tx, sessionID, fx.studentID, session.EnrollmentApproved, projection.RowVersion.String()); err != nil {
    t.Fatalf("SetEnrollmentStatus: %v", err)
  }
  cs := fx.sessions.sessions[sessionID]
  if got := cs.ApprovedEnrollmentsCount(); got != 1 {
    t.Fatalf("approved count: want=1 got=%d", got)
  }
}

// Two writers share the token from the same read; the second write
// must surface the repo's conflict untouched.
func TestStaleTokenConflict(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  capacity := 20
  if _, err := fx.svc.UpdateCourseSession(context.Background(), nil, sessionID, UpdateCourseSessionInput{Capacity: &capacity}, token); err != nil {
    t.Fatalf("first update: %v", err)
  }
  capacity = 25
  _, err := fx.svc.UpdateCourseSession(context.Background(), nil, sessionID, UpdateCourseSessionInput{Capacity: &capacity}, token)
  if !session.IsCode(err, session.CodeConflict) {
    t.Fatalf("second update with stale token: want conflict, got %v", err)
  }
}

func TestUpdateCourseSessionDatesTravelTogether(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, token := fx.createSession(t)

  start := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
  _, err := fx.svc.UpdateCourseSession(context.Background(), nil, sessionID, UpdateCourseSessionInput{StartDate: &start}, token)
  if !session.IsCode(err, session.CodeValidation) {
    t.Fatalf("lone start date: want validation, got %v", err)
  }
}

func TestDeleteCourseSession(t *testing.T) {
  fx := newServiceFixture(t)
  sessionID, _ := fx.createSession(t)

  if err := fx.svc.DeleteCourseSession(context.Background(), nil, sessionID); err != nil {
    t.Fatalf("DeleteCourseSession: %v", err)
  }
  err := fx.svc.DeleteCourseSession(context.Background(), nil, sessionID)
  if !session.IsCode(err, session.CodeNotFound) {
    t.Fatalf("second delete: want not_found, got %v", err)
  }
}
