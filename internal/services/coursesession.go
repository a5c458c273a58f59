package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// CourseSessionService orchestrates the scheduling aggregate: it
// resolves external references, applies one aggregate mutation per
// command, and persists under the caller's concurrency token. Domain
// errors pass through unchanged; nothing is retried here.
type CourseSessionService interface {
  CreateCourseSession(ctx context.Context, tx *gorm.DB, in CreateCourseSessionInput) (*types.CourseSession, error)
  AddInstructorToCourseSession(ctx context.Context, tx *gorm.DB, sessionID, instructorID uuid.UUID, expectedToken string) (*types.CourseSession, error)
  EnrollStudent(ctx context.Context, tx *gorm.DB, sessionID, studentID uuid.UUID, expectedToken string) (*types.CourseSession, error)
  SetEnrollmentStatus(ctx context.Context, tx *gorm.DB, sessionID, studentID uuid.UUID, newStatus session.EnrollmentStatus, expectedToken string) (*types.CourseSession, error)
  UpdateCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, in UpdateCourseSessionInput, expectedToken string) (*types.CourseSession, error)
  DeleteCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
  GetCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.CourseSession, error)
  ListCourseSessions(ctx context.Context, tx *gorm.DB, filter repos.CourseSessionFilter) ([]*types.CourseSession, error)
}

type CreateCourseSessionInput struct {
  CourseCode    string
  LocationName  string
  StartDate     time.Time
  EndDate       time.Time
  Capacity      int
  InstructorIDs []uuid.UUID
}

// UpdateCourseSessionInput carries partial changes; nil fields are
// left untouched. Dates travel as a pair.
type UpdateCourseSessionInput struct {
  Capacity      *int
  StartDate     *time.Time
  EndDate       *time.Time
  LocationID    *uuid.UUID
  CourseCode    *string
  InstructorIDs []uuid.UUID
}

type courseSessionService struct {
  db          *gorm.DB
  log         *logger.Logger
  sessionRepo repos.CourseSessionRepo
  attendeeRepo repos.AttendeeRepo
  courseRepo  repos.CourseRepo
  locationRepo repos.LocationRepo
}

func NewCourseSessionService(
  db *gorm.DB,
  baseLog *logger.Logger,
  sessionRepo repos.CourseSessionRepo,
  attendeeRepo repos.AttendeeRepo,
  courseRepo repos.CourseRepo,
  locationRepo repos.LocationRepo,
) CourseSessionService {
  serviceLog := baseLog.With("service", "CourseSessionService")
  return &courseSessionService{
    db:           db,
    log:          serviceLog,
    sessionRepo:  sessionRepo,
    attendeeRepo: attendeeRepo,
    courseRepo:   courseRepo,
    locationRepo: locationRepo,
  }
}

func (s *courseSessionService) CreateCourseSession(ctx context.Context, tx *gorm.DB, in CreateCourseSessionInput) (*types.CourseSession, error) {
  const op = "CourseSessionService.CreateCourseSession"

  if len(in.InstructorIDs) == 0 {
    return nil, session.NewError(session.CodeValidation, op, "at least one instructor is required", nil)
  }
  instructorIDs := dedupeIDs(in.InstructorIDs)

  courseCode, err := session.ParseCourseCode(in.CourseCode)
  if err != nil {
    return nil, err
  }

  course, err := s.courseRepo.GetByCode(ctx, tx, in.CourseCode)
  if err != nil {
    return nil, err
  }
  if course == nil {
    return nil, session.NewError(session.CodeNotFound, op, fmt.Sprintf("course %s not found", in.CourseCode), nil)
  }
  location, err := s.locationRepo.GetByName(ctx, tx, in.LocationName)
  if err != nil {
    return nil, err
  }
  if location == nil {
    return nil, session.NewError(session.CodeNotFound, op, fmt.Sprintf("location %q not found", in.LocationName), nil)
  }

  instructors, err := s.resolveInstructors(ctx, tx, instructorIDs)
  if err != nil {
    return nil, err
  }

  cs, err := session.NewCourseSession(
    session.NewSessionID(),
    session.CourseID(course.ID),
    courseCode,
    in.StartDate,
    in.EndDate,
    in.Capacity,
    session.LocationID(location.ID),
  )
  if err != nil {
    return nil, err
  }
  for _, instructor := range instructors {
    if err := cs.AddInstructor(session.AttendeeID(instructor.ID)); err != nil {
      return nil, err
    }
  }

  if _, err := s.sessionRepo.Create(ctx, tx, cs); err != nil {
    s.log.Error("CreateCourseSession persist failed", "error", err, "course_code", in.CourseCode)
    return nil, err
  }
  return s.sessionRepo.GetProjection(ctx, tx, cs.ID().UUID())
}

// resolveInstructors looks the ids up concurrently; each must exist
// and carry the instructor role. A caller-supplied transaction is a
// single connection, so lookups stay sequential inside one.
func (s *courseSessionService) resolveInstructors(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attendee, error) {
  resolved := make([]*types.Attendee, len(ids))
  if tx != nil {
    for i, id := range ids {
      attendee, err := s.resolveAttendee(ctx, tx, id, types.AttendeeRoleInstructor)
      if err != nil {
        return nil, err
      }
      resolved[i] = attendee
    }
    return resolved, nil
  }

  g, gctx := errgroup.WithContext(ctx)
  for i, id := range ids {
    i, id := i, id
    g.Go(func() error {
      attendee, err := s.resolveAttendee(gctx, tx, id, types.AttendeeRoleInstructor)
      if err != nil {
        return err
      }
      resolved[i] = attendee
      return nil
    })
  }
  if err := g.Wait(); err != nil {
    return nil, err
  }
  return resolved, nil
}

func (s *courseSessionService) resolveAttendee(ctx context.Context, tx *gorm.DB, id uuid.UUID, role types.AttendeeRole) (*types.Attendee, error) {
  const op = "CourseSessionService.resolveAttendee"
  attendee, err := s.attendeeRepo.GetByID(ctx, tx, id)
  if err != nil {
    return nil, err
  }
  if attendee == nil {
    return nil, session.NewError(session.CodeNotFound, op, fmt.Sprintf("attendee %s not found", id), nil)
  }
  if attendee.Role != role {
    return nil, session.NewError(session.CodeValidation, op, fmt.Sprintf("attendee %s does not have the %s role", id, role), nil)
  }
  return attendee, nil
}

func (s *courseSessionService) AddInstructorToCourseSession(ctx context.Context, tx *gorm.DB, sessionID, instructorID uuid.UUID, expectedToken string) (*types.CourseSession, error) {
  const op = "CourseSessionService.AddInstructorToCourseSession"
  token, err := parseToken(op, expectedToken)
  if err != nil {
    return nil, err
  }

  cs, _, err := s.sessionRepo.GetByIDWithInstructorsAndEnrollments(ctx, tx, sessionID)
  if err != nil {
    return nil, err
  }
  instructor, err := s.resolveAttendee(ctx, tx, instructorID, types.AttendeeRoleInstructor)
  if err != nil {
    return nil, err
  }
  if err := cs.AddInstructor(session.AttendeeID(instructor.ID)); err != nil {
    return nil, err
  }
  if _, err := s.sessionRepo.Update(ctx, tx, cs, token); err != nil {
    s.log.Error("AddInstructorToCourseSession persist failed", "error", err, "session_id", sessionID)
    return nil, err
  }
  return s.sessionRepo.GetProjection(ctx, tx, sessionID)
}

func (s *courseSessionService) EnrollStudent(ctx context.Context, tx *gorm.DB, sessionID, studentID uuid.UUID, expectedToken string) (*types.CourseSession, error) {
  const op = "CourseSessionService.EnrollStudent"
  token, err := parseToken(op, expectedToken)
  if err != nil {
    return nil, err
  }

  cs, _, err := s.sessionRepo.GetByIDWithInstructorsAndEnrollments(ctx, tx, sessionID)
  if err != nil {
    return nil, err
  }
  student, err := s.resolveAttendee(ctx, tx, studentID, types.AttendeeRoleStudent)
  if err != nil {
    return nil, err
  }
  if _, err := cs.AddStudent(session.AttendeeID(student.ID)); err != nil {
    return nil, err
  }
  if _, err := s.sessionRepo.Update(ctx, tx, cs, token); err != nil {
    s.log.Error("EnrollStudent persist failed", "error", err, "session_id", sessionID, "student_id", studentID)
    return nil, err
  }
  return s.sessionRepo.GetProjection(ctx, tx, sessionID)
}

// SetEnrollmentStatus is the one command wrapped in an explicit
// transaction: approval races against capacity, so the load and the
// token-checked write must share the same transaction. Any failure
// rolls back and surfaces the original error unchanged.
func (s *courseSessionService) SetEnrollmentStatus(ctx context.Context, tx *gorm.DB, sessionID, studentID uuid.UUID, newStatus session.EnrollmentStatus, expectedToken string) (*types.CourseSession, error) {
  const op = "CourseSessionService.SetEnrollmentStatus"
  token, err := parseToken(op, expectedToken)
  if err != nil {
    return nil, err
  }
  if newStatus != session.EnrollmentApproved && newStatus != session.EnrollmentDenied {
    return nil, session.NewError(session.CodeValidation, op, "status must be approved or denied", nil)
  }

  transaction := tx
  createdTx := false
  if transaction == nil {
    createdTx = true
    transaction = s.db.WithContext(ctx).Begin()
    if transaction.Error != nil {
      return nil, fmt.Errorf("begin transaction: %w", transaction.Error)
    }
  }
  committed := false
  defer func() {
    if createdTx && !committed {
      transaction.Rollback()
    }
  }()

  cs, _, err := s.sessionRepo.GetByIDWithInstructorsAndEnrollments(ctx, transaction, sessionID)
  if err != nil {
    return nil, err
  }
  if err := cs.SetEnrollmentStatus(session.AttendeeID(studentID), newStatus); err != nil {
    return nil, err
  }
  if _, err := s.sessionRepo.Update(ctx, transaction, cs, token); err != nil {
    s.log.Error("SetEnrollmentStatus persist failed", "error", err, "session_id", sessionID, "student_id", studentID)
    return nil, err
  }

  if createdTx {
    if err := transaction.Commit().Error; err != nil {
      return nil, fmt.Errorf("commit transaction: %w", err)
    }
    committed = true
    return s.sessionRepo.GetProjection(ctx, nil, sessionID)
  }
  return s.sessionRepo.GetProjection(ctx, tx, sessionID)
}

func (s *courseSessionService) UpdateCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, in UpdateCourseSessionInput, expectedToken string) (*types.CourseSession, error) {
  const op = "CourseSessionService.UpdateCourseSession"
  token, err := parseToken(op, expectedToken)
  if err != nil {
    return nil, err
  }
  if (in.StartDate == nil) != (in.EndDate == nil) {
    return nil, session.NewError(session.CodeValidation, op, "start and end dates must be supplied together", nil)
  }

  cs, _, err := s.sessionRepo.GetByIDWithInstructorsAndEnrollments(ctx, tx, sessionID)
  if err != nil {
    return nil, err
  }

  if in.Capacity != nil {
    if err := cs.UpdateCapacity(*in.Capacity); err != nil {
      return nil, err
    }
  }
  if in.StartDate != nil {
    if err := cs.UpdateDates(*in.StartDate, *in.EndDate); err != nil {
      return nil, err
    }
  }
  if in.LocationID != nil {
    if err := cs.UpdateLocation(session.LocationID(*in.LocationID)); err != nil {
      return nil, err
    }
  }
  if in.CourseCode != nil {
    courseCode, err := session.ParseCourseCode(*in.CourseCode)
    if err != nil {
      return nil, err
    }
    course, err := s.courseRepo.GetByCode(ctx, tx, *in.CourseCode)
    if err != nil {
      return nil, err
    }
    if course == nil {
      return nil, session.NewError(session.CodeNotFound, op, fmt.Sprintf("course %s not found", *in.CourseCode), nil)
    }
    if err := cs.UpdateCourse(session.CourseID(course.ID), courseCode); err != nil {
      return nil, err
    }
  }
  if in.InstructorIDs != nil {
    instructorIDs := make([]session.AttendeeID, 0, len(in.InstructorIDs))
    for _, id := range in.InstructorIDs {
      instructorIDs = append(instructorIDs, session.AttendeeID(id))
    }
    if err := cs.SetInstructors(instructorIDs); err != nil {
      return nil, err
    }
  }

  if _, err := s.sessionRepo.Update(ctx, tx, cs, token); err != nil {
    s.log.Error("UpdateCourseSession persist failed", "error", err, "session_id", sessionID)
    return nil, err
  }
  return s.sessionRepo.GetProjection(ctx, tx, sessionID)
}

func (s *courseSessionService) DeleteCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
  const op = "CourseSessionService.DeleteCourseSession"
  removed, err := s.sessionRepo.Delete(ctx, tx, sessionID)
  if err != nil {
    s.log.Error("DeleteCourseSession failed", "error", err, "session_id", sessionID)
    return err
  }
  if !removed {
    return session.NewError(session.CodeNotFound, op, "course session not found", nil)
  }
  return nil
}

func (s *courseSessionService) GetCourseSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.CourseSession, error) {
  return s.sessionRepo.GetProjection(ctx, tx, sessionID)
}

func (s *courseSessionService) ListCourseSessions(ctx context.Context, tx *gorm.DB, filter repos.CourseSessionFilter) ([]*types.CourseSession, error) {
  return s.sessionRepo.List(ctx, tx, filter)
}

func parseToken(op, expectedToken string) (uuid.UUID, error) {
  if expectedToken == "" {
    return uuid.Nil, session.NewError(session.CodeValidation, op, "concurrency token is required", nil)
  }
  token, err := uuid.Parse(expectedToken)
  if err != nil || token == uuid.Nil {
    return uuid.Nil, session.NewError(session.CodeValidation, op, "concurrency token is malformed", err)
  }
  return token, nil
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
  seen := make(map[uuid.UUID]struct{}, len(ids))
  out := make([]uuid.UUID, 0, len(ids))
  for _, id := range ids {
    if _, ok := seen[id]; ok {
      continue
    }
    seen[id] = struct{}{}
    out = append(out, id)
  }
  return out
}
