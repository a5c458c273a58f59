package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// ReferenceService exposes the read-only collaborator lookups the
// scheduling core consumes: courses, locations, attendees.
type ReferenceService interface {
  ListCourses(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
  ListLocations(ctx context.Context, tx *gorm.DB) ([]*types.Location, error)
  ListAttendees(ctx context.Context, tx *gorm.DB, role types.AttendeeRole) ([]*types.Attendee, error)
  GetAttendee(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attendee, error)
}

type referenceService struct {
  db           *gorm.DB
  log          *logger.Logger
  courseRepo   repos.CourseRepo
  locationRepo repos.LocationRepo
  attendeeRepo repos.AttendeeRepo
}

func NewReferenceService(
  db *gorm.DB,
  baseLog *logger.Logger,
  courseRepo repos.CourseRepo,
  locationRepo repos.LocationRepo,
  attendeeRepo repos.AttendeeRepo,
) ReferenceService {
  serviceLog := baseLog.With("service", "ReferenceService")
  return &referenceService{
    db:           db,
    log:          serviceLog,
    courseRepo:   courseRepo,
    locationRepo: locationRepo,
    attendeeRepo: attendeeRepo,
  }
}

func (s *referenceService) ListCourses(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
  return s.courseRepo.List(ctx, tx)
}

func (s *referenceService) ListLocations(ctx context.Context, tx *gorm.DB) ([]*types.Location, error) {
  return s.locationRepo.List(ctx, tx)
}

func (s *referenceService) ListAttendees(ctx context.Context, tx *gorm.DB, role types.AttendeeRole) ([]*types.Attendee, error) {
  if role != "" && role != types.AttendeeRoleInstructor && role != types.AttendeeRoleStudent {
    return nil, session.NewError(session.CodeValidation, "ReferenceService.ListAttendees", fmt.Sprintf("unknown role %q", role), nil)
  }
  return s.attendeeRepo.List(ctx, tx, role)
}

func (s *referenceService) GetAttendee(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attendee, error) {
  attendee, err := s.attendeeRepo.GetByID(ctx, tx, id)
  if err != nil {
    return nil, err
  }
  if attendee == nil {
    return nil, session.NewError(session.CodeNotFound, "ReferenceService.GetAttendee", fmt.Sprintf("attendee %s not found", id), nil)
  }
  return attendee, nil
}
