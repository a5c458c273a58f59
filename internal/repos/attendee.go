package repos

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// AttendeeRepo is a read-mostly lookup over the attendee directory.
// Absent rows come back as (nil, nil); callers decide what absence means.
type AttendeeRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attendee, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attendee, error)
  List(ctx context.Context, tx *gorm.DB, role types.AttendeeRole) ([]*types.Attendee, error)
  Create(ctx context.Context, tx *gorm.DB, attendees []*types.Attendee) ([]*types.Attendee, error)
}

type attendeeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewAttendeeRepo(db *gorm.DB, baseLog *logger.Logger) AttendeeRepo {
  repoLog := baseLog.With("repo", "AttendeeRepo")
  return &attendeeRepo{db: db, log: repoLog}
}

func (r *attendeeRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Attendee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Attendee
  if err := transaction.WithContext(ctx).First(&result, "id = ?", id).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, fmt.Errorf("load attendee: %w", err)
  }
  return &result, nil
}

func (r *attendeeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Attendee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Attendee
  if len(ids) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, fmt.Errorf("load attendees: %w", err)
  }
  return results, nil
}

func (r *attendeeRepo) List(ctx context.Context, tx *gorm.DB, role types.AttendeeRole) ([]*types.Attendee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.Attendee{})
  if role != "" {
    query = query.Where("role = ?", role)
  }

  var results []*types.Attendee
  if err := query.Order("full_name ASC").Find(&results).Error; err != nil {
    return nil, fmt.Errorf("list attendees: %w", err)
  }
  return results, nil
}

func (r *attendeeRepo) Create(ctx context.Context, tx *gorm.DB, attendees []*types.Attendee) ([]*types.Attendee, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(attendees) == 0 {
    return []*types.Attendee{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&attendees).Error; err != nil {
    return nil, fmt.Errorf("create attendees: %w", err)
  }
  return attendees, nil
}
