package repos

import (
  "context"
  "errors"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// CourseSessionRepo persists the scheduling aggregate. Reads hand back
// the aggregate together with its current concurrency token; Update
// only succeeds when the caller presents that token unchanged.
type CourseSessionRepo interface {
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error)
  GetByIDWithInstructorsAndEnrollments(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error)
  GetProjection(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseSession, error)
  List(ctx context.Context, tx *gorm.DB, filter CourseSessionFilter) ([]*types.CourseSession, error)
  Create(ctx context.Context, tx *gorm.DB, cs *session.CourseSession) (uuid.UUID, error)
  Update(ctx context.Context, tx *gorm.DB, cs *session.CourseSession, expectedToken uuid.UUID) (uuid.UUID, error)
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)
}

type CourseSessionFilter struct {
  CourseID   *uuid.UUID
  LocationID *uuid.UUID
  Limit      int
  Offset     int
}

type courseSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseSessionRepo(db *gorm.DB, baseLog *logger.Logger) CourseSessionRepo {
  repoLog := baseLog.With("repo", "CourseSessionRepo")
  return &courseSessionRepo{db: db, log: repoLog}
}

func (r *courseSessionRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error) {
  return r.get(ctx, tx, id, false, "CourseSessionRepo.GetByID")
}

func (r *courseSessionRepo) GetByIDWithInstructorsAndEnrollments(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*session.CourseSession, uuid.UUID, error) {
  return r.get(ctx, tx, id, true, "CourseSessionRepo.GetByIDWithInstructorsAndEnrollments")
}

func (r *courseSessionRepo) get(ctx context.Context, tx *gorm.DB, id uuid.UUID, withChildren bool, op string) (*session.CourseSession, uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx)
  if withChildren {
    query = query.Preload("Instructors").Preload("Enrollments")
  }

  var model types.CourseSession
  if err := query.First(&model, "id = ?", id).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, uuid.Nil, session.NewError(session.CodeNotFound, op, "course session not found", err)
    }
    return nil, uuid.Nil, fmt.Errorf("load course session: %w", err)
  }

  cs, err := sessionFromModel(&model)
  if err != nil {
    return nil, uuid.Nil, fmt.Errorf("rehydrate course session: %w", err)
  }
  return cs, model.RowVersion, nil
}

func (r *courseSessionRepo) GetProjection(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var model types.CourseSession
  err := transaction.WithContext(ctx).
    Preload("Course").
    Preload("Location").
    Preload("Instructors.Attendee").
    Preload("Enrollments.Student").
    First(&model, "id = ?", id).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, session.NewError(session.CodeNotFound, "CourseSessionRepo.GetProjection", "course session not found", err)
    }
    return nil, fmt.Errorf("load course session projection: %w", err)
  }
  return &model, nil
}

func (r *courseSessionRepo) List(ctx context.Context, tx *gorm.DB, filter CourseSessionFilter) ([]*types.CourseSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  query := transaction.WithContext(ctx).Model(&types.CourseSession{})
  if filter.CourseID != nil {
    query = query.Where("course_id = ?", *filter.CourseID)
  }
  if filter.LocationID != nil {
    query = query.Where("location_id = ?", *filter.LocationID)
  }
  if filter.Limit > 0 {
    query = query.Limit(filter.Limit)
  }
  if filter.Offset > 0 {
    query = query.Offset(filter.Offset)
  }

  var results []*types.CourseSession
  if err := query.Order("start_date ASC").Find(&results).Error; err != nil {
    return nil, fmt.Errorf("list course sessions: %w", err)
  }
  return results, nil
}

func (r *courseSessionRepo) Create(ctx context.Context, tx *gorm.DB, cs *session.CourseSession) (uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  model := sessionToModel(cs)
  model.RowVersion = uuid.New()

  if err := transaction.WithContext(ctx).Create(model).Error; err != nil {
    return uuid.Nil, fmt.Errorf("create course session: %w", err)
  }
  return model.RowVersion, nil
}

// Update rewrites the aggregate's rows, gated on expectedToken. The
// root row carries the token; child rows are replaced in the same
// transaction so a stale writer can never touch them either.
func (r *courseSessionRepo) Update(ctx context.Context, tx *gorm.DB, cs *session.CourseSession, expectedToken uuid.UUID) (uuid.UUID, error) {
  newToken := uuid.New()

  apply := func(txx *gorm.DB) error {
    model := sessionToModel(cs)

    res := txx.WithContext(ctx).Model(&types.CourseSession{}).
      Where("id = ? AND row_version = ?", model.ID, expectedToken).
      Updates(map[string]interface{}{
        "course_id":   model.CourseID,
        "course_code": model.CourseCode,
        "start_date":  model.StartDate,
        "end_date":    model.EndDate,
        "capacity":    model.Capacity,
        "location_id": model.LocationID,
        "updated_at":  model.UpdatedAt,
        "row_version": newToken,
      })
    if res.Error != nil {
      return fmt.Errorf("update course session: %w", res.Error)
    }
    if res.RowsAffected == 0 {
      var count int64
      if err := txx.WithContext(ctx).Model(&types.CourseSession{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
        return fmt.Errorf("check course session existence: %w", err)
      }
      if count == 0 {
        return session.NewError(session.CodeNotFound, "CourseSessionRepo.Update", "course session not found", nil)
      }
      return session.NewError(session.CodeConflict, "CourseSessionRepo.Update", "course session was modified concurrently", nil)
    }

    // Instructors: replace the reference set wholesale.
    if err := txx.WithContext(ctx).Where("session_id = ?", model.ID).Delete(&types.SessionInstructor{}).Error; err != nil {
      return fmt.Errorf("clear session instructors: %w", err)
    }
    if len(model.Instructors) > 0 {
      if err := txx.WithContext(ctx).Create(model.Instructors).Error; err != nil {
        return fmt.Errorf("write session instructors: %w", err)
      }
    }

    // Enrollments: upsert current rows, drop any the aggregate no
    // longer owns.
    keep := enrollmentIDs(model.Enrollments)
    drop := txx.WithContext(ctx).Where("session_id = ?", model.ID)
    if len(keep) > 0 {
      drop = drop.Where("id NOT IN ?", keep)
    }
    if err := drop.Delete(&types.Enrollment{}).Error; err != nil {
      return fmt.Errorf("prune enrollments: %w", err)
    }
    if len(model.Enrollments) > 0 {
      err := txx.WithContext(ctx).Clauses(clause.OnConflict{
        Columns:   []clause.Column{{Name: "id"}},
        DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
      }).Create(model.Enrollments).Error
      if err != nil {
        return fmt.Errorf("write enrollments: %w", err)
      }
    }
    return nil
  }

  if tx != nil {
    if err := apply(tx); err != nil {
      return uuid.Nil, err
    }
    return newToken, nil
  }
  if err := r.db.WithContext(ctx).Transaction(apply); err != nil {
    return uuid.Nil, err
  }
  return newToken, nil
}

func (r *courseSessionRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
  removed := false

  apply := func(txx *gorm.DB) error {
    if err := txx.WithContext(ctx).Where("session_id = ?", id).Delete(&types.Enrollment{}).Error; err != nil {
      return fmt.Errorf("delete enrollments: %w", err)
    }
    if err := txx.WithContext(ctx).Where("session_id = ?", id).Delete(&types.SessionInstructor{}).Error; err != nil {
      return fmt.Errorf("delete session instructors: %w", err)
    }
    res := txx.WithContext(ctx).Where("id = ?", id).Delete(&types.CourseSession{})
    if res.Error != nil {
      return fmt.Errorf("delete course session: %w", res.Error)
    }
    removed = res.RowsAffected > 0
    return nil
  }

  if tx != nil {
    if err := apply(tx); err != nil {
      return false, err
    }
    return removed, nil
  }
  if err := r.db.WithContext(ctx).Transaction(apply); err != nil {
    return false, err
  }
  return removed, nil
}
