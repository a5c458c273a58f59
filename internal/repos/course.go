package repos

import (
  "context"
  "errors"
  "fmt"

  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
)

type CourseRepo interface {
  GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Course, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Course, error)
  Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error)
}

type courseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCourseRepo(db *gorm.DB, baseLog *logger.Logger) CourseRepo {
  repoLog := baseLog.With("repo", "CourseRepo")
  return &courseRepo{db: db, log: repoLog}
}

func (r *courseRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Course
  if err := transaction.WithContext(ctx).First(&result, "code = ?", code).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, fmt.Errorf("load course: %w", err)
  }
  return &result, nil
}

func (r *courseRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Course
  if err := transaction.WithContext(ctx).Order("code ASC").Find(&results).Error; err != nil {
    return nil, fmt.Errorf("list courses: %w", err)
  }
  return results, nil
}

func (r *courseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(courses) == 0 {
    return []*types.Course{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&courses).Error; err != nil {
    return nil, fmt.Errorf("create courses: %w", err)
  }
  return courses, nil
}
