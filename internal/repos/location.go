package repos

import (
  "context"
  "errors"
  "fmt"

  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
)

type LocationRepo interface {
  GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Location, error)
  List(ctx context.Context, tx *gorm.DB) ([]*types.Location, error)
  Create(ctx context.Context, tx *gorm.DB, locations []*types.Location) ([]*types.Location, error)
}

type locationRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLocationRepo(db *gorm.DB, baseLog *logger.Logger) LocationRepo {
  repoLog := baseLog.With("repo", "LocationRepo")
  return &locationRepo{db: db, log: repoLog}
}

func (r *locationRepo) GetByName(ctx context.Context, tx *gorm.DB, name string) (*types.Location, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var result types.Location
  if err := transaction.WithContext(ctx).First(&result, "name = ?", name).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, fmt.Errorf("load location: %w", err)
  }
  return &result, nil
}

func (r *locationRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Location, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Location
  if err := transaction.WithContext(ctx).Order("name ASC").Find(&results).Error; err != nil {
    return nil, fmt.Errorf("list locations: %w", err)
  }
  return results, nil
}

func (r *locationRepo) Create(ctx context.Context, tx *gorm.DB, locations []*types.Location) ([]*types.Location, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(locations) == 0 {
    return []*types.Location{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&locations).Error; err != nil {
    return nil, fmt.Errorf("create locations: %w", err)
  }
  return locations, nil
}
