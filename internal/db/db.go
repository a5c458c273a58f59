package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
  "github.com/skillforge/trainhub-backend/internal/utils"
)

type Service struct {
  db  *gorm.DB
  log *logger.Logger
}

// New opens the configured driver. "postgres" is the deployed path;
// "sqlite" exists for local runs without a database server.
func New(driver string, log *logger.Logger) (*Service, error) {
  serviceLog := log.With("service", "DBService")

  var dialector gorm.Dialector
  switch driver {
  case "postgres":
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_NAME", "trainhub", log)
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)
    dialector = postgres.Open(dsn)
  case "sqlite":
    path := utils.GetEnv("SQLITE_PATH", "trainhub.db", log)
    dialector = sqlite.Open(path)
  default:
    return nil, fmt.Errorf("unsupported db driver %q", driver)
  }

  serviceLog.Info("Connecting to database...", "driver", driver)
  gormDB, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    serviceLog.Error("Failed to connect to database", "driver", driver, "error", err)
    return nil, fmt.Errorf("connect to %s: %w", driver, err)
  }

  return &Service{db: gormDB, log: serviceLog}, nil
}

func (s *Service) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.Attendee{},
    &types.Course{},
    &types.Location{},
    &types.CourseSession{},
    &types.SessionInstructor{},
    &types.Enrollment{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  return nil
}

func (s *Service) DB() *gorm.DB {
  return s.db
}
