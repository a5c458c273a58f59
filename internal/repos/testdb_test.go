package repos

import (
  "fmt"
  "testing"

  "github.com/google/uuid"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  gormLogger "gorm.io/gorm/logger"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// testDB opens a fresh in-memory sqlite database per test. The shared
// cache keeps the database alive across pooled connections.
func testDB(tb testing.TB) *gorm.DB {
  tb.Helper()

  dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
  db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
    Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
  })
  if err != nil {
    tb.Fatalf("open test db: %v", err)
  }

  err = db.AutoMigrate(
    &types.Attendee{},
    &types.Course{},
    &types.Location{},
    &types.CourseSession{},
    &types.SessionInstructor{},
    &types.Enrollment{},
  )
  if err != nil {
    tb.Fatalf("migrate test db: %v", err)
  }
  return db
}

func testLogger(tb testing.TB) *logger.Logger {
  tb.Helper()
  log, err := logger.New("test")
  if err != nil {
    tb.Fatalf("init test logger: %v", err)
  }
  return log
}
