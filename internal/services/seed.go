package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/types"
)

// SeedReferenceData fills empty reference tables for local runs. It is
// gated behind config and never touches tables that already have rows.
func SeedReferenceData(
  ctx context.Context,
  db *gorm.DB,
  log *logger.Logger,
  courseRepo repos.CourseRepo,
  locationRepo repos.LocationRepo,
  attendeeRepo repos.AttendeeRepo,
) error {
  seedLog := log.With("component", "seed")
  now := time.Now().UTC()

  courses, err := courseRepo.List(ctx, nil)
  if err != nil {
    return err
  }
  if len(courses) == 0 {
    seedLog.Info("Seeding courses...")
    _, err = courseRepo.Create(ctx, nil, []*types.Course{
      {ID: uuid.New(), Code: "GOL-FC-010", Subject: "Go Language", Title: "Go Foundations", Description: "Core language, tooling, testing.", CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), Code: "GOL-AC-010", Subject: "Go Language", Title: "Advanced Go", Description: "Concurrency, profiling, generics.", CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), Code: "KUB-FC-010", Subject: "Kubernetes", Title: "Kubernetes Foundations", Description: "Workloads, services, operators.", CreatedAt: now, UpdatedAt: now},
    })
    if err != nil {
      return err
    }
  }

  locations, err := locationRepo.List(ctx, nil)
  if err != nil {
    return err
  }
  if len(locations) == 0 {
    seedLog.Info("Seeding locations...")
    _, err = locationRepo.Create(ctx, nil, []*types.Location{
      {ID: uuid.New(), Name: "Amsterdam HQ", Address: "Keizersgracht 123", Seats: 40, CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), Name: "Berlin Office", Address: "Torstrasse 99", Seats: 25, CreatedAt: now, UpdatedAt: now},
    })
    if err != nil {
      return err
    }
  }

  attendees, err := attendeeRepo.List(ctx, nil, "")
  if err != nil {
    return err
  }
  if len(attendees) == 0 {
    seedLog.Info("Seeding attendees...")
    _, err = attendeeRepo.Create(ctx, nil, []*types.Attendee{
      {ID: uuid.New(), FullName: "Maaike de Vries", Email: "maaike@trainhub.local", Role: types.AttendeeRoleInstructor, CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), FullName: "Jonas Weber", Email: "jonas@trainhub.local", Role: types.AttendeeRoleInstructor, CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), FullName: "Priya Nair", Email: "priya@trainhub.local", Role: types.AttendeeRoleStudent, CreatedAt: now, UpdatedAt: now},
      {ID: uuid.New(), FullName: "Tom Okafor", Email: "tom@trainhub.local", Role: types.AttendeeRoleStudent, CreatedAt: now, UpdatedAt: now},
    })
    if err != nil {
      return err
    }
  }

  return nil
}
