package main

import (
  "context"
  "fmt"
  "os"

  "github.com/skillforge/trainhub-backend/internal/config"
  "github.com/skillforge/trainhub-backend/internal/db"
  "github.com/skillforge/trainhub-backend/internal/handlers"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/middleware"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/server"
  "github.com/skillforge/trainhub-backend/internal/services"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Config
  cfg, err := config.Load(log)
  if err != nil {
    log.Error("Failed to load config", "error", err)
    os.Exit(1)
  }

  // Database
  dbService, err := db.New(cfg.DB.Driver, log)
  if err != nil {
    log.Error("Database init failed", "error", err)
    os.Exit(1)
  }
  if err = dbService.AutoMigrateAll(); err != nil {
    log.Error("Auto migration failed", "error", err)
    os.Exit(1)
  }
  theDB := dbService.DB()

  // Repos
  log.Info("Setting up repos...")
  courseSessionRepo := repos.NewCourseSessionRepo(theDB, log)
  attendeeRepo := repos.NewAttendeeRepo(theDB, log)
  courseRepo := repos.NewCourseRepo(theDB, log)
  locationRepo := repos.NewLocationRepo(theDB, log)

  // Seed
  if cfg.SeedReferenceData {
    if err := services.SeedReferenceData(context.Background(), theDB, log, courseRepo, locationRepo, attendeeRepo); err != nil {
      log.Warn("Reference data seeding failed", "error", err)
    }
  }

  // Services
  log.Info("Setting up services...")
  courseSessionService := services.NewCourseSessionService(theDB, log, courseSessionRepo, attendeeRepo, courseRepo, locationRepo)
  referenceService := services.NewReferenceService(theDB, log, courseRepo, locationRepo, attendeeRepo)

  // Handlers + middleware
  log.Info("Setting up handlers...")
  courseSessionHandler := handlers.NewCourseSessionHandler(log, courseSessionService)
  referenceHandler := handlers.NewReferenceHandler(log, referenceService)
  requestIDMiddleware := middleware.NewRequestIDMiddleware(log)

  // Router
  router := server.NewRouter(server.RouterConfig{
    CORSOrigins:          cfg.Server.CORSOrigins,
    RequestIDMiddleware:  requestIDMiddleware,
    CourseSessionHandler: courseSessionHandler,
    ReferenceHandler:     referenceHandler,
  })

  addr := fmt.Sprintf(":%d", cfg.Server.Port)
  log.Info("Starting server...", "addr", addr)
  if err := router.Run(addr); err != nil {
    log.Error("Server stopped", "error", err)
    os.Exit(1)
  }
}
