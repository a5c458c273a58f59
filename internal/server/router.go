package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "github.com/skillforge/trainhub-backend/internal/handlers"
  "github.com/skillforge/trainhub-backend/internal/middleware"
)

type RouterConfig struct {
  CORSOrigins          []string
  RequestIDMiddleware  *middleware.RequestIDMiddleware
  CourseSessionHandler *handlers.CourseSessionHandler
  ReferenceHandler     *handlers.ReferenceHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins:     cfg.CORSOrigins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    ExposeHeaders:    []string{"X-Request-ID"},
    AllowCredentials: true,
  }))
  router.Use(cfg.RequestIDMiddleware.Attach())

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")
  {
    // Course sessions
    api.POST("/course-sessions", cfg.CourseSessionHandler.Create)
    api.GET("/course-sessions", cfg.CourseSessionHandler.List)
    api.GET("/course-sessions/:id", cfg.CourseSessionHandler.Get)
    api.PATCH("/course-sessions/:id", cfg.CourseSessionHandler.Update)
    api.DELETE("/course-sessions/:id", cfg.CourseSessionHandler.Delete)
    api.POST("/course-sessions/:id/instructors", cfg.CourseSessionHandler.AddInstructor)
    api.POST("/course-sessions/:id/enrollments", cfg.CourseSessionHandler.EnrollStudent)
    api.PATCH("/course-sessions/:id/enrollments/:studentId/status", cfg.CourseSessionHandler.SetEnrollmentStatus)

    // Reference data
    api.GET("/courses", cfg.ReferenceHandler.ListCourses)
    api.GET("/locations", cfg.ReferenceHandler.ListLocations)
    api.GET("/attendees", cfg.ReferenceHandler.ListAttendees)
    api.GET("/attendees/:id", cfg.ReferenceHandler.GetAttendee)
  }

  return router
}
