package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/services"
  "github.com/skillforge/trainhub-backend/internal/types"
)

type ReferenceHandler struct {
  log              *logger.Logger
  referenceService services.ReferenceService
}

func NewReferenceHandler(log *logger.Logger, referenceService services.ReferenceService) *ReferenceHandler {
  return &ReferenceHandler{
    log:              log.With("handler", "ReferenceHandler"),
    referenceService: referenceService,
  }
}

func (h *ReferenceHandler) ListCourses(c *gin.Context) {
  courses, err := h.referenceService.ListCourses(c.Request.Context(), nil)
  if err != nil {
    h.log.Error("ListCourses failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_courses_failed", err)
    return
  }
  RespondOK(c, gin.H{"courses": courses})
}

func (h *ReferenceHandler) ListLocations(c *gin.Context) {
  locations, err := h.referenceService.ListLocations(c.Request.Context(), nil)
  if err != nil {
    h.log.Error("ListLocations failed", "error", err)
    RespondError(c, http.StatusInternalServerError, "load_locations_failed", err)
    return
  }
  RespondOK(c, gin.H{"locations": locations})
}

func (h *ReferenceHandler) ListAttendees(c *gin.Context) {
  role := types.AttendeeRole(c.Query("role"))
  attendees, err := h.referenceService.ListAttendees(c.Request.Context(), nil, role)
  if err != nil {
    h.log.Error("ListAttendees failed", "error", err)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"attendees": attendees})
}

func (h *ReferenceHandler) GetAttendee(c *gin.Context) {
  attendeeID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  attendee, err := h.referenceService.GetAttendee(c.Request.Context(), nil, attendeeID)
  if err != nil {
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"attendee": attendee})
}
