package handlers

import (
  "errors"
  "net/http"
  "strconv"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/logger"
  "github.com/skillforge/trainhub-backend/internal/repos"
  "github.com/skillforge/trainhub-backend/internal/services"
)

var errInvalidStatusTarget = errors.New(`status must be "approved" or "denied"`)

type CourseSessionHandler struct {
  log            *logger.Logger
  sessionService services.CourseSessionService
}

func NewCourseSessionHandler(log *logger.Logger, sessionService services.CourseSessionService) *CourseSessionHandler {
  return &CourseSessionHandler{
    log:            log.With("handler", "CourseSessionHandler"),
    sessionService: sessionService,
  }
}

type createCourseSessionRequest struct {
  CourseCode    string    `json:"course_code" binding:"required"`
  LocationName  string    `json:"location_name" binding:"required"`
  StartDate     time.Time `json:"start_date" binding:"required"`
  EndDate       time.Time `json:"end_date" binding:"required"`
  Capacity      int       `json:"capacity" binding:"required"`
  InstructorIDs []string  `json:"instructor_ids"`
}

func (h *CourseSessionHandler) Create(c *gin.Context) {
  var req createCourseSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  instructorIDs, err := parseUUIDs(req.InstructorIDs)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  projection, err := h.sessionService.CreateCourseSession(c.Request.Context(), nil, services.CreateCourseSessionInput{
    CourseCode:    req.CourseCode,
    LocationName:  req.LocationName,
    StartDate:     req.StartDate,
    EndDate:       req.EndDate,
    Capacity:      req.Capacity,
    InstructorIDs: instructorIDs,
  })
  if err != nil {
    h.log.Error("Create failed", "error", err, "course_code", req.CourseCode)
    RespondDomainError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"course_session": projection})
}

type addInstructorRequest struct {
  InstructorID  string `json:"instructor_id" binding:"required"`
  ExpectedToken string `json:"expected_token"`
}

func (h *CourseSessionHandler) AddInstructor(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req addInstructorRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  instructorID, err := uuid.Parse(req.InstructorID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  projection, err := h.sessionService.AddInstructorToCourseSession(c.Request.Context(), nil, sessionID, instructorID, req.ExpectedToken)
  if err != nil {
    h.log.Error("AddInstructor failed", "error", err, "session_id", sessionID)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_session": projection})
}

type enrollStudentRequest struct {
  StudentID     string `json:"student_id" binding:"required"`
  ExpectedToken string `json:"expected_token"`
}

func (h *CourseSessionHandler) EnrollStudent(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req enrollStudentRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }
  studentID, err := uuid.Parse(req.StudentID)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  projection, err := h.sessionService.EnrollStudent(c.Request.Context(), nil, sessionID, studentID, req.ExpectedToken)
  if err != nil {
    h.log.Error("EnrollStudent failed", "error", err, "session_id", sessionID, "student_id", studentID)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_session": projection})
}

type setEnrollmentStatusRequest struct {
  Status        string `json:"status" binding:"required"`
  ExpectedToken string `json:"expected_token"`
}

func (h *CourseSessionHandler) SetEnrollmentStatus(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  studentID, ok := pathUUID(c, "studentId")
  if !ok {
    return
  }
  var req setEnrollmentStatusRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  // Pending is never accepted from outside.
  status := session.EnrollmentStatus(req.Status)
  if status != session.EnrollmentApproved && status != session.EnrollmentDenied {
    RespondError(c, http.StatusBadRequest, "bad_request", errInvalidStatusTarget)
    return
  }

  projection, err := h.sessionService.SetEnrollmentStatus(c.Request.Context(), nil, sessionID, studentID, status, req.ExpectedToken)
  if err != nil {
    h.log.Error("SetEnrollmentStatus failed", "error", err, "session_id", sessionID, "student_id", studentID)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_session": projection})
}

type updateCourseSessionRequest struct {
  Capacity      *int       `json:"capacity"`
  StartDate     *time.Time `json:"start_date"`
  EndDate       *time.Time `json:"end_date"`
  LocationID    *string    `json:"location_id"`
  CourseCode    *string    `json:"course_code"`
  InstructorIDs []string   `json:"instructor_ids"`
  ExpectedToken string     `json:"expected_token"`
}

func (h *CourseSessionHandler) Update(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  var req updateCourseSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return
  }

  in := services.UpdateCourseSessionInput{
    Capacity:   req.Capacity,
    StartDate:  req.StartDate,
    EndDate:    req.EndDate,
    CourseCode: req.CourseCode,
  }
  if req.LocationID != nil {
    locationID, err := uuid.Parse(*req.LocationID)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_request", err)
      return
    }
    in.LocationID = &locationID
  }
  if req.InstructorIDs != nil {
    instructorIDs, err := parseUUIDs(req.InstructorIDs)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_request", err)
      return
    }
    in.InstructorIDs = instructorIDs
  }

  projection, err := h.sessionService.UpdateCourseSession(c.Request.Context(), nil, sessionID, in, req.ExpectedToken)
  if err != nil {
    h.log.Error("Update failed", "error", err, "session_id", sessionID)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_session": projection})
}

func (h *CourseSessionHandler) Delete(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  if err := h.sessionService.DeleteCourseSession(c.Request.Context(), nil, sessionID); err != nil {
    h.log.Error("Delete failed", "error", err, "session_id", sessionID)
    RespondDomainError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

func (h *CourseSessionHandler) Get(c *gin.Context) {
  sessionID, ok := pathUUID(c, "id")
  if !ok {
    return
  }
  projection, err := h.sessionService.GetCourseSession(c.Request.Context(), nil, sessionID)
  if err != nil {
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_session": projection})
}

func (h *CourseSessionHandler) List(c *gin.Context) {
  var filter repos.CourseSessionFilter
  if raw := c.Query("course_id"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_request", err)
      return
    }
    filter.CourseID = &id
  }
  if raw := c.Query("location_id"); raw != "" {
    id, err := uuid.Parse(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "bad_request", err)
      return
    }
    filter.LocationID = &id
  }
  filter.Limit = queryInt(c, "limit", 50)
  filter.Offset = queryInt(c, "offset", 0)

  results, err := h.sessionService.ListCourseSessions(c.Request.Context(), nil, filter)
  if err != nil {
    h.log.Error("List failed", "error", err)
    RespondDomainError(c, err)
    return
  }
  RespondOK(c, gin.H{"course_sessions": results})
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    RespondError(c, http.StatusBadRequest, "bad_request", err)
    return uuid.Nil, false
  }
  return id, true
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
  out := make([]uuid.UUID, 0, len(raw))
  for _, s := range raw {
    id, err := uuid.Parse(s)
    if err != nil {
      return nil, err
    }
    out = append(out, id)
  }
  return out, nil
}

func queryInt(c *gin.Context, name string, def int) int {
  raw := c.Query(name)
  if raw == "" {
    return def
  }
  i, err := strconv.Atoi(raw)
  if err != nil {
    return def
  }
  return i
}
