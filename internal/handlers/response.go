package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/skillforge/trainhub-backend/internal/domain/session"
  "github.com/skillforge/trainhub-backend/internal/requestmeta"
)

type APIError struct {
  Message   string `json:"message"`
  Code      string `json:"code,omitempty"`
  RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  requestID := ""
  if rm := requestmeta.GetRequestMeta(c.Request.Context()); rm != nil {
    requestID = rm.RequestID.String()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message:   msg,
      Code:      code,
      RequestID: requestID,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondDomainError maps the domain error taxonomy onto HTTP status
// codes; anything uncoded is an internal failure.
func RespondDomainError(c *gin.Context, err error) {
  code := session.CodeOf(err)
  switch code {
  case session.CodeValidation:
    RespondError(c, http.StatusBadRequest, string(code), err)
  case session.CodeNotFound:
    RespondError(c, http.StatusNotFound, string(code), err)
  case session.CodeConflict:
    RespondError(c, http.StatusConflict, string(code), err)
  case session.CodeInvariantViolation, session.CodePreconditionFailed:
    RespondError(c, http.StatusUnprocessableEntity, string(code), err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal", err)
  }
}
