package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skillforge/trainhub-backend/internal/logger"
	"github.com/skillforge/trainhub-backend/internal/requestmeta"
)

type RequestIDMiddleware struct {
	log *logger.Logger
}

func NewRequestIDMiddleware(log *logger.Logger) *RequestIDMiddleware {
	return &RequestIDMiddleware{log: log.With("middleware", "RequestIDMiddleware")}
}

// Attach tags every request with an id, exposes it in the response
// headers and carries it in the request context for log correlation.
func (m *RequestIDMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New()
		rm := &requestmeta.RequestMeta{RequestID: requestID}
		ctx := requestmeta.WithRequestMeta(c.Request.Context(), rm)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", requestID.String())

		m.log.Debug("Request received", "request_id", requestID, "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	}
}
