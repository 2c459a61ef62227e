package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/advisorgraph-backend/internal/platform/logger"
)

const (
	// SessionHeader carries the dashboard session id. The middleware mints
	// one when the client does not send a valid uuid and echoes it back so
	// the client can persist it.
	SessionHeader = "X-Session-ID"
	sessionCtxKey = "session_id"
)

type SessionMiddleware struct {
	log *logger.Logger
}

func NewSessionMiddleware(log *logger.Logger) *SessionMiddleware {
	return &SessionMiddleware{log: log.With("middleware", "SessionMiddleware")}
}

func (m *SessionMiddleware) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(SessionHeader))
		id, err := uuid.Parse(raw)
		if raw == "" || err != nil {
			id = uuid.New()
			m.log.Debug("session id minted", "session_id", id.String())
		}
		c.Set(sessionCtxKey, id)
		c.Header(SessionHeader, id.String())
		c.Next()
	}
}

// SessionID extracts the session id attached by the middleware.
func SessionID(c *gin.Context) uuid.UUID {
	if v, ok := c.Get(sessionCtxKey); ok {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
