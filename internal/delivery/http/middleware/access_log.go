package middleware

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-ID"

type AccessLogMiddleware struct {
	logger *log.Logger
}

func NewAccessLogMiddleware(logger *log.Logger) *AccessLogMiddleware {
	if logger == nil {
		logger = log.Default()
	}
	return &AccessLogMiddleware{logger: logger}
}

// Middleware logs one line per request after the rest of the chain, including
// the error handler, has written the response.
func (m *AccessLogMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		rid := c.Get(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(HeaderRequestID, rid)

		err := c.Next()

		user := "-"
		if id, ok := UserIDFromCtx(c); ok {
			user = id.String()
		}

		m.logger.Printf(
			"HTTP access | rid=%s method=%s path=%s status=%d latency=%s user_id=%s ip=%s resp_bytes=%d ua=%q",
			rid, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), user, c.IP(),
			len(c.Response().Body()), c.Get("User-Agent"),
		)
		return err
	}
}
