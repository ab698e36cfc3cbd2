package api

import (
	"io"
	"math/rand"
	"sync"
	"time"

	"holocron/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

const (
	requestIDKey    = "request_id"
	requestIDHeader = "X-Request-ID"
	maxRequestIDLen = 64
)

// validRequestID: [A-Za-z0-9-]{1,64}. Иначе id генерируется заново.
func validRequestID(s string) bool {
	if len(s) == 0 || len(s) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-':
		default:
			return false
		}
	}
	return true
}

// ulid.Monotonic не потокобезопасен, поэтому генерация под мьютексом.
type idSource struct {
	mu      sync.Mutex
	entropy io.Reader
}

func newIDSource() *idSource {
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &idSource{entropy: ulid.Monotonic(src, 0)}
}

func (s *idSource) next(t time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// RequestLogger присваивает запросу id (или берёт корректный из X-Request-ID) и пишет строку лога по завершении.
func RequestLogger(log logging.Logger) gin.HandlerFunc {
	ids := newIDSource()
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(requestIDHeader)
		if !validRequestID(rid) {
			rid = ids.next(start)
		}
		c.Set(requestIDKey, rid)
		c.Header(requestIDHeader, rid)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		log.Info(c.Request.Context(), "request",
			"request_id", rid,
			"method", c.Request.Method,
			"route", route,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}
