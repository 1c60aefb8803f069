package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/uditisharmaaa/portfolio/internal/logging"
	"github.com/uditisharmaaa/portfolio/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"

	viewKey     = "portfolio.view"
	postKey     = "portfolio.post"
	categoryKey = "portfolio.category"
)

// requestID propagates X-Request-ID or assigns a new UUID, and stores a
// request-scoped logger in the request context.
func requestID(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Header(requestIDHeader, id)
		ctx := logging.WithLogger(c.Request.Context(), logger.With(slog.String("request_id", id)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// newSalt returns a per-process random salt for client hashing.
func newSalt() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic("reading random salt: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// hashClient hides the client address in logs. The hash is stable for the
// life of the process so one visitor's requests can still be correlated.
func hashClient(salt, ip string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}

func routeLabel(c *gin.Context) string {
	if r := c.FullPath(); r != "" {
		return r
	}
	return "unmatched"
}

// accessLog writes one line per request.
func accessLog(salt string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger := logging.FromContext(c.Request.Context())
		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("route", routeLabel(c)),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("latency", time.Since(start)),
			slog.String("client", hashClient(salt, c.ClientIP())),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
			logger.Error("request failed", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}

// instrument records request metrics for every request and page metrics
// for requests whose handler named a view. Visitors sending DNT: 1 are not
// counted in the page metrics.
func instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := routeLabel(c)
		status := strconv.Itoa(c.Writer.Status())
		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())

		if c.GetHeader("DNT") == "1" {
			return
		}
		if view := c.GetString(viewKey); view != "" {
			metrics.PageViewsTotal.WithLabelValues(view).Inc()
		}
		if post := c.GetString(postKey); post != "" {
			metrics.PostViewsTotal.WithLabelValues(post).Inc()
		}
		if category := c.GetString(categoryKey); category != "" {
			metrics.ProjectFilterTotal.WithLabelValues(category).Inc()
		}
	}
}

func secureHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}
