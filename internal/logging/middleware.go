package logging

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKey = "logger"

var skipPrefixes = []string{"/static/", "/avatar/sequence/", "/favicon", "/healthz"}

// Middleware logs one structured line per request and stores a
// request-scoped logger in the gin context. Clients sending DNT: 1 are
// logged without an address; everyone else only by a salted hash of it.
func Middleware(logger *zap.Logger, salt string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		reqLogger := logger.With(
			zap.String("method", c.Request.Method),
			zap.String("path", path),
		)
		if c.GetHeader("DNT") != "1" {
			reqLogger = reqLogger.With(zap.String("client", HashIP(c.ClientIP(), salt)))
		}
		c.Set(contextKey, reqLogger)

		start := time.Now()
		c.Next()

		for _, p := range skipPrefixes {
			if strings.HasPrefix(path, p) && c.Writer.Status() < http.StatusInternalServerError {
				return
			}
		}
		fields := []zap.Field{
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			reqLogger.Error("request", fields...)
		case status >= http.StatusBadRequest:
			reqLogger.Warn("request", fields...)
		default:
			reqLogger.Info("request", fields...)
		}
	}
}

// FromContext returns the request logger set by Middleware, or a no-op logger.
func FromContext(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(contextKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return zap.NewNop()
}

// HashIP returns a short salted hash of ip, stable for a given salt.
func HashIP(ip, salt string) string {
	sum := sha256.Sum256([]byte(ip + salt))
	return hex.EncodeToString(sum[:])[:16]
}
