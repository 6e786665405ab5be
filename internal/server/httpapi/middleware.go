package httpapi

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growflow/internal/common"
	"github.com/dmitrijs2005/growflow/internal/logging"
	"github.com/dmitrijs2005/growflow/internal/server/auth"
	"github.com/dmitrijs2005/growflow/internal/server/metrics"
	"github.com/dmitrijs2005/growflow/internal/server/ratelimit"
)

const userIDKey = "growflow.userID"

// UserIDFromContext returns the user id RequireAuth attached to the request.
func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", common.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != common.BearerScheme || token == "" || strings.ContainsAny(token, " \t") {
		return "", common.ErrMalformedToken
	}
	return token, nil
}

// RequireAuth validates the bearer token and stores the caller's user id in
// the context. It is computed from the header alone and never touches the
// store, so rejected requests cost nothing downstream.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if err != nil {
			abortWithError(c, err, "")
			return
		}

		userID, err := auth.GetUserIDFromToken(token, secret)
		if err != nil {
			abortWithError(c, err, "")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequestLogger logs HTTP request/response metadata.
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"client_ip", c.ClientIP(),
			"latency", time.Since(start).String(),
		}
		if userID, ok := UserIDFromContext(c); ok {
			args = append(args, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.Last().Error())
		}

		if c.Writer.Status() >= 500 {
			logger.Error(c.Request.Context(), "http request", args...)
			return
		}
		logger.Info(c.Request.Context(), "http request", args...)
	}
}

// Metrics records request counts and latency per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

// RateLimit throttles by client IP. Limiter failures are logged and the
// request goes through.
func RateLimit(limiter ratelimit.Limiter, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn(c.Request.Context(), "rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			abortWithError(c, common.ErrorRateLimited, "")
			return
		}
		c.Next()
	}
}
