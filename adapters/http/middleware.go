package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

const APIKeyHeader = "apikey"

// Authenticator turns a bearer token into a session.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*auth.Session, error)
}

// APIKeyMiddleware rejects requests that don't carry the public API key.
func APIKeyMiddleware(anonKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" || subtle.ConstantTimeCompare([]byte(key), []byte(anonKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   apperror.ErrUnauthorized.Error(),
				"message": "No API key found in request",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	h := c.GetHeader("Authorization")
	if h == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(h, "Bearer ")
	return token, ok && token != ""
}

func withSession(c *gin.Context, s *auth.Session) {
	c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), s))
}

// OptionalAuth attaches the session when a valid token is present. A missing
// or bad token leaves the request anonymous.
func OptionalAuth(a Authenticator, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}
		s, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug("Ignoring unusable bearer token", zap.Error(err))
			c.Next()
			return
		}
		withSession(c, s)
		c.Next()
	}
}

// RequireAuth aborts with 401 unless a valid, unrevoked token is present.
func RequireAuth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Error(apperror.NewAuth("Authorization header is required", nil))
			c.Abort()
			return
		}
		s, err := a.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		withSession(c, s)
		c.Next()
	}
}

// ErrorMiddleware renders the last error pushed with c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		reqLog := log.WithContext(c.Request.Context())

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
		}
		if status >= http.StatusInternalServerError {
			reqLog.Error("Request failed", err, fields...)
		} else {
			reqLog.Warn("Request rejected", append(fields, zap.Error(err))...)
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{
			"error":   apperror.ErrInternal.Error(),
			"message": "Something went wrong",
		})
	}
}

func LoggingMiddleware(log logger.Logger) gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info("HTTP request",
			zap.String("method", param.Method),
			zap.String("path", param.Path),
			zap.Int("status", param.StatusCode),
			zap.Duration("latency", param.Latency),
			zap.String("client_ip", param.ClientIP),
		)
		return ""
	})
}
