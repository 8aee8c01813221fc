package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

func errorRouter(err error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(ErrorMiddleware(logger.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { c.Error(err) })
	return r
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"app error", apperror.NewAuthorizationDenied("nope"), http.StatusForbidden, `"message":"You are not allowed to modify this profile"`},
		{"transport", apperror.NewTransport("down", errors.New("dial")), http.StatusServiceUnavailable, `"error":"store unavailable"`},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, `"error":"internal server error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			errorRouter(tt.err).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.body)
		})
	}
}

func TestAPIKeyMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(APIKeyMiddleware("right"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for key, want := range map[string]int{"": http.StatusUnauthorized, "wrong": http.StatusUnauthorized, "right": http.StatusOK} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if key != "" {
			req.Header.Set(APIKeyHeader, key)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, want, rr.Code, key)
	}
}
