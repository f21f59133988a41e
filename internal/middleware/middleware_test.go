package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventhub/internal/middleware"
	apperrors "eventhub/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// verifierStub 以固定結果實作 auth.TokenVerifier
type verifierStub struct {
	userID int
	err    error
}

func (v verifierStub) Verify(_ context.Context, _ string) (int, error) {
	return v.userID, v.err
}

func setupAuthRouter(verifier verifierStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(verifier), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.CurrentUserID(c)})
	})
	return router
}

func TestRequireAuth(t *testing.T) {
	t.Run("Success - user id available to handlers", func(t *testing.T) {
		router := setupAuthRouter(verifierStub{userID: 42})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"user_id": 42}`, w.Body.String())
	})

	t.Run("Failed - missing header", func(t *testing.T) {
		router := setupAuthRouter(verifierStub{userID: 42})

		req := httptest.NewRequest("GET", "/protected", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Unauthenticated.")
	})

	t.Run("Failed - not a bearer token", func(t *testing.T) {
		router := setupAuthRouter(verifierStub{userID: 42})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Failed - verifier rejects token", func(t *testing.T) {
		router := setupAuthRouter(verifierStub{err: apperrors.ErrInvalidToken})

		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps the caller supplied id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("X-Request-ID", "fixed-id")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
	})
}
