package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/crm/backend/internal/domain/identity"
	"github.com/crm/backend/internal/infrastructure/auth"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-middleware",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "crm-backend-test",
	})
}

// newProtectedRouter wires the auth middleware in front of a handler that
// returns a payload only authenticated requests may see
func newProtectedRouter(jwtService *auth.JWTService) *gin.Engine {
	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/leads", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": "lead-records"})
	})
	router.GET("/api/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	return router
}

func TestJWTAuthMiddlewareRejectsUnauthenticated(t *testing.T) {
	jwtService := newTestJWTService()
	router := newProtectedRouter(jwtService)

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing authorization header", ""},
		{"bearer prefix without token", "Bearer "},
		{"malformed token", "Bearer not-a-valid-jwt"},
		{"non-bearer scheme", "Basic dXNlcjpwYXNz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/leads", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
			assert.NotContains(t, w.Body.String(), "lead-records")
		})
	}
}

func TestJWTAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	expiredService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-middleware",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "crm-backend-test",
	})
	pair, err := expiredService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jdoe",
		Role:     string(identity.RoleAdmin),
	})
	require.NoError(t, err)

	router := newProtectedRouter(newTestJWTService())

	req := httptest.NewRequest("GET", "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	assert.NotContains(t, w.Body.String(), "lead-records")
}

func TestJWTAuthMiddlewareRejectsUnknownRole(t *testing.T) {
	jwtService := newTestJWTService()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "jdoe",
		Role:     "superuser",
	})
	require.NoError(t, err)

	router := newProtectedRouter(jwtService)

	req := httptest.NewRequest("GET", "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "lead-records")
}

func TestJWTAuthMiddlewareAllowsValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "jdoe",
		Role:     string(identity.RoleSalesManager),
	})
	require.NoError(t, err)

	router := gin.New()
	router.Use(JWTAuthMiddleware(jwtService))
	router.GET("/api/v1/leads", func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		assert.Equal(t, userID, actor.UserID)
		assert.Equal(t, identity.RoleSalesManager, actor.Role)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	req := httptest.NewRequest("GET", "/api/v1/leads", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddlewareSkipsConfiguredPaths(t *testing.T) {
	router := newProtectedRouter(newTestJWTService())

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
