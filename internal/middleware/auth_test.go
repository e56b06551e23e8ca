package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMiddleware(t *testing.T) {
	setupTestConfig()
	setupTestDB()
	mr := setupMockRedis()
	defer mr.Close()

	gin.SetMode(gin.TestMode)

	active := seedUser(t, "ana", models.RoleUser, models.StatusActive)
	inactive := seedUser(t, "ben", models.RoleUser, models.StatusInactive)

	revoked := generateTestToken(active.ID, models.RoleUser, false)
	require.NoError(t, services.AddToDenylist(revoked, time.Hour))

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"Missing Authorization Header", "", http.StatusUnauthorized, "authorization header is required"},
		{"Expired Token", "Bearer " + generateTestToken(active.ID, models.RoleUser, true), http.StatusUnauthorized, "Invalid or expired token"},
		{"Revoked Token", "Bearer " + revoked, http.StatusUnauthorized, "Token has been revoked"},
		{"Unknown User", "Bearer " + generateTestToken(999, models.RoleUser, false), http.StatusUnauthorized, "User not found"},
		{"Missing User Claim", "Bearer " + generateTestToken(0, models.RoleUser, false), http.StatusUnauthorized, "Invalid user ID in token"},
		{"Inactive User", "Bearer " + generateTestToken(inactive.ID, models.RoleUser, false), http.StatusForbidden, "Account is inactive"},
		{"Active User", "Bearer " + generateTestToken(active.ID, models.RoleUser, false), http.StatusOK, "ana"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.Use(AuthMiddleware())
			r.GET("/me", func(c *gin.Context) {
				user, _ := CurrentUser(c)
				assert.NotEmpty(t, CurrentToken(c))
				c.String(http.StatusOK, user.Username)
			})

			req, _ := http.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				var resp utils.Response
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Contains(t, resp.Message, tt.expectedBody)
			} else {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestLoggerSetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Logger())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("RequestID"))
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, w.Header().Get("X-Request-ID"), w.Body.String())

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
