package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"finance-tracker-backend/config"
	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/events"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var allModels = []interface{}{
	&models.User{},
	&models.Category{},
	&models.Transaction{},
	&models.Budget{},
	&models.Notification{},
	&models.AuditLog{},
}

func setupTestEnv(t *testing.T) *gin.Engine {
	t.Helper()
	os.Setenv("JWT_SECRET", "test_secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	db.Migrator().DropTable(allModels...)
	require.NoError(t, db.AutoMigrate(allModels...))
	database.DB = db

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() {
		mr.Close()
		database.RedisClient = nil
	})
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	events.DefaultPublisher = nil

	return NewRouter(&config.Config{CORSOrigins: []string{"http://localhost:5173"}})
}

func call(t *testing.T, r *gin.Engine, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)

	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func dataField(resp map[string]interface{}, key string) interface{} {
	data, _ := resp["data"].(map[string]interface{})
	return data[key]
}

func register(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	code, resp := call(t, r, http.MethodPost, "/api/v1/auth/register", "",
		fmt.Sprintf(`{"username":%q,"email":"%s@example.com","password":"secret1"}`, username, username))
	require.Equal(t, http.StatusCreated, code, resp)
	token, _ := dataField(resp, "token").(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	r := setupTestEnv(t)
	code, resp := call(t, r, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp["message"])
}

func TestBudgetWarningFlow(t *testing.T) {
	r := setupTestEnv(t)
	token := register(t, r, "alice")

	code, resp := call(t, r, http.MethodPost, "/api/v1/categories", token, `{"name":"Food"}`)
	require.Equal(t, http.StatusCreated, code, resp)
	categoryID := uint(dataField(resp, "id").(float64))

	code, resp = call(t, r, http.MethodPost, "/api/v1/budgets", token,
		fmt.Sprintf(`{"category_id":%d,"amount":100,"start_date":"01/01/2024"}`, categoryID))
	require.Equal(t, http.StatusCreated, code, resp)

	code, resp = call(t, r, http.MethodPost, "/api/v1/transactions", token,
		fmt.Sprintf(`{"category_id":%d,"amount":"90.00","type":"expense","date":"01/15/2024"}`, categoryID))
	require.Equal(t, http.StatusCreated, code, resp)

	code, resp = call(t, r, http.MethodGet, "/api/v1/notifications/my", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), dataField(resp, "unreadCount"))
	notifications, _ := dataField(resp, "notifications").([]interface{})
	require.Len(t, notifications, 1)
	first := notifications[0].(map[string]interface{})
	assert.Equal(t, string(models.NotificationBudgetWarning), first["type"])
	assert.Contains(t, first["message"], "90%")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestEnv(t)

	for _, path := range []string{
		"/api/v1/users/me",
		"/api/v1/categories",
		"/api/v1/transactions",
		"/api/v1/budgets",
		"/api/v1/notifications/my",
		"/api/v1/admin/users",
	} {
		code, _ := call(t, r, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, code, path)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	r := setupTestEnv(t)
	token := register(t, r, "alice")

	code, _ := call(t, r, http.MethodGet, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, http.MethodPost, "/api/v1/auth/logout", token, "")
	require.Equal(t, http.StatusOK, code)

	code, resp := call(t, r, http.MethodGet, "/api/v1/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Token has been revoked", resp["message"])
}

func TestAdminRoutes(t *testing.T) {
	r := setupTestEnv(t)
	userToken := register(t, r, "alice")

	code, _ := call(t, r, http.MethodGet, "/api/v1/admin/stats", userToken, "")
	assert.Equal(t, http.StatusForbidden, code)

	_, err := services.CreateAdminUser(services.RegisterParams{Username: "root", Email: "root@example.com", Password: "secret1"})
	require.NoError(t, err)
	code, resp := call(t, r, http.MethodPost, "/api/v1/auth/login", "", `{"username":"root","password":"secret1"}`)
	require.Equal(t, http.StatusOK, code, resp)
	adminToken := dataField(resp, "token").(string)

	code, resp = call(t, r, http.MethodGet, "/api/v1/admin/stats", adminToken, "")
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, float64(2), dataField(resp, "users"))

	code, resp = call(t, r, http.MethodGet, "/api/v1/admin/audit-logs?action=register_user", adminToken, "")
	require.Equal(t, http.StatusOK, code, resp)
	assert.Equal(t, float64(2), dataField(resp, "total"))
}

func TestDeletedAccountCannotAuthenticate(t *testing.T) {
	r := setupTestEnv(t)
	token := register(t, r, "alice")

	code, _ := call(t, r, http.MethodDelete, "/api/v1/users/me", token, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = call(t, r, http.MethodGet, "/api/v1/users/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}
