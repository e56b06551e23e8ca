package notification_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finance-tracker-backend/internal/api/v1/notification"
	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/events"
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/models"
	"finance-tracker-backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
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
}

func setupTestDB() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database")
	}

	db.Migrator().DropTable(allModels...)
	if err := db.AutoMigrate(allModels...); err != nil {
		panic("failed to migrate database")
	}

	database.DB = db
	events.DefaultPublisher = nil
	services.Now = func() time.Time { return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC) }
	services.NotificationLocation = time.UTC
}

func seedUser(t *testing.T, username string) models.User {
	t.Helper()
	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		Version:  1,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

// seedSpend creates a category with a 100.00 budget and spent expenses in it.
func seedSpend(t *testing.T, userID uint, name, spent string) models.Category {
	t.Helper()
	c := models.Category{UserID: userID, Name: name, Type: "expense"}
	require.NoError(t, database.DB.Create(&c).Error)
	require.NoError(t, database.DB.Create(&models.Budget{
		UserID: userID, CategoryID: c.ID, Amount: decimal.NewFromInt(100),
		StartDate: models.NewDate(2024, 1, 1),
	}).Error)
	require.NoError(t, database.DB.Create(&models.Transaction{
		UserID: userID, CategoryID: c.ID, Amount: decimal.RequireFromString(spent),
		Type: models.TransactionTypeExpense, Date: models.NewDate(2024, 1, 10),
	}).Error)
	return c
}

func seedNotification(t *testing.T, userID uint, key string, read bool) models.Notification {
	t.Helper()
	n := models.Notification{
		UserID:   userID,
		Type:     models.NotificationBudgetWarning,
		Message:  "You have used 85% of your budget",
		IsRead:   read,
		DedupKey: key,
	}
	require.NoError(t, database.DB.Create(&n).Error)
	return n
}

func newRouter(u models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", func(c *gin.Context) {
		middleware.SetCurrentUser(c, u)
		c.Next()
	})
	notification.RegisterRoutes(group)
	return r
}

func do(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestCheckBudgets(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice")
	seedSpend(t, alice.ID, "Food", "85")
	seedSpend(t, alice.ID, "Travel", "100")
	seedSpend(t, alice.ID, "Fun", "120")
	seedSpend(t, alice.ID, "Rent", "10")

	r := newRouter(alice)

	w := do(r, http.MethodPost, "/api/v1/notifications/check-budgets")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data notification.CheckBudgetsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Data.Created)
	assert.Equal(t, int64(3), resp.Data.UnreadCount)

	types := map[models.NotificationType]bool{}
	for _, n := range resp.Data.Notifications {
		types[n.Type] = true
	}
	assert.True(t, types[models.NotificationBudgetWarning])
	assert.True(t, types[models.NotificationBudgetFullyUsed])
	assert.True(t, types[models.NotificationBudgetExceeded])

	// same day: nothing new
	w = do(r, http.MethodPost, "/api/v1/notifications/check-budgets")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.Created)
	assert.Empty(t, resp.Data.Notifications)
	assert.Equal(t, int64(3), resp.Data.UnreadCount)
}

func TestMyNotifications(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	seedNotification(t, alice.ID, "a1", false)
	seedNotification(t, alice.ID, "a2", true)
	seedNotification(t, bob.ID, "b1", false)

	w := do(newRouter(alice), http.MethodGet, "/api/v1/notifications/my")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data notification.NotificationListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data.Notifications, 2)
	assert.Equal(t, int64(1), resp.Data.UnreadCount)
}

func TestMarkRead(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	n := seedNotification(t, alice.ID, "a1", false)

	tests := []struct {
		name           string
		actor          models.User
		path           string
		expectedStatus int
	}{
		{name: "Other user", actor: bob, path: fmt.Sprintf("/api/v1/notifications/read/%d", n.ID), expectedStatus: http.StatusNotFound},
		{name: "Unknown id", actor: alice, path: "/api/v1/notifications/read/999", expectedStatus: http.StatusNotFound},
		{name: "Invalid id", actor: alice, path: "/api/v1/notifications/read/x", expectedStatus: http.StatusBadRequest},
		{name: "Owner", actor: alice, path: fmt.Sprintf("/api/v1/notifications/read/%d", n.ID), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(tt.actor), http.MethodPut, tt.path)
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}

	var stored models.Notification
	require.NoError(t, database.DB.First(&stored, n.ID).Error)
	assert.True(t, stored.IsRead)
}

func TestMarkAllRead(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	seedNotification(t, alice.ID, "a1", false)
	seedNotification(t, alice.ID, "a2", false)
	seedNotification(t, alice.ID, "a3", true)
	seedNotification(t, bob.ID, "b1", false)

	w := do(newRouter(alice), http.MethodPut, "/api/v1/notifications/read-all")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data notification.MarkAllReadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Updated)

	var bobUnread int64
	database.DB.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", bob.ID, false).Count(&bobUnread)
	assert.Equal(t, int64(1), bobUnread)
}

func TestDeleteNotification(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice")
	bob := seedUser(t, "bob")
	n := seedNotification(t, alice.ID, "a1", false)
	path := fmt.Sprintf("/api/v1/notifications/%d", n.ID)

	w := do(newRouter(bob), http.MethodDelete, path)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(newRouter(alice), http.MethodDelete, path)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	database.DB.Model(&models.Notification{}).Count(&count)
	assert.Zero(t, count)
}
