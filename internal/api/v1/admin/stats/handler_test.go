package stats_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-tracker-backend/internal/api/v1/admin/stats"
	"finance-tracker-backend/internal/database"
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
}

func TestGetStats(t *testing.T) {
	setupTestDB()
	alice := models.User{Username: "alice", Email: "alice@example.com", Password: "x", Role: models.RoleUser, Status: models.StatusActive}
	carol := models.User{Username: "carol", Email: "carol@example.com", Password: "x", Role: models.RoleUser, Status: models.StatusInactive}
	require.NoError(t, database.DB.Create(&alice).Error)
	require.NoError(t, database.DB.Create(&carol).Error)
	food := models.Category{UserID: alice.ID, Name: "Food", Type: "expense"}
	require.NoError(t, database.DB.Create(&food).Error)
	for _, tx := range []models.Transaction{
		{UserID: alice.ID, CategoryID: food.ID, Amount: decimal.RequireFromString("12.50"), Type: models.TransactionTypeExpense, Date: models.NewDate(2024, 1, 2)},
		{UserID: alice.ID, CategoryID: food.ID, Amount: decimal.RequireFromString("7.50"), Type: models.TransactionTypeExpense, Date: models.NewDate(2024, 1, 3)},
		{UserID: alice.ID, CategoryID: food.ID, Amount: decimal.RequireFromString("1000"), Type: models.TransactionTypeIncome, Date: models.NewDate(2024, 1, 4)},
	} {
		tx := tx
		require.NoError(t, database.DB.Create(&tx).Error)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/admin", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: 99, Role: models.RoleAdmin, Status: models.StatusActive})
		c.Next()
	})
	stats.RegisterRoutes(group)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Data services.AdminStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.Users)
	assert.Equal(t, int64(1), resp.Data.ActiveUsers)
	assert.Equal(t, int64(1), resp.Data.Categories)
	assert.Equal(t, int64(3), resp.Data.Transactions)
	assert.Equal(t, "20.00", resp.Data.TotalExpense.StringFixed(2))
	assert.Equal(t, "1000.00", resp.Data.TotalIncome.StringFixed(2))
}

func TestGetStatsRequiresAdmin(t *testing.T) {
	setupTestDB()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/admin", func(c *gin.Context) {
		middleware.SetCurrentUser(c, models.User{ID: 5, Role: models.RoleUser, Status: models.StatusActive})
		c.Next()
	})
	stats.RegisterRoutes(group)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/admin/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
