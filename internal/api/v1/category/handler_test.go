package category_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-tracker-backend/internal/api/v1/category"
	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/middleware"
	"finance-tracker-backend/internal/models"

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
	&models.AuditLog{},
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

func seedUser(t *testing.T, username, role string) models.User {
	t.Helper()
	u := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     role,
		Status:   models.StatusActive,
		Version:  1,
	}
	require.NoError(t, database.DB.Create(&u).Error)
	return u
}

func seedCategory(t *testing.T, userID uint, name string) models.Category {
	t.Helper()
	c := models.Category{UserID: userID, Name: name, Type: "expense"}
	require.NoError(t, database.DB.Create(&c).Error)
	return c
}

func newRouter(u models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1", func(c *gin.Context) {
		middleware.SetCurrentUser(c, u)
		c.Next()
	})
	category.RegisterRoutes(group)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type categoryResponse struct {
	Status int             `json:"status"`
	Data   models.Category `json:"data"`
}

func TestCreateCategory(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		checkResponse  func(t *testing.T, body []byte)
	}{
		{
			name:           "Defaults type to expense",
			body:           `{"name":"Groceries"}`,
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, body []byte) {
				var resp categoryResponse
				require.NoError(t, json.Unmarshal(body, &resp))
				assert.Equal(t, "Groceries", resp.Data.Name)
				assert.Equal(t, models.DefaultCategoryType, resp.Data.Type)

				var audits int64
				database.DB.Model(&models.AuditLog{}).Where("action = ?", models.AuditAddCategory).Count(&audits)
				assert.Equal(t, int64(1), audits)
			},
		},
		{
			name:           "Free-form type",
			body:           `{"name":"Salary","type":"income"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Duplicate name",
			body:           `{"name":"Rent"}`,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Missing name",
			body:           `{"type":"expense"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Blank name",
			body:           `{"name":"   "}`,
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, body []byte) {
				assert.Contains(t, string(body), "category name is required")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB()
			alice := seedUser(t, "alice", models.RoleUser)
			seedCategory(t, alice.ID, "Rent")

			w := do(newRouter(alice), http.MethodPost, "/api/v1/categories", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.checkResponse != nil {
				tt.checkResponse(t, w.Body.Bytes())
			}
		})
	}
}

func TestListCategoriesOnlyOwn(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice", models.RoleUser)
	bob := seedUser(t, "bob", models.RoleUser)
	seedCategory(t, alice.ID, "Travel")
	seedCategory(t, alice.ID, "Food")
	seedCategory(t, bob.ID, "Hobbies")

	w := do(newRouter(alice), http.MethodGet, "/api/v1/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Food", resp.Data[0].Name)
	assert.Equal(t, "Travel", resp.Data[1].Name)
}

func TestUpdateCategory(t *testing.T) {
	tests := []struct {
		name           string
		actor          string
		body           string
		expectedStatus int
	}{
		{name: "Owner renames", actor: "alice", body: `{"name":"Eating out"}`, expectedStatus: http.StatusOK},
		{name: "Admin renames", actor: "admin", body: `{"type":"Global"}`, expectedStatus: http.StatusOK},
		{name: "Other user is forbidden", actor: "bob", body: `{"name":"Mine now"}`, expectedStatus: http.StatusForbidden},
		{name: "Name taken", actor: "alice", body: `{"name":"Rent"}`, expectedStatus: http.StatusConflict},
		{name: "Nothing to update", actor: "alice", body: `{}`, expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestDB()
			users := map[string]models.User{
				"alice": seedUser(t, "alice", models.RoleUser),
				"bob":   seedUser(t, "bob", models.RoleUser),
				"admin": seedUser(t, "admin", models.RoleAdmin),
			}
			food := seedCategory(t, users["alice"].ID, "Food")
			seedCategory(t, users["alice"].ID, "Rent")

			path := fmt.Sprintf("/api/v1/categories/%d", food.ID)
			w := do(newRouter(users[tt.actor]), http.MethodPut, path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
		})
	}
}

func TestUpdateCategoryNotFound(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice", models.RoleUser)

	w := do(newRouter(alice), http.MethodPut, "/api/v1/categories/999", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(newRouter(alice), http.MethodPut, "/api/v1/categories/abc", `{"name":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryCascades(t *testing.T) {
	setupTestDB()
	alice := seedUser(t, "alice", models.RoleUser)
	bob := seedUser(t, "bob", models.RoleUser)
	food := seedCategory(t, alice.ID, "Food")
	require.NoError(t, database.DB.Create(&models.Transaction{
		UserID: alice.ID, CategoryID: food.ID, Amount: decimal.NewFromInt(10),
		Type: models.TransactionTypeExpense, Date: models.NewDate(2024, 1, 5),
	}).Error)
	require.NoError(t, database.DB.Create(&models.Budget{
		UserID: alice.ID, CategoryID: food.ID, Amount: decimal.NewFromInt(100),
		StartDate: models.NewDate(2024, 1, 1),
	}).Error)

	path := fmt.Sprintf("/api/v1/categories/%d", food.ID)

	w := do(newRouter(bob), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(newRouter(alice), http.MethodDelete, path, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var txCount, budgetCount int64
	database.DB.Model(&models.Transaction{}).Count(&txCount)
	database.DB.Model(&models.Budget{}).Count(&budgetCount)
	assert.Zero(t, txCount)
	assert.Zero(t, budgetCount)
}
