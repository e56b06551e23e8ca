package services

import (
	"os"
	"testing"
	"time"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/events"
	"finance-tracker-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
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
	os.Setenv("JWT_SECRET", "test_secret")

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
	database.RedisClient = nil
	events.DefaultPublisher = nil
	Now = func() time.Time { return time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC) }
	NotificationLocation = time.UTC
}

func setupTestRedis() *miniredis.Miniredis {
	mr, err := miniredis.Run()
	if err != nil {
		panic(err)
	}

	database.RedisClient = redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	return mr
}

func seedUser(t *testing.T, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Name:     username,
		Email:    username + "@example.com",
		Password: "x",
		Role:     models.RoleUser,
		Status:   models.StatusActive,
		Version:  1,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func seedCategory(t *testing.T, userID uint, name string) models.Category {
	t.Helper()
	category := models.Category{UserID: userID, Name: name, Type: "expense"}
	require.NoError(t, database.DB.Create(&category).Error)
	return category
}

func seedTransaction(t *testing.T, userID, categoryID uint, txType models.TransactionType, amount string, date models.Date) models.Transaction {
	t.Helper()
	tx := models.Transaction{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		Type:       txType,
		Date:       date,
	}
	require.NoError(t, database.DB.Create(&tx).Error)
	return tx
}

func seedBudget(t *testing.T, userID, categoryID uint, amount string, start models.Date, end *models.Date) models.Budget {
	t.Helper()
	budget := models.Budget{
		UserID:     userID,
		CategoryID: categoryID,
		Amount:     decimal.RequireFromString(amount),
		StartDate:  start,
		EndDate:    end,
	}
	require.NoError(t, database.DB.Create(&budget).Error)
	return budget
}

func date(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}

func datePtr(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(year, month, day)
	return &d
}

func countRows(t *testing.T, model interface{}, where ...interface{}) int64 {
	t.Helper()
	var n int64
	q := database.DB.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}
