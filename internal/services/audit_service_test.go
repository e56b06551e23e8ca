package services

import (
	"testing"

	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAuditLogs(t *testing.T) {
	setupTestDB()

	require.NoError(t, RecordAudit(database.DB, 1, models.AuditAddCategory, "first", nil))
	require.NoError(t, RecordAudit(database.DB, 1, models.AuditAddTransaction, "second", map[string]interface{}{"transaction_id": 5}))
	require.NoError(t, RecordAudit(database.DB, 2, models.AuditAddCategory, "third", nil))

	logs, total, err := FindAuditLogs(AuditLogFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 3)
	assert.Equal(t, "third", logs[0].Details)
	assert.JSONEq(t, `{"transaction_id":5}`, string(logs[1].Metadata))

	userID := uint(1)
	action := models.AuditAddCategory
	logs, total, err = FindAuditLogs(AuditLogFilter{UserID: &userID, Action: &action, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, "first", logs[0].Details)

	logs, total, err = FindAuditLogs(AuditLogFilter{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "first", logs[0].Details)
}
