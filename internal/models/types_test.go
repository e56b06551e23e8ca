package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"03/07/2024"`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equal(d.Time))

	data, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	assert.Error(t, json.Unmarshal([]byte(`20240307`), &decoded))
	assert.Error(t, json.Unmarshal([]byte(`"not a date"`), &decoded))
}

func TestDateValueAndScan(t *testing.T) {
	local := time.FixedZone("UTC+9", 9*3600)
	d := DateOf(time.Date(2024, time.January, 31, 23, 30, 0, 0, local))

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), v)

	zero, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, zero)

	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{name: "time", input: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), want: "02/29/2024"},
		{name: "sqlite string", input: "2024-02-29", want: "02/29/2024"},
		{name: "sqlite datetime bytes", input: []byte("2024-02-29 00:00:00"), want: "02/29/2024"},
		{name: "rfc3339", input: "2024-02-29T00:00:00Z", want: "02/29/2024"},
		{name: "null", input: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var scanned Date
			require.NoError(t, scanned.Scan(tt.input))
			assert.Equal(t, tt.want, scanned.String())
		})
	}

	var bad Date
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("yesterday"))
}

func TestTransactionTypeValid(t *testing.T) {
	assert.True(t, TransactionTypeIncome.Valid())
	assert.True(t, TransactionTypeExpense.Valid())
	assert.False(t, TransactionType("Expense").Valid())
	assert.False(t, TransactionType("transfer").Valid())
}

func TestNotificationDedupKey(t *testing.T) {
	categoryID := uint(4)
	assert.Equal(t, "7:budget_warning:4:2024-01-20", NotificationDedupKey(7, NotificationBudgetWarning, &categoryID, "2024-01-20"))
	assert.Equal(t, "7:budget_exceeded:none:2024-01-20", NotificationDedupKey(7, NotificationBudgetExceeded, nil, "2024-01-20"))
}

func TestUserIsActive(t *testing.T) {
	assert.True(t, User{Status: StatusActive}.IsActive())
	assert.True(t, User{}.IsActive())
	assert.False(t, User{Status: StatusInactive}.IsActive())
}
