package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	owner := Actor{ID: 1, Role: RoleUser}
	stranger := Actor{ID: 2, Role: RoleUser}
	admin := Actor{ID: 3, Role: RoleAdmin}

	tests := []struct {
		name     string
		actor    Actor
		action   Action
		ownerID  uint
		expected error
	}{
		{"owner updates category", owner, CategoryUpdate, 1, nil},
		{"stranger updates category", stranger, CategoryUpdate, 1, ErrForbidden},
		{"admin updates any category", admin, CategoryDelete, 1, nil},
		{"owner deletes transaction", owner, TransactionDelete, 1, nil},
		{"stranger deletes transaction", stranger, TransactionDelete, 1, ErrNotFound},
		{"admin cannot touch user transaction", admin, TransactionUpdate, 1, ErrNotFound},
		{"owner reads notification", owner, NotificationUpdate, 1, nil},
		{"stranger deletes notification", stranger, NotificationDelete, 1, ErrNotFound},
		{"stranger reads budget", stranger, BudgetRead, 1, ErrNotFound},
		{"admin views stats", admin, AdminViewStats, 0, nil},
		{"user views stats", owner, AdminViewStats, 0, ErrForbidden},
		{"user lists audit logs", owner, AdminListAuditLogs, 0, ErrForbidden},
		{"zero owner never matches", Actor{ID: 0, Role: RoleUser}, TransactionRead, 0, ErrNotFound},
		{"unknown action", admin, Action("nope"), 0, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Check(tt.actor, tt.action, tt.ownerID))
		})
	}
}

func TestRoleAllowed(t *testing.T) {
	assert.True(t, RoleAllowed(RoleAdmin, AdminListUsers))
	assert.False(t, RoleAllowed(RoleUser, AdminListUsers))
	assert.False(t, RoleAllowed(RoleUser, TransactionRead))
	assert.False(t, RoleAllowed(RoleAdmin, Action("missing")))
}
