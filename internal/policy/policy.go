// Package policy holds the authorization table consulted by middleware and
// services. Each action lists the roles that may always perform it, whether
// the owner of the target resource may perform it, and whether a denial is
// reported as not-found so the resource's existence is not revealed.
package policy

import "errors"

var (
	ErrForbidden = errors.New("forbidden")
	ErrNotFound  = errors.New("not found")
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type Action string

const (
	CategoryUpdate Action = "category:update"
	CategoryDelete Action = "category:delete"

	TransactionRead   Action = "transaction:read"
	TransactionUpdate Action = "transaction:update"
	TransactionDelete Action = "transaction:delete"

	BudgetRead   Action = "budget:read"
	BudgetUpdate Action = "budget:update"
	BudgetDelete Action = "budget:delete"

	NotificationUpdate Action = "notification:update"
	NotificationDelete Action = "notification:delete"

	AdminListUsers        Action = "admin:users:list"
	AdminUpdateUser       Action = "admin:users:update"
	AdminDeleteUser       Action = "admin:users:delete"
	AdminListTransactions Action = "admin:transactions:list"
	AdminListAuditLogs    Action = "admin:auditlogs:list"
	AdminViewStats        Action = "admin:stats"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

type Rule struct {
	Roles          []string
	AllowOwner     bool
	HideAsNotFound bool
}

var ownerOnly = Rule{AllowOwner: true, HideAsNotFound: true}

var adminOnly = Rule{Roles: []string{RoleAdmin}}

var rules = map[Action]Rule{
	CategoryUpdate: {Roles: []string{RoleAdmin}, AllowOwner: true},
	CategoryDelete: {Roles: []string{RoleAdmin}, AllowOwner: true},

	TransactionRead:   ownerOnly,
	TransactionUpdate: ownerOnly,
	TransactionDelete: ownerOnly,

	BudgetRead:   ownerOnly,
	BudgetUpdate: ownerOnly,
	BudgetDelete: ownerOnly,

	NotificationUpdate: ownerOnly,
	NotificationDelete: ownerOnly,

	AdminListUsers:        adminOnly,
	AdminUpdateUser:       adminOnly,
	AdminDeleteUser:       adminOnly,
	AdminListTransactions: adminOnly,
	AdminListAuditLogs:    adminOnly,
	AdminViewStats:        adminOnly,
}

// RuleFor returns the rule registered for action.
func RuleFor(action Action) (Rule, bool) {
	r, ok := rules[action]
	return r, ok
}

// Check decides whether actor may perform action on a resource owned by
// ownerID. Pass ownerID 0 for actions that do not target a resource.
// Unknown actions are denied.
func Check(actor Actor, action Action, ownerID uint) error {
	rule, ok := rules[action]
	if !ok {
		return ErrForbidden
	}

	for _, role := range rule.Roles {
		if actor.Role == role {
			return nil
		}
	}

	if rule.AllowOwner && ownerID != 0 && ownerID == actor.ID {
		return nil
	}

	if rule.HideAsNotFound {
		return ErrNotFound
	}
	return ErrForbidden
}

// RoleAllowed reports whether role alone grants action, without an
// ownership check.
func RoleAllowed(role string, action Action) bool {
	rule, ok := rules[action]
	if !ok {
		return false
	}
	for _, r := range rule.Roles {
		if r == role {
			return true
		}
	}
	return false
}
