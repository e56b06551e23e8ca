package services

import (
	"errors"
	"fmt"
	"time"

	"finance-tracker-backend/internal/policy"
)

var (
	// ErrValidation wraps every input validation failure; the wrapped
	// message is safe to show to the caller.
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = policy.ErrForbidden
)

// Now is the clock used for notification day boundaries.
var Now = time.Now

// NotificationLocation decides which calendar day a notification belongs to.
var NotificationLocation = time.UTC

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// authorize runs the policy check and maps a hidden denial to notFound.
func authorize(actor policy.Actor, action policy.Action, ownerID uint, notFound error) error {
	err := policy.Check(actor, action, ownerID)
	if errors.Is(err, policy.ErrNotFound) {
		return notFound
	}
	return err
}

func offsetFor(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
