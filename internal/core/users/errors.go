package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrSearchSuperseded is returned to callers whose typeahead query was replaced by a newer input
	ErrSearchSuperseded = errors.New("search superseded by newer input")
)

// InvalidUserIDError is returned when a user id is not a positive integer
type InvalidUserIDError struct {
	Raw string
}

func (e *InvalidUserIDError) Error() string {
	return fmt.Sprintf("invalid user id %q: must be a positive integer", e.Raw)
}

// IsInvalidUserID checks if error is an invalid user id error
func IsInvalidUserID(err error) bool {
	var idErr *InvalidUserIDError
	return errors.As(err, &idErr)
}
