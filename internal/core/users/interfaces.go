package users

import "context"

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by primary key
	// Returns ErrUserNotFound when no row matches
	GetByID(ctx context.Context, id int64) (*User, error)

	// Search returns up to limit users whose name or username contains query
	// (case-insensitive), ordered by name ascending. An empty query matches everyone.
	Search(ctx context.Context, query string, limit int) ([]*User, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	// GetUser retrieves a user by id, served from a bounded LRU cache when possible
	GetUser(ctx context.Context, id int64) (*User, error)

	// SearchUsers returns at most SearchLimit summaries for the typeahead and user list
	SearchUsers(ctx context.Context, query string) ([]*UserSummary, error)
}
