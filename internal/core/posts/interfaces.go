package posts

import "context"

// Service defines the business logic interface for posts
type Service interface {
	// GetPage returns one page of posts in ascending id order
	// Fetches PageSize+1 rows so HasMore is known without a COUNT query
	GetPage(ctx context.Context, req PageRequest) (*Page, error)

	// GetPost retrieves a single post with its author name
	GetPost(ctx context.Context, id int64) (*PostView, error)

	// DeletePost removes one post by id. Never touches the author.
	DeletePost(ctx context.Context, id int64) error
}

// Repository defines the data access interface for posts
type Repository interface {
	// ListPage returns at most limit posts with id > cursor (when set),
	// restricted to userID (when set), ordered by id ascending and joined with author name
	ListPage(ctx context.Context, userID, cursor *int64, limit int) ([]*PostView, error)

	// GetByID retrieves a post view by primary key
	// Returns ErrNotFound when no row matches
	GetByID(ctx context.Context, id int64) (*PostView, error)

	// Delete removes a post by primary key
	// Returns ErrNotFound when no row was affected
	Delete(ctx context.Context, id int64) error
}
