package seed

import "context"

// Fetcher retrieves the demo dataset from the third-party API
type Fetcher interface {
	FetchUsers(ctx context.Context) ([]APIUser, error)
	FetchPosts(ctx context.Context) ([]APIPost, error)
}

// Repository writes a dataset into the relational store
type Repository interface {
	// Reset deletes all posts, users and companies
	Reset(ctx context.Context) error

	// Import inserts the dataset in a single transaction.
	// Rows whose id (or company name) already exists are skipped, so re-running is safe.
	Import(ctx context.Context, data *Dataset) (*ImportStats, error)
}

// Service orchestrates a seeding run
type Service interface {
	Run(ctx context.Context, opts Options) (*ImportStats, error)
}

// Options controls a seeding run
type Options struct {
	// Reset wipes existing rows before importing
	Reset bool
}
