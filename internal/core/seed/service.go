package seed

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"Postboard/internal/core/posts"
	"Postboard/internal/core/users"
)

type seedService struct {
	fetcher Fetcher
	repo    Repository
}

// NewSeedService creates a seeding service
func NewSeedService(fetcher Fetcher, repo Repository) Service {
	return &seedService{
		fetcher: fetcher,
		repo:    repo,
	}
}

// Run fetches users and posts concurrently, then imports them in one transaction
// Flow: Fetch (parallel) -> Build dataset -> [Reset] -> Import
func (s *seedService) Run(ctx context.Context, opts Options) (*ImportStats, error) {
	var (
		apiUsers []APIUser
		apiPosts []APIPost
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		apiUsers, err = s.fetcher.FetchUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		apiPosts, err = s.fetcher.FetchPosts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("[SEED] Fetched %d users and %d posts", len(apiUsers), len(apiPosts))

	data, err := BuildDataset(apiUsers, apiPosts)
	if err != nil {
		return nil, err
	}

	if opts.Reset {
		log.Printf("[SEED] Resetting existing posts, users and companies")
		if err := s.repo.Reset(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset store: %w", err)
		}
	}

	stats, err := s.repo.Import(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("failed to import dataset: %w", err)
	}
	return stats, nil
}

// BuildDataset maps API payloads onto store records.
// Companies are deduplicated by name, keeping the first occurrence.
func BuildDataset(apiUsers []APIUser, apiPosts []APIPost) (*Dataset, error) {
	if len(apiUsers) == 0 || len(apiPosts) == 0 {
		return nil, ErrEmptyDataset
	}

	data := &Dataset{
		Companies: make([]*users.Company, 0, len(apiUsers)),
		Users:     make([]*UserRecord, 0, len(apiUsers)),
		Posts:     make([]*posts.Post, 0, len(apiPosts)),
	}

	seenCompanies := make(map[string]bool)
	knownUsers := make(map[int64]bool, len(apiUsers))

	for _, u := range apiUsers {
		if u.Company.Name != "" && !seenCompanies[u.Company.Name] {
			seenCompanies[u.Company.Name] = true
			data.Companies = append(data.Companies, &users.Company{
				Name:        u.Company.Name,
				CatchPhrase: u.Company.CatchPhrase,
				BS:          u.Company.BS,
			})
		}

		knownUsers[u.ID] = true
		data.Users = append(data.Users, &UserRecord{
			CompanyName: u.Company.Name,
			User: &users.User{
				ID:       u.ID,
				Name:     u.Name,
				Username: u.Username,
				Email:    u.Email,
				Phone:    u.Phone,
				Website:  u.Website,
				Address: users.Address{
					Street:  u.Address.Street,
					Suite:   u.Address.Suite,
					City:    u.Address.City,
					Zipcode: u.Address.Zipcode,
					Lat:     u.Address.Geo.Lat,
					Lng:     u.Address.Geo.Lng,
				},
			},
		})
	}

	for _, p := range apiPosts {
		if !knownUsers[p.UserID] {
			return nil, &OrphanPostError{PostID: p.ID, UserID: p.UserID}
		}
		data.Posts = append(data.Posts, &posts.Post{
			ID:     p.ID,
			UserID: p.UserID,
			Title:  p.Title,
			Body:   p.Body,
		})
	}

	return data, nil
}
