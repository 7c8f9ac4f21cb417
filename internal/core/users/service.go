package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	userCacheSize = 1000
	userCacheTTL  = 5 * time.Minute
)

type userService struct {
	userRepo  UserRepository
	userCache *lru.Cache[int64, cachedUser] // Bounded LRU cache for GetUser lookups
	now       func() time.Time
}

// cachedUser is a cached lookup result with expiration
// Users only change when the store is reseeded, so a short TTL is enough
type cachedUser struct {
	expiresAt time.Time
	user      *User
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository) UserService {
	cache, err := lru.New[int64, cachedUser](userCacheSize)
	if err != nil {
		log.Printf("WARNING: Failed to create user cache, lookups will hit the database: %v", err)
		cache, _ = lru.New[int64, cachedUser](1)
	}

	return &userService{
		userRepo:  userRepo,
		userCache: cache,
		now:       time.Now,
	}
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, &InvalidUserIDError{Raw: fmt.Sprintf("%d", id)}
	}

	if cached, ok := s.userCache.Get(id); ok {
		if s.now().Before(cached.expiresAt) {
			return cached.user, nil
		}
		s.userCache.Remove(id)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}

	s.userCache.Add(id, cachedUser{
		user:      user,
		expiresAt: s.now().Add(userCacheTTL),
	})
	return user, nil
}

// SearchUsers finds users by case-insensitive substring of name or username
func (s *userService) SearchUsers(ctx context.Context, query string) ([]*UserSummary, error) {
	query = strings.TrimSpace(query)

	found, err := s.userRepo.Search(ctx, query, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	summaries := make([]*UserSummary, 0, len(found))
	for _, u := range found {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}
