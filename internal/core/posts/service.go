package posts

import (
	"context"
	"errors"
)

type postService struct {
	repo Repository
}

// NewPostService creates a new post service backed by the given repository
func NewPostService(repo Repository) Service {
	return &postService{repo: repo}
}

// GetPage fetches one page of posts using keyset pagination on id.
// One extra row is requested as a probe for HasMore and is never returned.
func (s *postService) GetPage(ctx context.Context, req PageRequest) (*Page, error) {
	rows, err := s.repo.ListPage(ctx, req.UserID, req.Cursor, PageSize+1)
	if err != nil {
		return nil, NewStorageError("list posts", err)
	}

	page := &Page{
		Posts:   rows,
		HasMore: len(rows) > PageSize,
	}
	if page.HasMore {
		page.Posts = rows[:PageSize]
		last := page.Posts[len(page.Posts)-1].ID
		page.NextCursor = &last
	}

	// Encode as [] rather than null
	if page.Posts == nil {
		page.Posts = []*PostView{}
	}

	return page, nil
}

// GetPost retrieves a single post view
func (s *postService) GetPost(ctx context.Context, id int64) (*PostView, error) {
	if id <= 0 {
		return nil, NewValidationError("id", "post id must be a positive integer")
	}

	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, NewStorageError("get post", err)
	}
	return post, nil
}

// DeletePost deletes a single post by id
func (s *postService) DeletePost(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewValidationError("id", "post id must be a positive integer")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return NewStorageError("delete post", err)
	}
	return nil
}
