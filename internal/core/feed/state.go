// Package feed models the client-held state of the post feed.
// The feed changes through three explicit transitions: Reset replaces the
// list (the author filter changed), Extend appends a page (load more), and
// Remove drops one post after a successful delete.
package feed

import (
	"errors"

	"Postboard/internal/core/posts"
)

// ErrStalePage is returned by Extend when the page does not continue the current list
var ErrStalePage = errors.New("page does not continue the current feed")

// ErrExhausted is returned by Extend when the feed already reported no more pages
var ErrExhausted = errors.New("feed has no more pages")

// State is the accumulated feed: the posts shown so far, whether more exist,
// the cursor for the next page, and the active author filter
type State struct {
	Filter  *int64
	Cursor  *int64
	Posts   []*posts.PostView
	HasMore bool
}

// New returns the empty state for a filter, before any page is loaded
func New(filter *int64) *State {
	return &State{
		Filter: filter,
		Posts:  []*posts.PostView{},
	}
}

// NextRequest builds the request for the page that would extend this state
func (s *State) NextRequest() posts.PageRequest {
	return posts.PageRequest{UserID: s.Filter, Cursor: s.Cursor}
}

// Reset replaces the whole list with the first page for a (possibly new) filter
func (s *State) Reset(filter *int64, page *posts.Page) {
	s.Filter = filter
	s.Posts = append([]*posts.PostView{}, page.Posts...)
	s.apply(page)
}

// Extend appends the next page. The page must start after the last post already
// held, otherwise it belongs to a different cursor and is rejected untouched.
func (s *State) Extend(page *posts.Page) error {
	if !s.HasMore {
		return ErrExhausted
	}
	if len(page.Posts) > 0 && s.Cursor != nil && page.Posts[0].ID <= *s.Cursor {
		return ErrStalePage
	}
	s.Posts = append(s.Posts, page.Posts...)
	s.apply(page)
	return nil
}

// Remove drops a deleted post from the list without refetching.
// The cursor is left alone: keyset pagination is unaffected by deletes.
func (s *State) Remove(id int64) bool {
	for i, p := range s.Posts {
		if p.ID == id {
			s.Posts = append(s.Posts[:i], s.Posts[i+1:]...)
			return true
		}
	}
	return false
}

// Empty reports whether the feed currently shows no posts
func (s *State) Empty() bool {
	return len(s.Posts) == 0
}

// Ended reports whether the end-of-feed marker should be shown
func (s *State) Ended() bool {
	return !s.HasMore && len(s.Posts) > 0
}

func (s *State) apply(page *posts.Page) {
	s.HasMore = page.HasMore
	if page.HasMore {
		s.Cursor = page.NextCursor
	} else {
		s.Cursor = nil
	}
}
