package posts

import "strconv"

// PageSize is the fixed maximum number of posts returned per listing call
const PageSize = 10

// Post represents a post row in the relational store
// Posts are created by the seeder and only ever deleted afterwards
type Post struct {
	Title  string `json:"title" db:"title"`
	Body   string `json:"body" db:"body"`
	ID     int64  `json:"id" db:"id"`
	UserID int64  `json:"userId" db:"user_id"`
}

// AuthorRef is the minimal author information embedded in post views
type AuthorRef struct {
	Name string `json:"name"`
}

// PostView is a post joined with its author's display name
// Matches the wire shape {id, title, body, userId, user: {name}}
type PostView struct {
	User   *AuthorRef `json:"user"`
	Title  string     `json:"title"`
	Body   string     `json:"body"`
	ID     int64      `json:"id"`
	UserID int64      `json:"userId"`
}

// PageRequest holds the optional filter and cursor for one listing call
type PageRequest struct {
	// UserID restricts the page to posts by a single author (nil = all authors)
	UserID *int64
	// Cursor is the exclusive lower bound on post id (nil = from the start)
	Cursor *int64
}

// Page is one bounded, id-ordered slice of the post stream
// NextCursor is set only when HasMore is true, and is always the id of the last post
type Page struct {
	NextCursor *int64      `json:"nextCursor"`
	Posts      []*PostView `json:"posts"`
	HasMore    bool        `json:"hasMore"`
}

// LastID returns the id of the last post on the page, or 0 when the page is empty
func (p *Page) LastID() int64 {
	if p == nil || len(p.Posts) == 0 {
		return 0
	}
	return p.Posts[len(p.Posts)-1].ID
}

// ParseOptionalID parses a positive integer id from a query parameter.
// Empty, malformed and non-positive values all yield nil.
func ParseOptionalID(raw string) *int64 {
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
