package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"Postboard/internal/core/posts"
)

type sqlPostRepo struct {
	db DBTX
}

// NewPostRepository creates a new SQL post repository
func NewPostRepository(db DBTX) posts.Repository {
	return &sqlPostRepo{db: db}
}

// ListPage retrieves posts joined with author name using keyset pagination on id
// Ordering is id ASC; the cursor is exclusive (id > cursor)
func (r *sqlPostRepo) ListPage(ctx context.Context, userID, cursor *int64, limit int) ([]*posts.PostView, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("invalid page limit %d", limit)
	}

	var whereConditions []string
	var args []interface{}
	paramIndex := 1

	if userID != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("p.user_id = $%d", paramIndex))
		args = append(args, *userID)
		paramIndex++
	}

	if cursor != nil {
		whereConditions = append(whereConditions, fmt.Sprintf("p.id > $%d", paramIndex))
		args = append(args, *cursor)
		paramIndex++
	}

	whereClause := ""
	if len(whereConditions) > 0 {
		whereClause = "WHERE " + strings.Join(whereConditions, " AND ")
	}

	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT p.id, p.user_id, p.title, p.body, u.name
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		%s
		ORDER BY p.id ASC
		LIMIT $%d
	`, whereClause, paramIndex)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer closeRows(rows)

	var result []*posts.PostView
	for rows.Next() {
		view, err := scanPostView(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		result = append(result, view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts results: %w", err)
	}

	return result, nil
}

// GetByID retrieves a post view by id
func (r *sqlPostRepo) GetByID(ctx context.Context, id int64) (*posts.PostView, error) {
	query := `
		SELECT p.id, p.user_id, p.title, p.body, u.name
		FROM posts p
		INNER JOIN users u ON p.user_id = u.id
		WHERE p.id = $1
	`

	view, err := scanPostView(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, posts.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return view, nil
}

// Delete removes a post by id. The author row is never touched.
func (r *sqlPostRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return posts.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPostView(row rowScanner) (*posts.PostView, error) {
	var (
		view       posts.PostView
		authorName string
	)
	if err := row.Scan(&view.ID, &view.UserID, &view.Title, &view.Body, &authorName); err != nil {
		return nil, err
	}
	view.User = &posts.AuthorRef{Name: authorName}
	return &view, nil
}
