package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"Postboard/internal/core/users"
)

type sqlUserRepo struct {
	db DBTX
}

// NewUserRepository creates a new SQL user repository
func NewUserRepository(db DBTX) users.UserRepository {
	return &sqlUserRepo{db: db}
}

const userColumns = `id, name, username, email, phone, website,
	street, suite, city, zipcode, lat, lng, company_id`

// GetByID retrieves a user by id
func (r *sqlUserRepo) GetByID(ctx context.Context, id int64) (*users.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, users.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// Search finds users whose name or username contains query, case-insensitively
func (r *sqlUserRepo) Search(ctx context.Context, query string, limit int) ([]*users.User, error) {
	if limit <= 0 {
		limit = users.SearchLimit
	}

	var (
		sqlQuery string
		args     []interface{}
	)
	if query == "" {
		sqlQuery = `SELECT ` + userColumns + ` FROM users ORDER BY name ASC, id ASC LIMIT $1`
		args = []interface{}{limit}
	} else {
		sqlQuery = `
			SELECT ` + userColumns + `
			FROM users
			WHERE LOWER(name) LIKE $1 ESCAPE '\'
			   OR LOWER(COALESCE(username, '')) LIKE $1 ESCAPE '\'
			ORDER BY name ASC, id ASC
			LIMIT $2`
		args = []interface{}{likePattern(query), limit}
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer closeRows(rows)

	result := []*users.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		result = append(result, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users results: %w", err)
	}
	return result, nil
}

func scanUser(row rowScanner) (*users.User, error) {
	var (
		user                                   users.User
		username, email, phone, website        sql.NullString
		street, suite, city, zipcode, lat, lng sql.NullString
		companyID                              sql.NullInt64
	)

	err := row.Scan(
		&user.ID, &user.Name, &username, &email, &phone, &website,
		&street, &suite, &city, &zipcode, &lat, &lng, &companyID,
	)
	if err != nil {
		return nil, err
	}

	user.Username = username.String
	user.Email = email.String
	user.Phone = phone.String
	user.Website = website.String
	user.Address = users.Address{
		Street:  street.String,
		Suite:   suite.String,
		City:    city.String,
		Zipcode: zipcode.String,
		Lat:     lat.String,
		Lng:     lng.String,
	}
	if companyID.Valid {
		id := companyID.Int64
		user.CompanyID = &id
	}
	return &user, nil
}
