package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"Postboard/internal/core/seed"
	"Postboard/internal/db"
)

type sqlSeedRepo struct {
	db     *sql.DB
	driver string
}

// NewSeedRepository creates a seed repository; driver selects dialect-specific steps
func NewSeedRepository(conn *sql.DB, driver string) seed.Repository {
	return &sqlSeedRepo{db: conn, driver: driver}
}

// Reset deletes every post, user and company (children first)
func (r *sqlSeedRepo) Reset(ctx context.Context) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"posts", "users", "companies"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("failed to clear %s: %w", table, err)
			}
		}
		return nil
	})
}

// Import inserts companies, users and posts in one transaction
// Flow: companies (dedupe by name) -> name->id map -> users (keep API ids) -> posts (keep API ids)
func (r *sqlSeedRepo) Import(ctx context.Context, data *seed.Dataset) (*seed.ImportStats, error) {
	stats := &seed.ImportStats{}

	err := r.withTx(ctx, func(tx *sql.Tx) error {
		for _, c := range data.Companies {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO companies (name, catch_phrase, bs)
				VALUES ($1, $2, $3)
				ON CONFLICT (name) DO NOTHING`,
				c.Name, c.CatchPhrase, c.BS)
			if err != nil {
				return fmt.Errorf("failed to insert company %q: %w", c.Name, err)
			}
			stats.Companies += affected(res)
		}

		companyIDs, err := loadCompanyIDs(ctx, tx)
		if err != nil {
			return err
		}

		for _, rec := range data.Users {
			u := rec.User
			var companyID sql.NullInt64
			if id, ok := companyIDs[rec.CompanyName]; ok {
				companyID = sql.NullInt64{Int64: id, Valid: true}
			}

			res, err := tx.ExecContext(ctx, `
				INSERT INTO users (
					id, name, username, email, phone, website,
					street, suite, city, zipcode, lat, lng, company_id
				) VALUES (
					$1, $2, $3, $4, $5, $6,
					$7, $8, $9, $10, $11, $12, $13
				)
				ON CONFLICT (id) DO NOTHING`,
				u.ID, u.Name, nullString(u.Username), nullString(u.Email), nullString(u.Phone), nullString(u.Website),
				nullString(u.Address.Street), nullString(u.Address.Suite), nullString(u.Address.City),
				nullString(u.Address.Zipcode), nullString(u.Address.Lat), nullString(u.Address.Lng), companyID,
			)
			if err != nil {
				return fmt.Errorf("failed to insert user %d: %w", u.ID, err)
			}
			stats.Users += affected(res)
		}

		for _, p := range data.Posts {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO posts (id, user_id, title, body)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO NOTHING`,
				p.ID, p.UserID, p.Title, p.Body)
			if err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("post %d references missing user %d", p.ID, p.UserID)
				}
				return fmt.Errorf("failed to insert post %d: %w", p.ID, err)
			}
			stats.Posts += affected(res)
		}

		// Explicit ids bypass BIGSERIAL; move the sequences past them
		if r.driver == db.DriverPostgres {
			for _, table := range []string{"companies", "users", "posts"} {
				_, err := tx.ExecContext(ctx, fmt.Sprintf(
					`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
					table))
				if err != nil {
					return fmt.Errorf("failed to advance %s id sequence: %w", table, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func loadCompanyIDs(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, name FROM companies`)
	if err != nil {
		return nil, fmt.Errorf("failed to load companies: %w", err)
	}
	defer closeRows(rows)

	ids := make(map[string]int64)
	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		ids[name] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}
	return ids, nil
}

func (r *sqlSeedRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Printf("ERROR: Failed to rollback seed transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func affected(res sql.Result) int {
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return int(n)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
