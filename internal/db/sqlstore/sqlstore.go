// Package sqlstore implements the core repositories on database/sql.
// Queries use $n placeholders and portable SQL so the same code runs on
// Postgres (lib/pq) in production and SQLite (modernc) in development and tests.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strings"

	"github.com/lib/pq"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Postgres SQLSTATE for foreign key violations
const pqForeignKeyViolation = "23503"

// isForeignKeyViolation recognises FK failures from either driver
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pqForeignKeyViolation
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		log.Printf("WARN: failed to close rows: %v", err)
	}
}

// likePattern builds a case-insensitive substring pattern, escaping LIKE wildcards
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(query))
	return "%" + escaped + "%"
}
