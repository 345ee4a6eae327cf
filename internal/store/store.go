package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

const currentTimeQuery = "SELECT NOW()"

// Store provides database-backed accessors for the status endpoints.
type Store struct {
	db *sql.DB
}

// New creates a Store using the provided sql.DB connection pool.
func New(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	return &Store{db: db}, nil
}

// CurrentTime borrows a single connection from the pool, reads the database
// server clock and hands the connection back, whatever the outcome.
// Failures are returned as *Error with KindQueryFailure.
func (s *Store) CurrentTime(ctx context.Context) (time.Time, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return time.Time{}, &Error{Kind: KindQueryFailure, Err: err}
	}
	defer conn.Close()

	var now time.Time
	if err := conn.QueryRowContext(ctx, currentTimeQuery).Scan(&now); err != nil {
		return time.Time{}, &Error{Kind: KindQueryFailure, Err: err}
	}
	return now, nil
}

// Close releases every pooled connection.
func (s *Store) Close() error {
	return s.db.Close()
}
