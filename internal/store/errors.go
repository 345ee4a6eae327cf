package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Kind classifies database failures reported by the store.
type Kind int

const (
	// KindUnknown is reported for errors the store did not produce.
	KindUnknown Kind = iota
	// KindDatabaseMissing means the configured database does not exist on the
	// server. Detected at startup and permanent for the process lifetime.
	KindDatabaseMissing
	// KindConnectionFailure covers every other startup connectivity fault.
	KindConnectionFailure
	// KindQueryFailure is a request-time fault on an established pool.
	KindQueryFailure
)

// sqlStateInvalidCatalogName is reported by Postgres when the requested
// database does not exist.
const sqlStateInvalidCatalogName = "3D000"

func (k Kind) String() string {
	switch k {
	case KindDatabaseMissing:
		return "database_missing"
	case KindConnectionFailure:
		return "connection_failure"
	case KindQueryFailure:
		return "query_failure"
	default:
		return "unknown"
	}
}

// Error is a classified store failure. Its message is safe to hand back to
// API callers.
type Error struct {
	Kind     Kind
	Database string
	Err      error
}

func (e *Error) Error() string {
	if e.Kind == KindDatabaseMissing {
		return MissingDatabaseMessage(e.Database)
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the classification of err, or KindUnknown when err was not
// produced by this package.
func KindOf(err error) Kind {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return KindUnknown
}

// MissingDatabaseMessage is the diagnostic reported when the configured
// database does not exist.
func MissingDatabaseMessage(database string) string {
	if database == "" {
		return "Database does not exist. Please create the database and try again."
	}
	return fmt.Sprintf("Database '%s' does not exist. Please create the database and try again.", database)
}

// classifyConnectError maps a startup failure onto DatabaseMissing or
// ConnectionFailure.
func classifyConnectError(err error, database string) *Error {
	if sqlState(err) == sqlStateInvalidCatalogName {
		return &Error{Kind: KindDatabaseMissing, Database: database, Err: err}
	}
	return &Error{Kind: KindConnectionFailure, Database: database, Err: err}
}

// sqlState extracts the SQLSTATE code from lib/pq and pgx errors.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
