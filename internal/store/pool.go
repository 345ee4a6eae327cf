package store

import (
	"context"
	"database/sql"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"

	"github.com/savetree-1/maritime-weather-intelligence/internal/logging"
)

const defaultConnMaxLifetime = 30 * time.Minute

// Options describe how the startup connection attempt is made.
type Options struct {
	// Driver is the database/sql driver name ("postgres" or "pgx").
	Driver string
	DSN    string
	// Database names the target database in diagnostics.
	Database       string
	ConnectTimeout time.Duration
	MaxOpenConns   int
	MaxIdleConns   int
}

// Pool is the process-wide database handle. Its state is decided exactly once
// by Connect: either a usable Store is present or the startup failure is
// recorded. It is never reconnected; a failed pool stays failed until the
// process restarts.
type Pool struct {
	store *Store
	err   *Error

	closeOnce sync.Once
	closeErr  error
}

// Connect opens the pool and verifies it with a ping bounded by
// opts.ConnectTimeout. It never fails the caller: on error the returned Pool
// is absent and reports the classified failure on every use.
func Connect(ctx context.Context, opts Options) *Pool {
	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return absent(classifyConnectError(err, opts.Database), opts)
	}
	return connectDB(ctx, db, opts)
}

func connectDB(ctx context.Context, db *sql.DB, opts Options) *Pool {
	configureDB(db, opts)

	if opts.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return absent(classifyConnectError(err, opts.Database), opts)
	}

	logging.WithComponentAndFields("store", log.Fields{
		"driver":         opts.Driver,
		"database":       opts.Database,
		"max_open_conns": opts.MaxOpenConns,
	}).Info("database pool ready")

	return &Pool{store: &Store{db: db}}
}

func absent(err *Error, opts Options) *Pool {
	logger := logging.WithComponentAndFields("store", log.Fields{
		"driver":   opts.Driver,
		"database": opts.Database,
		"kind":     err.Kind.String(),
	})
	if err.Kind == KindDatabaseMissing {
		logger.Error(err.Error())
	} else {
		logger.WithError(err.Err).Error("database connection failed")
	}
	return &Pool{err: err}
}

func configureDB(db *sql.DB, opts Options) {
	db.SetConnMaxLifetime(defaultConnMaxLifetime)
	if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		db.SetMaxIdleConns(opts.MaxIdleConns)
	}
}

// Available reports whether the startup connection succeeded.
func (p *Pool) Available() bool {
	return p.store != nil
}

// Err returns the startup failure, or nil when the pool is present.
func (p *Pool) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// CurrentTime reads the database server clock. When the pool is absent the
// startup failure is returned without touching the database.
func (p *Pool) CurrentTime(ctx context.Context) (time.Time, error) {
	if p.store == nil {
		return time.Time{}, p.Err()
	}
	return p.store.CurrentTime(ctx)
}

// Collector exposes connection pool statistics, or nil when the pool is absent.
func (p *Pool) Collector() prometheus.Collector {
	if p.store == nil {
		return nil
	}
	return collectors.NewDBStatsCollector(p.store.db, "primary")
}

// Close releases all pooled connections. It is a no-op when the pool is
// absent and safe to call more than once.
func (p *Pool) Close() error {
	if p == nil || p.store == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		p.closeErr = p.store.Close()
		logging.WithComponent("store").Info("database pool closed")
	})
	return p.closeErr
}
