package main

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savetree-1/maritime-weather-intelligence/internal/config"
)

func mockConfig(t *testing.T, dsn string, expect func(sqlmock.Sqlmock)) (config.Config, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	expect(mock)

	return config.Config{
		DatabaseDriver: "sqlmock",
		DatabaseURL:    dsn,
		DatabaseName:   "maritime_weather",
		ConnectTimeout: time.Second,
	}, mock
}

func TestRunReachable(t *testing.T) {
	cfg, mock := mockConfig(t, "dbcheck_reachable", func(m sqlmock.Sqlmock) {
		m.ExpectPing()
		m.ExpectQuery(regexp.QuoteMeta("SELECT NOW()")).WillReturnRows(
			sqlmock.NewRows([]string{"now"}).AddRow(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		m.ExpectClose()
	})

	var out bytes.Buffer
	code := run(context.Background(), cfg, &out)

	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"status":"Backend running","db_time":"2024-01-01 00:00:00"}`, out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMissingDatabase(t *testing.T) {
	cfg, mock := mockConfig(t, "dbcheck_missing", func(m sqlmock.Sqlmock) {
		m.ExpectPing().WillReturnError(&pq.Error{Code: "3D000"})
		m.ExpectClose()
	})

	var out bytes.Buffer
	code := run(context.Background(), cfg, &out)

	assert.Equal(t, 1, code)
	assert.JSONEq(t,
		`{"status":"error","detail":"Database 'maritime_weather' does not exist. Please create the database and try again."}`,
		out.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunUnknownDriver(t *testing.T) {
	cfg := config.Config{
		DatabaseDriver: "unknown",
		DatabaseURL:    "postgres://postgres@localhost:5432/maritime_weather",
		DatabaseName:   "maritime_weather",
		ConnectTimeout: time.Second,
	}

	var out bytes.Buffer
	code := run(context.Background(), cfg, &out)

	assert.Equal(t, 1, code)
	assert.Contains(t, out.String(), `"status": "error"`)
	assert.Contains(t, out.String(), `unknown driver`)
	assert.NotContains(t, out.String(), "db_time")
}
