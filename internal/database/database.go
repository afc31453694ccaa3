// SteamLens - Steam Analytics and Recommendation API
// Copyright 2026 SteamLens contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/steamlens/steamlens

package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/steamlens/steamlens/internal/config"
	"github.com/steamlens/steamlens/internal/logging"
	"github.com/steamlens/steamlens/internal/metrics"
)

// snapshotLoadTimeout bounds the initial parquet load. Snapshots are modest
// (tens of MB) so anything slower indicates a broken file or filesystem.
const snapshotLoadTimeout = 2 * time.Minute

// snapshotTable pairs a DuckDB table with the SELECT projection used to load
// it from parquet. Projecting explicit columns (rather than *) makes a
// snapshot with missing or renamed columns fail at load time instead of at
// query time.
type snapshotTable struct {
	name    string
	columns string
}

var snapshotTables = []snapshotTable{
	{"reviews", "user_id, recommend, review_date, release_year, sentiment"},
	{"user_spend", "user_id, total_spent, items_count"},
	{"genre_ranking", "genre, rank"},
	{"playtime", "user_id, user_url, genre, hours"},
	{"developer_items", "developer, item_id, release_year, price"},
	{"item_similarity", "game_a, game_b, score"},
	{"user_similarity", "user_a, user_b, score"},
	{"rating_matrix", "game, user_id, rating"},
}

// DB wraps the DuckDB connection and provides the analytics query methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DataConfig
}

// New opens an in-memory DuckDB database and loads every snapshot into it.
// Any load failure is returned to the caller, which is expected to abort
// startup: serving with a partial dataset would silently return wrong answers.
func New(cfg *config.DataConfig) (*DB, error) {
	db, err := open(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), snapshotLoadTimeout)
	defer cancel()

	if err := db.loadSnapshots(ctx); err != nil {
		closeQuietly(db.conn)
		return nil, err
	}

	return db, nil
}

// open establishes the DuckDB connection without loading any data.
func open(cfg *config.DataConfig) (*DB, error) {
	numThreads := cfg.Threads
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}

	// Auto-install/auto-load of extensions is disabled to prevent hangs in
	// restricted network environments; reading local parquet needs neither.
	connStr := fmt.Sprintf(":memory:?threads=%d&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		numThreads, maxMemory)

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{conn: conn, cfg: cfg}, nil
}

// loadSnapshots materializes every parquet snapshot as a table. The tables
// keep parquet row order (DuckDB preserves insertion order by default), which
// the matrix loaders rely on for deterministic tie-breaking.
func (db *DB) loadSnapshots(ctx context.Context) error {
	for _, tbl := range snapshotTables {
		path := db.cfg.SnapshotPath(db.snapshotFile(tbl.name))
		start := time.Now()

		query := fmt.Sprintf("CREATE TABLE %s AS SELECT %s FROM read_parquet(?)", tbl.name, tbl.columns)
		if _, err := db.conn.ExecContext(ctx, query, path); err != nil {
			return fmt.Errorf("failed to load snapshot %s from %s: %w", tbl.name, path, err)
		}

		var rows int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", tbl.name) //nolint:gosec // table names come from the static snapshotTables list
		if err := db.conn.QueryRowContext(ctx, countQuery).Scan(&rows); err != nil {
			return fmt.Errorf("failed to count snapshot %s: %w", tbl.name, err)
		}

		metrics.SnapshotRows.WithLabelValues(tbl.name).Set(float64(rows))
		logging.Info().
			Str("table", tbl.name).
			Str("file", path).
			Int64("rows", rows).
			Dur("elapsed", time.Since(start)).
			Msg("Snapshot loaded")
	}
	return nil
}

// snapshotFile maps a table name to its configured file name.
func (db *DB) snapshotFile(table string) string {
	s := db.cfg.Snapshots
	switch table {
	case "reviews":
		return s.Reviews
	case "user_spend":
		return s.UserSpend
	case "genre_ranking":
		return s.GenreRanking
	case "playtime":
		return s.Playtime
	case "developer_items":
		return s.DeveloperItems
	case "item_similarity":
		return s.ItemSimilarity
	case "user_similarity":
		return s.UserSimilarity
	case "rating_matrix":
		return s.RatingMatrix
	default:
		return table + ".parquet"
	}
}

// Ping verifies the connection is still alive. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close releases the DuckDB connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// queryRow runs a single-row query with metric instrumentation.
func (db *DB) queryRow(ctx context.Context, name, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := db.conn.QueryRowContext(ctx, query, args...)
	metrics.DuckDBQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	return row
}

// queryRows runs a multi-row query with metric instrumentation. The caller
// owns the returned rows and must close them.
func (db *DB) queryRows(ctx context.Context, name, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.DuckDBQueryDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DuckDBQueryErrors.WithLabelValues(name).Inc()
	}
	return rows, err
}

// roundPct rounds a percentage to two decimals. All percentage values leave
// the query engine already rounded so handlers never re-round.
func roundPct(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
