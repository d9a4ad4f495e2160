package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/katalvlaran/stringnet/estimator"
	"github.com/katalvlaran/stringnet/lattice"
	"github.com/katalvlaran/stringnet/store/sqlite/migrations"
)

var (
	// ErrPathRequired is returned by Open for an empty path.
	ErrPathRequired = errors.New("sqlite: storage path is required")

	// ErrNotConfigured is returned by methods called on a nil or closed store.
	ErrNotConfigured = errors.New("sqlite: store is not configured")

	// ErrRunExists is returned by BeginRun for a duplicate run id.
	ErrRunExists = errors.New("sqlite: run already exists")

	// ErrRunNotFound is returned when a run id is unknown.
	ErrRunNotFound = errors.New("sqlite: run not found")
)

// Run statuses.
const (
	StatusRunning  = "running"
	StatusFinished = "finished"
	StatusFailed   = "failed"
)

// Run is the stored metadata of one simulation run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Lx, Ly     int
	Tuning     float64
	UpdateKind string
	Initial    string
	Seed       int64
	Status     string
	Proposed   uint64
	Accepted   uint64
	Error      string
}

// Store is a SQLite results database.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (creating if needed) the database at path and applies the
// embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}

	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return ErrNotConfigured
	}

	return nil
}

// BeginRun records a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, r Run) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("begin run: run id is required")
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO runs (id, started_at, lx, ly, tuning, update_kind, initial, seed, status)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, toMillis(r.StartedAt), r.Lx, r.Ly, r.Tuning, r.UpdateKind, r.Initial, r.Seed, StatusRunning,
	)
	if isConstraintError(err) {
		return fmt.Errorf("%s: %w", r.ID, ErrRunExists)
	}
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}

	return nil
}

// FinishRun marks a run finished, or failed when runErr is non-nil, and
// stores its move counts.
func (s *Store) FinishRun(ctx context.Context, id string, proposed, accepted uint64, runErr error) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	status, msg := StatusFinished, ""
	if runErr != nil {
		status, msg = StatusFailed, runErr.Error()
	}
	res, err := s.sqlDB.ExecContext(ctx, `
UPDATE runs SET finished_at = ?, status = ?, proposed = ?, accepted = ?, error = ?
WHERE id = ?`,
		toMillis(time.Now()), status, int64(proposed), int64(accepted), msg, id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}

	return nil
}

// GetRun loads the metadata of one run.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	if err := s.ready(ctx); err != nil {
		return Run{}, err
	}
	var (
		r        Run
		started  int64
		finished sql.NullInt64
		proposed int64
		accepted int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT id, started_at, finished_at, lx, ly, tuning, update_kind, initial, seed, status, proposed, accepted, error
FROM runs WHERE id = ?`, id).Scan(
		&r.ID, &started, &finished, &r.Lx, &r.Ly, &r.Tuning, &r.UpdateKind, &r.Initial, &r.Seed,
		&r.Status, &proposed, &accepted, &r.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	r.StartedAt = fromMillis(started)
	if finished.Valid {
		r.FinishedAt = fromMillis(finished.Int64)
	}
	r.Proposed, r.Accepted = uint64(proposed), uint64(accepted)

	return r, nil
}

// Sink returns an estimator.Sink writing results for run id.
func (s *Store) Sink(id string) estimator.Sink {
	return &runSink{store: s, runID: id}
}

type runSink struct {
	store *Store
	runID string
}

// Write stores all records of one bin in a single transaction.
func (r *runSink) Write(ctx context.Context, recs []estimator.Record) (err error) {
	if err := r.store.ready(ctx); err != nil {
		return err
	}
	tx, err := r.store.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO results (run_id, estimator, series, bin, site_x, site_y, name, value)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare results insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		var x, y sql.NullInt64
		if rec.Site != nil {
			x = sql.NullInt64{Int64: int64(rec.Site.X), Valid: true}
			y = sql.NullInt64{Int64: int64(rec.Site.Y), Valid: true}
		}
		for _, v := range rec.Values {
			if _, err = stmt.ExecContext(ctx, r.runID, rec.Estimator, rec.Series, rec.Bin, x, y, v.Name, v.Value); err != nil {
				return fmt.Errorf("insert result %s/%s bin %d: %w", rec.Estimator, v.Name, rec.Bin, err)
			}
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}

	return nil
}

// Results loads the records of one estimator of a run, in insertion order.
func (s *Store) Results(ctx context.Context, runID, name string) ([]estimator.Record, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT series, bin, site_x, site_y, name, value FROM results
WHERE run_id = ? AND estimator = ?
ORDER BY id`, runID, name)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	type key struct {
		series string
		bin    int
		site   lattice.Point
		hasXY  bool
	}
	var (
		out   []estimator.Record
		index = make(map[key]int)
	)
	for rows.Next() {
		var (
			k    key
			x, y sql.NullInt64
			v    estimator.Value
		)
		if err := rows.Scan(&k.series, &k.bin, &x, &y, &v.Name, &v.Value); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if x.Valid && y.Valid {
			k.site, k.hasXY = lattice.Point{X: int(x.Int64), Y: int(y.Int64)}, true
		}
		i, ok := index[k]
		if !ok {
			rec := estimator.Record{Estimator: name, Series: k.series, Bin: k.bin}
			if k.hasXY {
				site := k.site
				rec.Site = &site
			}
			out = append(out, rec)
			i = len(out) - 1
			index[k] = i
		}
		out[i].Values = append(out[i].Values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return out, nil
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func isConstraintError(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}

	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ estimator.Sink = (*runSink)(nil)
