package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"MaizeReporter/internal/domain"
	"MaizeReporter/internal/ports"
)

const reportsTable = "daily_reports"

const schemaDDL = `CREATE TABLE IF NOT EXISTS daily_reports (
	id         TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL,
	payload    JSONB NOT NULL
)`

// PostgresRepository persists report documents into Postgres. The connection
// is opened and closed inside each Save call; nothing is held across runs.
type PostgresRepository struct {
	dsn       string
	retention time.Duration
	logger    *slog.Logger
}

var _ ports.ReportStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires the connection string and retention window.
func NewPostgresRepository(dsn string, retention time.Duration, logger *slog.Logger) *PostgresRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRepository{dsn: dsn, retention: retention, logger: logger}
}

// Save upserts the report by id and then prunes documents older than the
// retention window. A prune failure is logged, never returned; the upsert
// stands on its own.
func (r *PostgresRepository) Save(ctx context.Context, report domain.Report) error {
	if r.dsn == "" {
		return fmt.Errorf("report store misconfigured: empty DSN")
	}

	db, err := sql.Open("postgres", r.dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	return r.saveWith(ctx, db, report)
}

func (r *PostgresRepository) saveWith(ctx context.Context, db *sql.DB, report domain.Report) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	// Insert-or-replace by id: a same-second report overwrites its predecessor.
	query, args, err := sq.Insert(reportsTable).
		Columns("id", "created_at", "payload").
		Values(report.ID, report.CreatedAt, payload).
		Suffix("ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at, payload = EXCLUDED.payload").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert report %s: %w", report.ID, err)
	}

	cutoff := report.CreatedAt.Add(-r.retention)
	if err := r.pruneWith(ctx, db, cutoff); err != nil {
		r.logger.Warn("prune failed, upsert retained", "cutoff", cutoff, "error", err)
	}

	return nil
}

func (r *PostgresRepository) pruneWith(ctx context.Context, db *sql.DB, cutoff time.Time) error {
	query, args, err := sq.Delete(reportsTable).
		Where(sq.Lt{"created_at": cutoff}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build prune: %w", err)
	}

	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune reports: %w", err)
	}

	return nil
}
