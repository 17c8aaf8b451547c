package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"MaizeReporter/internal/domain"
)

const (
	upsertSQL = "INSERT INTO daily_reports (id,created_at,payload) VALUES ($1,$2,$3) ON CONFLICT (id) DO UPDATE SET created_at = EXCLUDED.created_at, payload = EXCLUDED.payload"
	pruneSQL  = "DELETE FROM daily_reports WHERE created_at < $1"
)

func testRepository() *PostgresRepository {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewPostgresRepository("postgres://ignored", 30*24*time.Hour, logger)
}

func testReport(createdAt time.Time) domain.Report {
	return domain.Report{
		ID:        createdAt.Format("20060102_150405"),
		CreatedAt: createdAt,
		Date:      createdAt.Format("2006-01-02"),
	}
}

func expectSchema(mock sqlmock.Sqlmock) {
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS daily_reports")).
		WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestSaveUpsertsAndPrunes(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, time.February, 11, 6, 0, 0, 0, time.UTC)
	rep := testReport(createdAt)
	r := testRepository()

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs(rep.ID, rep.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(pruneSQL)).
		WithArgs(createdAt.Add(-30 * 24 * time.Hour)).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := r.saveWith(context.Background(), db, rep); err != nil {
		t.Fatalf("saveWith returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestSaveIsIdempotent(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	createdAt := time.Date(2026, time.February, 11, 6, 0, 0, 0, time.UTC)
	rep := testReport(createdAt)
	r := testRepository()

	// Same report persisted twice: both writes target the same id, the second
	// replaces the first.
	for i := 0; i < 2; i++ {
		expectSchema(mock)
		mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
			WithArgs(rep.ID, rep.CreatedAt, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(pruneSQL)).
			WithArgs(createdAt.Add(-30 * 24 * time.Hour)).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	for i := 0; i < 2; i++ {
		if err := r.saveWith(context.Background(), db, rep); err != nil {
			t.Fatalf("saveWith attempt %d returned error: %v", i+1, err)
		}
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestSavePruneFailureDoesNotFailUpsert(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	rep := testReport(time.Date(2026, time.February, 11, 6, 0, 0, 0, time.UTC))
	r := testRepository()

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WithArgs(rep.ID, rep.CreatedAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(pruneSQL)).
		WillReturnError(errors.New("prune boom"))

	if err := r.saveWith(context.Background(), db, rep); err != nil {
		t.Fatalf("expected prune failure to be swallowed, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unfulfilled expectations: %v", err)
	}
}

func TestSaveUpsertErrorReturned(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("open sqlmock: %v", err)
	}
	defer db.Close()

	rep := testReport(time.Date(2026, time.February, 11, 6, 0, 0, 0, time.UTC))
	r := testRepository()

	expectSchema(mock)
	mock.ExpectExec(regexp.QuoteMeta(upsertSQL)).
		WillReturnError(errors.New("connection reset"))

	if err := r.saveWith(context.Background(), db, rep); err == nil {
		t.Fatal("expected upsert error, got nil")
	}
}

func TestSaveMisconfiguredDSN(t *testing.T) {
	t.Parallel()

	r := NewPostgresRepository("", time.Hour, nil)
	if err := r.Save(context.Background(), testReport(time.Now())); err == nil {
		t.Fatal("expected misconfiguration error, got nil")
	}
}
