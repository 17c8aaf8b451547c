package ports

import (
	"context"
	"time"

	"MaizeReporter/internal/domain"
)

// NarrativeSource fetches free-form market commentary from the live-search
// collaborator. A failure means "no narrative", never a pipeline failure.
type NarrativeSource interface {
	FetchNarrative(ctx context.Context, day time.Time) (string, error)
}

// ReportStore persists reports keyed by their id and enforces the rolling
// retention window.
type ReportStore interface {
	Save(ctx context.Context, report domain.Report) error
}

// Notifier delivers a rendered report message to the fixed recipient channel.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Scheduler controls when report runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
