package usecase

import (
	"context"
	"log/slog"
	"time"

	"MaizeReporter/internal/ports"
	"MaizeReporter/internal/report"
)

// Summary captures the per-step outcome of one report run. Collaborator
// failures surface here as booleans, never as raised errors.
type Summary struct {
	FetchOK  bool
	StoreOK  bool
	NotifyOK bool
}

// Overall reports run success. A missing narrative alone is a degraded but
// successful run; persist and notify must both succeed.
func (s Summary) Overall() bool {
	return s.StoreOK && s.NotifyOK
}

// PipelineDeps wires all collaborators into the report pipeline.
type PipelineDeps struct {
	Source   ports.NarrativeSource
	Builder  *report.Builder
	Store    ports.ReportStore
	Notifier ports.Notifier
	Logger   *slog.Logger
}

// Pipeline implements the daily report workflow: fetch narrative, build,
// persist, deliver. Steps are independent; one failing never aborts the rest.
type Pipeline struct {
	source   ports.NarrativeSource
	builder  *report.Builder
	store    ports.ReportStore
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		source:   deps.Source,
		builder:  deps.Builder,
		store:    deps.Store,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

// Run executes one report cycle for the given day and returns the per-step
// summary.
func (p *Pipeline) Run(ctx context.Context, day time.Time) Summary {
	var summary Summary

	var narrative *string
	if p.source == nil {
		p.logger.Warn("narrative source not configured, building without live data")
	} else if text, err := p.source.FetchNarrative(ctx, day); err != nil {
		p.logger.Warn("live narrative unavailable, falling back", "error", err)
	} else {
		narrative = &text
		summary.FetchOK = true
	}

	rep := p.builder.Build(narrative)

	if p.store == nil {
		p.logger.Error("report store not configured")
	} else if err := p.store.Save(ctx, rep); err != nil {
		p.logger.Error("persist report", "id", rep.ID, "error", err)
	} else {
		summary.StoreOK = true
		p.logger.Info("report persisted", "id", rep.ID)
	}

	if p.notifier == nil {
		p.logger.Error("notifier not configured")
	} else if err := p.notifier.Send(ctx, report.RenderMessage(rep)); err != nil {
		p.logger.Error("send report message", "id", rep.ID, "error", err)
	} else {
		summary.NotifyOK = true
		p.logger.Info("report message sent", "id", rep.ID)
	}

	p.logger.Info("execution summary",
		"fetch", outcome(summary.FetchOK, "Fallback"),
		"store", outcome(summary.StoreOK, "Failed"),
		"notify", outcome(summary.NotifyOK, "Failed"))

	return summary
}

func outcome(ok bool, failLabel string) string {
	if ok {
		return "Success"
	}
	return failLabel
}
