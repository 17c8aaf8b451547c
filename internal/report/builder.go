package report

import (
	"time"

	"MaizeReporter/internal/config"
	"MaizeReporter/internal/domain"
	"MaizeReporter/internal/forecast"
)

const (
	reportVersion = "2.0"
	fetchMethod   = "perplexity_sonar_pro"
)

// Builder assembles reports from injected content tables. Assembly is total:
// an absent narrative still yields a complete, valid report.
type Builder struct {
	content config.ReportContent
	loc     *time.Location
	now     func() time.Time
}

// NewBuilder wires the content tables and the reporting timezone.
func NewBuilder(content config.ReportContent, loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{content: content, loc: loc, now: time.Now}
}

// Build composes the report for the current instant. narrative is nil when the
// live-search collaborator failed; the report is still built with the field
// absent.
func (b *Builder) Build(narrative *string) domain.Report {
	created := b.now().In(b.loc)

	return domain.Report{
		ID:              created.Format("20060102_150405"),
		CreatedAt:       created,
		Date:            created.Format("2006-01-02"),
		Time:            created.Format("15:04:05"),
		DayOfWeek:       created.Format("Monday"),
		Prices:          b.content.Prices,
		LiveNarrative:   narrative,
		NewsItems:       b.content.NewsItems,
		Sentiment:       b.content.Sentiment,
		Forecast:        forecast.Generate(b.content.BasePrice, b.content.ForecastDeltas, created),
		Recommendations: b.content.Recommendations,
		Factors:         b.content.Factors,
		Sources:         b.content.Sources,
		Metadata: domain.Metadata{
			ReportVersion: reportVersion,
			Automation:    "maizereporter",
			FetchMethod:   fetchMethod,
			Runtime:       "go",
		},
	}
}
