package report

import (
	"testing"
	"time"

	"MaizeReporter/internal/config"
	"MaizeReporter/internal/domain"
)

func testContent() config.ReportContent {
	return config.ReportContent{
		BasePrice:      2100,
		ForecastDeltas: []int{-10, 5, 0},
		Prices: domain.PriceSnapshot{
			Locations: []domain.LocationPrice{
				{Name: "bihar_avg", Label: "Bihar", Price: 2100},
				{Name: "purnea", Label: "Purnea", Price: 2080},
			},
			Unit: "INR/quintal",
		},
		NewsItems: []domain.NewsItem{
			{ID: 1, Title: "Export Quota Raised", Date: "2026-03-01", Category: "All India", Impact: domain.ImpactUp, Severity: domain.SeverityLow, Explanation: "Export badhne se demand strong rahegi.", PriceEffect: 40},
		},
		Sentiment: domain.Sentiment{Overall: "neutral", Strength: "weak", Confidence: 55, Direction: "stable", Emoji: "🟡"},
		Recommendations: domain.Recommendations{
			Buyers:  domain.Advice{Action: "buy", ActionLocal: "ABHI LE LO", Reason: "Prices stable", TargetPrice: 2050, TargetDate: "2026-03-15"},
			Sellers: domain.Advice{Action: "hold", ActionLocal: "ROKO", Reason: "Wait for better rates"},
		},
		Factors: domain.Factors{Bearish: []string{"Fresh arrivals"}, Bullish: []string{"Exports"}, Neutral: []string{"Weather normal"}},
		Sources: []string{"Test Source"},
	}
}

func fixedBuilder(t *testing.T, instant time.Time) *Builder {
	t.Helper()
	b := NewBuilder(testContent(), time.UTC)
	b.now = func() time.Time { return instant }
	return b
}

func TestBuildWithNarrative(t *testing.T) {
	t.Parallel()

	instant := time.Date(2026, time.March, 2, 6, 30, 15, 0, time.UTC)
	b := fixedBuilder(t, instant)

	narrative := "Mandi prices firm aaj."
	rep := b.Build(&narrative)

	if rep.ID != "20260302_063015" {
		t.Fatalf("unexpected id: %s", rep.ID)
	}
	if !rep.CreatedAt.Equal(instant) {
		t.Fatalf("unexpected created_at: %v", rep.CreatedAt)
	}
	if rep.Date != "2026-03-02" || rep.Time != "06:30:15" || rep.DayOfWeek != "Monday" {
		t.Fatalf("unexpected date fields: %s %s %s", rep.Date, rep.Time, rep.DayOfWeek)
	}
	if rep.LiveNarrative == nil || *rep.LiveNarrative != narrative {
		t.Fatalf("narrative not carried: %v", rep.LiveNarrative)
	}
	if len(rep.Forecast) != 3 {
		t.Fatalf("expected 3 forecast points, got %d", len(rep.Forecast))
	}
	if rep.Forecast[0].Price != 2090 {
		t.Fatalf("expected day-1 price 2090, got %d", rep.Forecast[0].Price)
	}
	if rep.Sentiment.Overall != "neutral" {
		t.Fatalf("unexpected sentiment: %s", rep.Sentiment.Overall)
	}
	if rep.Metadata.ReportVersion != "2.0" || rep.Metadata.Runtime != "go" {
		t.Fatalf("unexpected metadata: %+v", rep.Metadata)
	}
}

func TestBuildWithoutNarrative(t *testing.T) {
	t.Parallel()

	b := fixedBuilder(t, time.Date(2026, time.March, 2, 6, 30, 15, 0, time.UTC))

	rep := b.Build(nil)

	if rep.LiveNarrative != nil {
		t.Fatalf("expected nil narrative, got %v", *rep.LiveNarrative)
	}
	if len(rep.Prices.Locations) == 0 || len(rep.NewsItems) == 0 || len(rep.Forecast) == 0 {
		t.Fatal("mandatory fields missing on degraded build")
	}
	if len(rep.Sources) == 0 || rep.Recommendations.Buyers.Action == "" {
		t.Fatal("mandatory fields missing on degraded build")
	}
}

func TestBuildWithEmptyNarrative(t *testing.T) {
	t.Parallel()

	b := fixedBuilder(t, time.Date(2026, time.March, 2, 6, 30, 15, 0, time.UTC))

	empty := ""
	rep := b.Build(&empty)

	if rep.LiveNarrative == nil || *rep.LiveNarrative != "" {
		t.Fatalf("expected empty narrative preserved, got %v", rep.LiveNarrative)
	}
}

func TestBuildNewsIDsUnique(t *testing.T) {
	t.Parallel()

	b := fixedBuilder(t, time.Date(2026, time.March, 2, 6, 30, 15, 0, time.UTC))
	rep := b.Build(nil)

	seen := map[int]bool{}
	for _, item := range rep.NewsItems {
		if seen[item.ID] {
			t.Fatalf("duplicate news id %d", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestBuildUsesReportingTimezone(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("IST", 5*3600+1800)
	b := NewBuilder(testContent(), loc)
	b.now = func() time.Time { return time.Date(2026, time.March, 2, 0, 30, 0, 0, time.UTC) }

	rep := b.Build(nil)

	if rep.Time != "06:00:00" {
		t.Fatalf("expected IST wall clock 06:00:00, got %s", rep.Time)
	}
	if rep.ID != "20260302_060000" {
		t.Fatalf("expected timezone-local id, got %s", rep.ID)
	}
}
