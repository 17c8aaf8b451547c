package report

import (
	"fmt"
	"strings"

	"MaizeReporter/internal/domain"
)

const sectionDivider = "━━━━━━━━━━━━━━━━━"

// RenderMessage formats a report into the WhatsApp delivery text. Pure and
// total: it only reads always-present structured fields, so an absent
// narrative never surfaces in the output.
func RenderMessage(r domain.Report) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "🌽 *MAKKA MANDI AUTOMATED REPORT*\n")
	fmt.Fprintf(&sb, "📅 %s | %s IST\n\n", r.Date, r.Time)
	fmt.Fprintf(&sb, "%s\n\n", sectionDivider)

	sb.WriteString("📍 *CURRENT PRICES*\n")
	for _, loc := range r.Prices.Locations {
		fmt.Fprintf(&sb, "🔹 %s: ₹%d\n", loc.Label, loc.Price)
	}
	fmt.Fprintf(&sb, "\n%s\n\n", sectionDivider)

	sb.WriteString("📊 *MARKET SENTIMENT*\n")
	fmt.Fprintf(&sb, "%s Direction: *%s*\n", r.Sentiment.Emoji, strings.ToUpper(r.Sentiment.Direction))
	fmt.Fprintf(&sb, "Confidence: %d%%\n", r.Sentiment.Confidence)
	fmt.Fprintf(&sb, "Strength: %s\n", titleCase(r.Sentiment.Strength))
	fmt.Fprintf(&sb, "\n%s\n\n", sectionDivider)

	sb.WriteString("💡 *RECOMMENDATIONS*\n\n")
	fmt.Fprintf(&sb, "🛒 *Buyers:*\n%s\n", r.Recommendations.Buyers.ActionLocal)
	if r.Recommendations.Buyers.TargetPrice > 0 {
		fmt.Fprintf(&sb, "Target: ₹%d by %s\n", r.Recommendations.Buyers.TargetPrice, r.Recommendations.Buyers.TargetDate)
	}
	fmt.Fprintf(&sb, "\n📦 *Sellers:*\n%s\n", r.Recommendations.Sellers.ActionLocal)
	fmt.Fprintf(&sb, "\n%s\n\n", sectionDivider)

	if len(r.Forecast) > 0 {
		fmt.Fprintf(&sb, "📈 *%d-DAY FORECAST*\n", len(r.Forecast))
		for _, day := range []int{1, 5, 10} {
			if p, ok := pointForDay(r.Forecast, day); ok {
				fmt.Fprintf(&sb, "Day %d: ₹%d (%+d)\n", p.Day, p.Price, p.Change)
			}
		}
		fmt.Fprintf(&sb, "\nTotal Expected Change: %+d\n", totalChange(r.Forecast))
		fmt.Fprintf(&sb, "\n%s\n\n", sectionDivider)
	}

	sb.WriteString("💾 *Data Status:* Saved to database\n\n")
	fmt.Fprintf(&sb, "%s\n\n", sectionDivider)
	sb.WriteString("🤖 Automated daily report\n")
	sb.WriteString("⚡ Powered by Perplexity AI")

	return sb.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func pointForDay(points []domain.ForecastPoint, day int) (domain.ForecastPoint, bool) {
	for _, p := range points {
		if p.Day == day {
			return p, true
		}
	}
	return domain.ForecastPoint{}, false
}

func totalChange(points []domain.ForecastPoint) int {
	total := 0
	for _, p := range points {
		total += p.Change
	}
	return total
}
