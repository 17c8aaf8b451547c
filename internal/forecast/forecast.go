package forecast

import (
	"time"

	"MaizeReporter/internal/domain"
)

// Generate projects prices for len(deltas) days ahead of from. Point k's
// price is the running sum of deltas seeded at base, its date is from plus
// k+1 days, and its trend follows the sign of its delta. Pure; identical
// inputs always yield identical output.
func Generate(base int, deltas []int, from time.Time) []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, 0, len(deltas))

	price := base
	for i, change := range deltas {
		date := from.AddDate(0, 0, i+1)
		price += change
		points = append(points, domain.ForecastPoint{
			Day:           i + 1,
			Date:          date.Format("2006-01-02"),
			DateFormatted: date.Format("02 Jan"),
			Price:         price,
			Change:        change,
			Trend:         trendFor(change),
		})
	}

	return points
}

func trendFor(change int) string {
	switch {
	case change < 0:
		return "down"
	case change > 0:
		return "up"
	default:
		return "stable"
	}
}
