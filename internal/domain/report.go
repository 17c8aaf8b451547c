package domain

import "time"

// Impact describes the expected price direction of a news item.
type Impact string

const (
	ImpactUp      Impact = "up"
	ImpactDown    Impact = "down"
	ImpactNeutral Impact = "neutral"
)

// Severity grades how strongly a news item moves the market.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Report is the single structured document produced per execution. It is
// assembled once, persisted as-is, and never mutated afterwards.
type Report struct {
	// ID is derived from the creation instant at second granularity and is the
	// upsert key. Two reports created within the same second collide and the
	// later write wins; acceptable at daily cadence.
	ID              string          `json:"id"`
	CreatedAt       time.Time       `json:"timestamp"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	DayOfWeek       string          `json:"day_of_week"`
	Prices          PriceSnapshot   `json:"current_prices"`
	LiveNarrative   *string         `json:"live_news_raw"`
	NewsItems       []NewsItem      `json:"news_items"`
	Sentiment       Sentiment       `json:"market_sentiment"`
	Forecast        []ForecastPoint `json:"predictions_10_day"`
	Recommendations Recommendations `json:"recommendations"`
	Factors         Factors         `json:"factors"`
	Sources         []string        `json:"data_sources"`
	Metadata        Metadata        `json:"metadata"`
}

// LocationPrice is one named mandi with its quoted price.
type LocationPrice struct {
	Name  string `json:"name" yaml:"name"`
	Label string `json:"label" yaml:"label"`
	Price int    `json:"price" yaml:"price"`
}

// PriceSnapshot holds the fixed per-run price quotes, ordered for rendering.
type PriceSnapshot struct {
	Locations []LocationPrice `json:"locations" yaml:"locations"`
	Unit      string          `json:"unit" yaml:"unit"`
}

// NewsItem is one market event with its localized explanation. IDs are unique
// within a report.
type NewsItem struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Date        string   `json:"date" yaml:"date"`
	Category    string   `json:"category" yaml:"category"`
	Impact      Impact   `json:"impact" yaml:"impact"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Explanation string   `json:"explanation_hinglish" yaml:"explanation"`
	PriceEffect int      `json:"price_effect" yaml:"priceEffect"`
}

// Sentiment is the overall market read for the day.
type Sentiment struct {
	Overall    string `json:"overall" yaml:"overall"`
	Strength   string `json:"strength" yaml:"strength"`
	Confidence int    `json:"confidence" yaml:"confidence"`
	Direction  string `json:"direction" yaml:"direction"`
	Emoji      string `json:"emoji" yaml:"emoji"`
}

// ForecastPoint is one projected day: price, delta from the prior day, and
// the trend label derived from the delta's sign.
type ForecastPoint struct {
	Day           int    `json:"day"`
	Date          string `json:"date"`
	DateFormatted string `json:"date_formatted"`
	Price         int    `json:"price"`
	Change        int    `json:"change"`
	Trend         string `json:"trend"`
}

// Advice is the guidance for one audience (buyers or sellers).
type Advice struct {
	Action      string `json:"action" yaml:"action"`
	ActionLocal string `json:"action_hinglish" yaml:"actionLocal"`
	Reason      string `json:"reason" yaml:"reason"`
	TargetPrice int    `json:"target_price,omitempty" yaml:"targetPrice"`
	TargetDate  string `json:"target_date,omitempty" yaml:"targetDate"`
	Alternative string `json:"alternative,omitempty" yaml:"alternative"`
}

// Recommendations pairs buyer and seller guidance.
type Recommendations struct {
	Buyers  Advice `json:"buyers" yaml:"buyers"`
	Sellers Advice `json:"sellers" yaml:"sellers"`
}

// Factors lists the free-text market drivers grouped by direction.
type Factors struct {
	Bearish []string `json:"bearish" yaml:"bearish"`
	Bullish []string `json:"bullish" yaml:"bullish"`
	Neutral []string `json:"neutral" yaml:"neutral"`
}

// Metadata records provenance of the generated document.
type Metadata struct {
	ReportVersion string `json:"report_version"`
	Automation    string `json:"automation"`
	FetchMethod   string `json:"fetch_method"`
	Runtime       string `json:"runtime"`
}
