package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"MaizeReporter/internal/domain"
)

const (
	defaultTimezone     = "Asia/Kolkata"
	defaultRetentionDay = 30

	configPathEnv       = "MAIZE_REPORTER_CONFIG"
	databaseDSNEnv      = "DATABASE_DSN"
	perplexityKeyEnv    = "PERPLEXITY_KEY"
	greenAPIInstanceEnv = "GREEN_API_INSTANCE"
	greenAPITokenEnv    = "GREEN_API_TOKEN"
	whatsappPhoneEnv    = "WHATSAPP_PHONE"
)

// Config holds high-level settings required across the application.
type Config struct {
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Search        SearchConfig       `yaml:"search"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
	Content       ReportContent      `yaml:"content"`
}

// DatabaseConfig describes Postgres connection and retention details.
type DatabaseConfig struct {
	DSN           string `yaml:"dsn"`
	RetentionDays int    `yaml:"retentionDays"`
}

// Retention resolves the configured retention window as a duration.
func (d DatabaseConfig) Retention() time.Duration {
	days := d.RetentionDays
	if days <= 0 {
		days = defaultRetentionDay
	}
	return time.Duration(days) * 24 * time.Hour
}

// SchedulerConfig defines when report runs should execute.
type SchedulerConfig struct {
	Enabled        bool           `yaml:"enabled"`
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SearchConfig defines how to contact the live-search API.
type SearchConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	WhatsApp WhatsAppConfig `yaml:"whatsapp"`
}

// WhatsAppConfig wires the Green API instance and the fixed recipient.
type WhatsAppConfig struct {
	BaseURL  string `yaml:"baseUrl"`
	Instance string `yaml:"instance"`
	Token    string `yaml:"token"`
	Phone    string `yaml:"phone"`
}

// LoggingConfig controls the console logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// ReportContent is the injected static data the Report Builder assembles from:
// the price snapshot, news catalog, sentiment, recommendation templates,
// factor lists, and the forecast schedule.
type ReportContent struct {
	BasePrice       int                    `yaml:"basePrice"`
	ForecastDeltas  []int                  `yaml:"forecastDeltas"`
	Prices          domain.PriceSnapshot   `yaml:"prices"`
	NewsItems       []domain.NewsItem      `yaml:"newsItems"`
	Sentiment       domain.Sentiment       `yaml:"sentiment"`
	Recommendations domain.Recommendations `yaml:"recommendations"`
	Factors         domain.Factors         `yaml:"factors"`
	Sources         []string               `yaml:"sources"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(perplexityKeyEnv); v != "" {
		c.Search.APIKey = v
	}

	if v := os.Getenv(greenAPIInstanceEnv); v != "" {
		c.Notifications.WhatsApp.Instance = v
	}

	if v := os.Getenv(greenAPITokenEnv); v != "" {
		c.Notifications.WhatsApp.Token = v
	}

	if v := os.Getenv(whatsappPhoneEnv); v != "" {
		c.Notifications.WhatsApp.Phone = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}
	if override.Database.RetentionDays > 0 {
		base.Database.RetentionDays = override.Database.RetentionDays
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Search.Endpoint != "" {
		base.Search.Endpoint = override.Search.Endpoint
	}
	if override.Search.Model != "" {
		base.Search.Model = override.Search.Model
	}
	if override.Search.APIKey != "" {
		base.Search.APIKey = override.Search.APIKey
	}

	if override.Notifications.WhatsApp.BaseURL != "" {
		base.Notifications.WhatsApp.BaseURL = override.Notifications.WhatsApp.BaseURL
	}
	if override.Notifications.WhatsApp.Instance != "" {
		base.Notifications.WhatsApp.Instance = override.Notifications.WhatsApp.Instance
	}
	if override.Notifications.WhatsApp.Token != "" {
		base.Notifications.WhatsApp.Token = override.Notifications.WhatsApp.Token
	}
	if override.Notifications.WhatsApp.Phone != "" {
		base.Notifications.WhatsApp.Phone = override.Notifications.WhatsApp.Phone
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	base.Content = mergeContent(base.Content, override.Content)

	return base
}

func mergeContent(base, override ReportContent) ReportContent {
	if override.BasePrice > 0 {
		base.BasePrice = override.BasePrice
	}
	if len(override.ForecastDeltas) > 0 {
		base.ForecastDeltas = override.ForecastDeltas
	}
	if len(override.Prices.Locations) > 0 {
		base.Prices = override.Prices
	}
	if len(override.NewsItems) > 0 {
		base.NewsItems = override.NewsItems
	}
	if override.Sentiment.Overall != "" {
		base.Sentiment = override.Sentiment
	}
	if override.Recommendations.Buyers.Action != "" {
		base.Recommendations = override.Recommendations
	}
	if len(override.Factors.Bearish) > 0 || len(override.Factors.Bullish) > 0 || len(override.Factors.Neutral) > 0 {
		base.Factors = override.Factors
	}
	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Database: DatabaseConfig{
			DSN:           "",
			RetentionDays: defaultRetentionDay,
		},
		Scheduler: SchedulerConfig{
			Enabled:        false,
			CronExpression: "0 6 * * *",
			Timezone:       defaultTimezone,
			location:       tz,
		},
		Search: SearchConfig{
			Endpoint: "https://api.perplexity.ai/chat/completions",
			Model:    "sonar-pro",
			APIKey:   "",
		},
		Notifications: NotificationConfig{
			WhatsApp: WhatsAppConfig{BaseURL: "https://api.green-api.com"},
		},
		Logging: LoggingConfig{Level: "info"},
		Content: defaultContent(),
	}
}

// defaultContent carries the maize market tables the report is assembled from.
func defaultContent() ReportContent {
	return ReportContent{
		BasePrice:      1985,
		ForecastDeltas: []int{-15, -20, -25, -25, -20, -15, -10, -5, -5, 0},
		Prices: domain.PriceSnapshot{
			Locations: []domain.LocationPrice{
				{Name: "bihar_avg", Label: "Bihar", Price: 1985},
				{Name: "purnea", Label: "Purnea", Price: 1970},
				{Name: "indore", Label: "Indore", Price: 1715},
				{Name: "all_india_avg", Label: "All India", Price: 1950},
			},
			Unit: "INR/quintal",
		},
		NewsItems: []domain.NewsItem{
			{
				ID:          1,
				Title:       "US Duty-Free Imports Allowed",
				Date:        "2026-02-11",
				Category:    "All India",
				Impact:      domain.ImpactDown,
				Severity:    domain.SeverityHigh,
				Explanation: "America se makka import bina tax ke ho raha hai. Local prices par heavy pressure padega.",
				PriceEffect: -100,
			},
			{
				ID:          2,
				Title:       "Old Stock Demand Low",
				Date:        "2026-02-10",
				Category:    "All India",
				Impact:      domain.ImpactDown,
				Severity:    domain.SeverityMedium,
				Explanation: "Purane makka ki demand kam hai. Traders nayi crop ka wait kar rahe.",
				PriceEffect: -50,
			},
			{
				ID:          3,
				Title:       "Ethanol Demand Strong",
				Date:        "2026-02-01",
				Category:    "All India",
				Impact:      domain.ImpactUp,
				Severity:    domain.SeverityMedium,
				Explanation: "125 LMT ethanol target hai. Regular demand support milega.",
				PriceEffect: 30,
			},
		},
		Sentiment: domain.Sentiment{
			Overall:    "bearish",
			Strength:   "strong",
			Confidence: 85,
			Direction:  "down",
			Emoji:      "🔴",
		},
		Recommendations: domain.Recommendations{
			Buyers: domain.Advice{
				Action:      "wait",
				ActionLocal: "ABHI MAT LO, 2-3 HAFTE WAIT KARO",
				Reason:      "Price expected to drop ₹100-150 more",
				TargetPrice: 1900,
				TargetDate:  "2026-02-25",
			},
			Sellers: domain.Advice{
				Action:      "sell_if_urgent",
				ActionLocal: "URGENT HAI TO ABHI BECH DO",
				Reason:      "Price will decline, better to sell now than wait",
				Alternative: "Wait till March if can hold",
			},
		},
		Factors: domain.Factors{
			Bearish: []string{"US imports", "Low old stock demand", "Fresh arrivals"},
			Bullish: []string{"Ethanol demand", "Poultry industry"},
			Neutral: []string{"Weather normal"},
		},
		Sources: []string{
			"Perplexity AI (Live Search)",
			"Reuters India",
			"APMC Mandi Data",
			"Commodity Market Reports",
		},
	}
}
