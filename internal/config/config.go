// Package config builds the process configuration once at startup. No
// other component reads the environment directly.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAdsStart is the cutoff instant for call correlation: calls older
// than the ad campaign launch are never fetched.
const DefaultAdsStart = "2026-01-21T00:00:00Z"

type Config struct {
	Port string

	JustCallAPIKey     string
	JustCallAPISecret  string
	JustCallCampaignID string

	MetaAccessToken string
	MetaAppSecret   string
	MetaVerifyToken string
	MetaFormIDs     []string

	SpreadsheetID     string
	SheetsAccessToken string
	RowStoreBackend   string // "sheets" (default) or "postgres"

	SlackBotToken string
	SlackChannel  string

	DatabaseURL string
	AMQPURL     string

	SMTPHost    string
	SMTPPort    int
	SMTPUser    string
	SMTPPass    string
	NotifyEmail string

	AdsStart time.Time

	raw map[string]string
}

// Load reads .env (when present) and the process environment. It never
// fails: required keys are checked per entry point via Require, so each
// command validates only what it uses, before any network I/O.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{raw: map[string]string{}}
	get := func(key string) string {
		v := os.Getenv(key)
		cfg.raw[key] = v
		return v
	}

	cfg.Port = get("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.JustCallAPIKey = get("JUSTCALL_API_KEY")
	cfg.JustCallAPISecret = get("JUSTCALL_API_SECRET")
	cfg.JustCallCampaignID = get("JUSTCALL_LIST_ID")

	cfg.MetaAccessToken = get("META_PAGE_ACCESS_TOKEN")
	cfg.MetaAppSecret = get("META_APP_SECRET")
	cfg.MetaVerifyToken = get("META_VERIFY_TOKEN")
	if ids := get("META_FORM_IDS"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cfg.MetaFormIDs = append(cfg.MetaFormIDs, id)
			}
		}
	}

	cfg.SpreadsheetID = get("GOOGLE_SHEETS_ID")
	cfg.SheetsAccessToken = get("GOOGLE_SHEETS_ACCESS_TOKEN")
	cfg.RowStoreBackend = get("ROWSTORE_BACKEND")
	if cfg.RowStoreBackend == "" {
		cfg.RowStoreBackend = "sheets"
	}

	cfg.SlackBotToken = get("SLACK_BOT_TOKEN")
	cfg.SlackChannel = get("SLACK_CHANNEL")
	if cfg.SlackChannel == "" {
		cfg.SlackChannel = "C077MFL1H4L"
	}

	cfg.DatabaseURL = get("DATABASE_URL")
	cfg.AMQPURL = get("AMQP_URL")

	cfg.SMTPHost = get("MAIL_HOST")
	cfg.SMTPUser = get("MAIL_USER")
	cfg.SMTPPass = get("MAIL_PASS")
	cfg.NotifyEmail = get("MAIL_NOTIFY_TO")
	cfg.SMTPPort = 587
	if p := get("MAIL_PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid MAIL_PORT %q: %w", p, err)
		}
		cfg.SMTPPort = port
	}

	start := get("ADS_START")
	if start == "" {
		start = DefaultAdsStart
	}
	adsStart, err := time.Parse(time.RFC3339, start)
	if err != nil {
		return nil, fmt.Errorf("invalid ADS_START %q: %w", start, err)
	}
	cfg.AdsStart = adsStart

	return cfg, nil
}

// Require fails fast when any of the named env keys is missing.
func (c *Config) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if c.raw[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env var(s): %s", strings.Join(missing, ", "))
	}
	return nil
}
