package config

import (
	"log"
	"os"
	"strconv"

	"github.com/defi-mexico/platform-backend/src/api/data"
	"gorm.io/gorm"
)

type Config struct {
	MySQLDSN  string
	RedisURL  string
	JWTSecret string
	Port      string
	SiteURL   string

	// Mail provider (mailer worker)
	MailEndpoint string
	MailAPIKey   string
	MailFrom     string

	// Proposal submissions allowed per user per hour
	ProposalRateLimit int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		if def == "" {
			log.Fatalf("missing env %s", key)
		}
		return def
	}
	return v
}

// setting reads a value from the settings table with an env fallback.
func setting(name, envKey, def string) string {
	if v := data.GetSetting(name); v != "" {
		return v
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return def
}

func Load(db *gorm.DB) Config {
	if err := data.LoadSettings(db); err != nil {
		log.Printf("Failed to load settings: %v", err)
	}

	rate := 5
	if s := setting("proposal_rate_limit", "PROPOSAL_RATE_LIMIT", ""); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			rate = n
		}
	}

	return Config{
		MySQLDSN:          GetMySQLDSN(),
		RedisURL:          getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		JWTSecret:         getenv("JWT_SECRET", ""),
		Port:              getenv("PORT", "8080"),
		SiteURL:           setting("site_url", "SITE_URL", "https://defimexico.org"),
		MailEndpoint:      setting("mail_endpoint", "MAIL_ENDPOINT", ""),
		MailAPIKey:        setting("mail_api_key", "MAIL_API_KEY", ""),
		MailFrom:          setting("mail_from", "MAIL_FROM", "no-reply@defimexico.org"),
		ProposalRateLimit: rate,
	}
}

func GetMySQLDSN() string {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "defimx:defimx@tcp(127.0.0.1:3306)/defimexico"
	}
	return dsn
}
