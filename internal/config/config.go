package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DBDSN        string `env:"DB_DSN" envDefault:"housingbuddy.db"`
	LogFile      string `env:"LOG_FILE" envDefault:"./housingbuddy.log"`
	TemplatesDir string `env:"TEMPLATES_DIR" envDefault:"./web/templates"`
	CookieSecure bool   `env:"COOKIE_SECURE" envDefault:"false"`

	// Listing text is authored in SourceLanguage; every other supported
	// language is produced by the translation overlay.
	SourceLanguage     string        `env:"SOURCE_LANGUAGE" envDefault:"ko"`
	SupportedLanguages []string      `env:"SUPPORTED_LANGUAGES" envSeparator:"," envDefault:"ko,en,ja,zh-CN,vi"`
	GoogleAPIKey       string        `env:"GOOGLE_TRANSLATE_API_KEY"`
	GoogleURL          string        `env:"GOOGLE_TRANSLATE_URL" envDefault:"https://translation.googleapis.com/language/translate/v2"`
	TranslateTimeout   time.Duration `env:"TRANSLATE_TIMEOUT" envDefault:"15s"`

	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendURL     string `env:"RESEND_URL" envDefault:"https://api.resend.com"`
	MailFrom      string `env:"MAIL_FROM" envDefault:"Housing Buddy <no-reply@housingbuddy.test>"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// bcrypt hash of the admin credential. Empty disables admin login.
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`

	// When set, per-session UI state lives in Redis instead of SQLite.
	RedisURL string `env:"REDIS_URL"`
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("[config] no .env file loaded: %v", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("[config] parse env: %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SOURCE_LANGUAGE=%s SUPPORTED=%v TRANSLATE=%s MAIL=%s REDIS=%t ADMIN=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SourceLanguage, cfg.SupportedLanguages,
		mask(cfg.GoogleAPIKey), mask(cfg.ResendAPIKey), cfg.RedisURL != "", cfg.AdminPasswordHash != "")
	return cfg
}

func mask(secret string) string {
	if secret == "" {
		return "unset"
	}
	return "set"
}
