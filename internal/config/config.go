package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aliskhannn/spicy-vs-sweet/internal/retry"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrInvalidConfig               = errors.New("invalid configuration")
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string  `mapstructure:"env"`            // current application environment (local, dev, production etc)
	TelegramAPIToken string  `mapstructure:"-"`              // Telegram API token loaded from environment
	QuestionsPath    string  `mapstructure:"questions_path"` // path to the JSON question bank
	DefaultLocale    string  `mapstructure:"default_locale"` // content locale of new rooms
	DB               DB      `mapstructure:"database"`       // database configuration section
	Retry            Retry   `mapstructure:"retry"`          // retry policy for network calls
	Judge            Judge   `mapstructure:"judge"`          // fuzzy judge configuration section
	Redis            Redis   `mapstructure:"redis"`          // judge cache configuration section
	Metrics          Metrics `mapstructure:"metrics"`        // metrics and health endpoint
	Rooms            Rooms   `mapstructure:"rooms"`          // room janitor schedule and limits
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Retry configures the retry policy of judge and storage calls.
type Retry struct {
	MaxAttempts int           `mapstructure:"max_attempts"` // total attempts per call
	BaseDelay   time.Duration `mapstructure:"base_delay"`   // delay before attempt k+1 is base_delay*k
}

// Options converts the section to retry options.
func (r Retry) Options() retry.Options {
	return retry.Options{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay,
	}
}

// Judge configures the fuzzy judge.
type Judge struct {
	APIKey    string        `mapstructure:"-"`         // Gemini API key; empty selects the offline judge
	Model     string        `mapstructure:"model"`     // Gemini model name
	Timeout   time.Duration `mapstructure:"timeout"`   // timeout of a single judge call
	Threshold float64       `mapstructure:"threshold"` // similarity threshold of the offline judge
	CacheTTL  time.Duration `mapstructure:"cache_ttl"` // how long judge results are cached
}

// Redis configures the judge cache. Caching is off when URL is empty.
type Redis struct {
	URL string `mapstructure:"-"`
}

// Metrics configures the metrics and health HTTP server. Empty Addr disables it.
type Metrics struct {
	Addr string `mapstructure:"addr"`
}

// Rooms configures the janitor that closes forgotten questions and evicts idle rooms.
type Rooms struct {
	SweepSchedule string        `mapstructure:"sweep_schedule"` // cron spec of the sweep
	QuestionTTL   time.Duration `mapstructure:"question_ttl"`   // open questions older than this are closed
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`       // rooms untouched for this long are forgotten
}

// Load reads configuration for the bot: everything LoadBase reads plus the Telegram token
// and the database URL, which the bot cannot run without.
func Load() (*Config, error) {
	cfg, err := LoadBase()
	if err != nil {
		return nil, err
	}

	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	if cfg.DB.URL == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL", ErrMissingEnvironmentVariables)
	}

	return cfg, nil
}

// LoadBase reads configuration from .env, config files and environment variables
// without requiring any secret.
func LoadBase() (*Config, error) {
	// Load .env into the process environment if present.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions_path", "assets/data/questions.json")
	v.SetDefault("default_locale", "en")
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("retry.max_attempts", retry.DefaultMaxAttempts)
	v.SetDefault("retry.base_delay", retry.DefaultBaseDelay.String())
	v.SetDefault("judge.model", "gemini-2.5-flash")
	v.SetDefault("judge.timeout", "15s")
	v.SetDefault("judge.threshold", 0.8)
	v.SetDefault("judge.cache_ttl", "24h")
	v.SetDefault("metrics.addr", ":9090")
	v.SetDefault("rooms.sweep_schedule", "@every 1m")
	v.SetDefault("rooms.question_ttl", "10m")
	v.SetDefault("rooms.idle_ttl", "168h")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("redis_url", "REDIS_URL")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	cfg.DB.URL = v.GetString("database_url")
	cfg.Judge.APIKey = v.GetString("gemini_api_key")
	cfg.Redis.URL = v.GetString("redis_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Retry.MaxAttempts < 1:
		return fmt.Errorf("%w: retry.max_attempts must be positive, got %d", ErrInvalidConfig, c.Retry.MaxAttempts)
	case c.Retry.BaseDelay < 0:
		return fmt.Errorf("%w: retry.base_delay must not be negative, got %s", ErrInvalidConfig, c.Retry.BaseDelay)
	case c.Judge.Threshold <= 0 || c.Judge.Threshold > 1:
		return fmt.Errorf("%w: judge.threshold must be in (0, 1], got %v", ErrInvalidConfig, c.Judge.Threshold)
	case c.DefaultLocale == "":
		return fmt.Errorf("%w: default_locale is empty", ErrInvalidConfig)
	case c.Rooms.SweepSchedule == "":
		return fmt.Errorf("%w: rooms.sweep_schedule is empty", ErrInvalidConfig)
	case c.Rooms.QuestionTTL <= 0 || c.Rooms.IdleTTL <= 0:
		return fmt.Errorf("%w: rooms.question_ttl and rooms.idle_ttl must be positive", ErrInvalidConfig)
	}
	return nil
}
