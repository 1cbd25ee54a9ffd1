package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, upstream URL, etc.), security settings
// - default: Values common across all environments (intervals, timeouts, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	Upstream UpstreamConfig
	Hold     HoldConfig
	CORS     CORSConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

// UpstreamConfig points at the hospital booking backend that owns all durable
// reservation state (availability snapshots, slot holds, expiry).
type UpstreamConfig struct {
	BaseURL   string        `envconfig:"UPSTREAM_BASE_URL" required:"true"`
	Timeout   time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	APIKey    string        `envconfig:"UPSTREAM_API_KEY" default:""`
	KeyHeader string        `envconfig:"UPSTREAM_API_KEY_HEADER" default:"X-Api-Key"`
}

type HoldConfig struct {
	// PollInterval drives the background availability refresh while a full
	// doctor/service/date selection is held by a workflow.
	PollInterval time.Duration `envconfig:"HOLD_POLL_INTERVAL" default:"30s"`
	// TickInterval drives the countdown re-derivation against expiresAt.
	TickInterval time.Duration `envconfig:"HOLD_TICK_INTERVAL" default:"1s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Ho_Chi_Minh"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"25200"` // 7*60*60
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Upstream: UpstreamConfig{
			BaseURL:   "http://localhost:18080",
			Timeout:   2 * time.Second,
			KeyHeader: "X-Api-Key",
		},
		Hold: HoldConfig{
			PollInterval: 30 * time.Second,
			TickInterval: time.Second,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Ho_Chi_Minh",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 25200,
		},
	}
}
