package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is read from the environment on startup. A .env file in the
// working directory is loaded first (if present), the same way the
// frontend-facing deployments provide MONGO_URL and friends.
type Config struct {
	Host string `env:"FITTRACK_HOST"`
	Port int    `env:"PORT, default=8080"`

	// storage
	MongoURL string `env:"MONGO_URL, default=mongodb://localhost:27017"`
	DBName   string `env:"DB_NAME, default=fittrack"`

	// comma-separated list of allowed origins, "*" allows all
	CORSAllowedOrigins []string `env:"CORS_ORIGINS, default=*"`

	// logging
	LogLevel    string `env:"FITTRACK_LOG_LEVEL, default=trace"`
	LogsPath    string `env:"FITTRACK_LOGS_PATH"`
	LogToStdout bool   `env:"FITTRACK_LOG_TO_STDOUT, default=true"`

	// prometheus metrics server
	PrometheusMetricsHost string `env:"FITTRACK_METRICS_HOST"`
	PrometheusMetricsPort string `env:"FITTRACK_METRICS_PORT, default=2112"`

	Environment   string `env:"FITTRACK_ENV, default=development"`
	SentryEnabled bool   `env:"FITTRACK_SENTRY_ENABLED, default=false"`
	SentryDSN     string `env:"SENTRY_DSN"`
}

func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	return &cfg, nil
}
