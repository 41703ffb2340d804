package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	PortfolioPath string `envconfig:"PORTFOLIO_PATH" default:"portfolio.csv"`

	RecipientEmail string `envconfig:"RECIPIENT_EMAIL" default:""`
	SenderEmail    string `envconfig:"SENDER_EMAIL" default:""`
	SESRegion      string `envconfig:"AWS_SES_REGION" default:"us-east-1"`

	MinAlertPct float64 `envconfig:"MIN_ALERT_PCT" default:"3"`
	MaxAlertPct float64 `envconfig:"MAX_ALERT_PCT" default:"40"`

	ProviderPriority []string      `envconfig:"PROVIDER_PRIORITY" default:"yahoo,brapi"`
	ProviderTimeout  time.Duration `envconfig:"PROVIDER_TIMEOUT" default:"10s"`
	BrapiBaseURL     string        `envconfig:"BRAPI_BASE_URL" default:"https://brapi.dev/api"`
	BrapiToken       string        `envconfig:"BRAPI_TOKEN" default:""`

	Workers int `envconfig:"WORKERS" default:"4"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL" default:""`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}
