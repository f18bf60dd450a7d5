package config

import (
	"errors"
	"time"
)

// ErrInvalidConfig is returned by Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config is the runtime configuration shared by every entrypoint
type Config struct {
	Region   string   `yaml:"region"`
	Profile  string   `yaml:"profile"`
	Clusters []string `yaml:"clusters"`

	ClusterTag          string        `yaml:"clusterTag"`
	UtilizationLookback time.Duration `yaml:"utilizationLookback"`
	UtilizationPeriod   time.Duration `yaml:"utilizationPeriod"`
	UtilizationStat     string        `yaml:"utilizationStat"`
	CostLookback        time.Duration `yaml:"costLookback"`

	Cache      CacheConfig      `yaml:"cache"`
	Datadog    DatadogConfig    `yaml:"datadog"`
	Prometheus PrometheusConfig `yaml:"prometheus"`
	Daemon     DaemonConfig     `yaml:"daemon"`

	LogLevel string `yaml:"logLevel"`
}

// CacheConfig selects where instance type indexes are cached. Bucket wins
// over Path; neither disables caching.
type CacheConfig struct {
	Bucket string        `yaml:"bucket"`
	Prefix string        `yaml:"prefix"`
	Path   string        `yaml:"path"`
	TTL    time.Duration `yaml:"ttl"`
}

type DatadogConfig struct {
	APIKey       string `yaml:"apiKey"`
	MetricPrefix string `yaml:"metricPrefix"`
}

type PrometheusConfig struct {
	PushgatewayURL string `yaml:"pushgatewayURL"`
}

type DaemonConfig struct {
	Schedule   string `yaml:"schedule"`
	ListenAddr string `yaml:"listenAddr"`
}
