package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/elC0mpa/ecs-chargeback/service/chargeback"
	"gopkg.in/yaml.v3"
)

var validStats = []string{"Average", "Maximum", "Minimum", "Sum", "SampleCount"}

func Default() *Config {
	opts := chargeback.DefaultOptions()
	return &Config{
		Region:              "us-east-1",
		ClusterTag:          opts.ClusterTagKey,
		UtilizationLookback: opts.UtilizationLookback,
		UtilizationPeriod:   opts.UtilizationPeriod,
		UtilizationStat:     opts.UtilizationStat,
		CostLookback:        opts.CostLookback,
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
		Datadog: DatadogConfig{
			MetricPrefix: "ecs.chargeback",
		},
		Daemon: DaemonConfig{
			Schedule:   "@every 5m",
			ListenAddr: ":8080",
		},
		LogLevel: "info",
	}
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Region = getEnvOrDefault("AWS_REGION", c.Region)
	c.Profile = getEnvOrDefault("AWS_PROFILE", c.Profile)
	if clusters := os.Getenv("CLUSTERS"); clusters != "" {
		c.Clusters = SplitList(clusters)
	}
	c.ClusterTag = getEnvOrDefault("CLUSTER_TAG", c.ClusterTag)
	c.UtilizationStat = getEnvOrDefault("UTILIZATION_STAT", c.UtilizationStat)

	c.Cache.Bucket = getEnvOrDefault("CACHE_BUCKET", c.Cache.Bucket)
	c.Cache.Prefix = getEnvOrDefault("CACHE_PREFIX", c.Cache.Prefix)
	c.Cache.Path = getEnvOrDefault("CACHE_PATH", c.Cache.Path)

	c.Datadog.APIKey = getEnvOrDefault("DATADOG_API_KEY", c.Datadog.APIKey)
	c.Datadog.MetricPrefix = getEnvOrDefault("DATADOG_METRIC_PREFIX", c.Datadog.MetricPrefix)
	c.Prometheus.PushgatewayURL = getEnvOrDefault("PUSHGATEWAY_URL", c.Prometheus.PushgatewayURL)

	c.Daemon.Schedule = getEnvOrDefault("SCHEDULE", c.Daemon.Schedule)
	c.Daemon.ListenAddr = getEnvOrDefault("LISTEN_ADDR", c.Daemon.ListenAddr)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)

	durations := []struct {
		key  string
		unit time.Duration
		dst  *time.Duration
	}{
		{"UTILIZATION_LOOKBACK_MINS", time.Minute, &c.UtilizationLookback},
		{"UTILIZATION_PERIOD_SECS", time.Second, &c.UtilizationPeriod},
		{"COST_LOOKBACK_DAYS", 24 * time.Hour, &c.CostLookback},
		{"CACHE_TTL_HOURS", time.Hour, &c.Cache.TTL},
	}
	for _, d := range durations {
		value := os.Getenv(d.key)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, d.key, value)
		}
		*d.dst = time.Duration(n) * d.unit
	}

	return nil
}

func (c *Config) Validate() error {
	positive := map[string]time.Duration{
		"utilizationLookback": c.UtilizationLookback,
		"utilizationPeriod":   c.UtilizationPeriod,
		"costLookback":        c.CostLookback,
		"cache.ttl":           c.Cache.TTL,
	}
	for name, d := range positive {
		if d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidConfig, name, d)
		}
	}

	if c.UtilizationPeriod%time.Second != 0 {
		return fmt.Errorf("%w: utilizationPeriod must be whole seconds, got %s", ErrInvalidConfig, c.UtilizationPeriod)
	}

	valid := false
	for _, stat := range validStats {
		if c.UtilizationStat == stat {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: utilizationStat must be one of %s, got %q", ErrInvalidConfig, strings.Join(validStats, "|"), c.UtilizationStat)
	}

	if c.ClusterTag == "" {
		return fmt.Errorf("%w: clusterTag must not be empty", ErrInvalidConfig)
	}

	return nil
}

// Options returns the chargeback options described by c
func (c *Config) Options() chargeback.Options {
	return chargeback.Options{
		ClusterTagKey:       c.ClusterTag,
		CostLookback:        c.CostLookback,
		UtilizationLookback: c.UtilizationLookback,
		UtilizationPeriod:   c.UtilizationPeriod,
		UtilizationStat:     c.UtilizationStat,
	}
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
