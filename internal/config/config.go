package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port   int    `yaml:"port"`
		APIKey string `yaml:"api_key"`
	} `yaml:"server"`

	Upstream struct {
		BaseURL         string `yaml:"base_url"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"upstream"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Ordering struct {
		DefaultLeadMinutes int `yaml:"default_lead_minutes"`
	} `yaml:"ordering"`

	Region struct {
		// IANA zone name for the restaurants' wall clocks. Empty means
		// UTC, which is what the mobile app has assumed historically.
		Timezone string `yaml:"timezone"`
	} `yaml:"region"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	LogLevel string `yaml:"log_level"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return &cfg, nil
}

// DefaultLead returns the policy lead time applied when a shift carries
// no override of its own.
func (c *Config) DefaultLead() int {
	if c.Ordering.DefaultLeadMinutes < 0 {
		return 0
	}
	return c.Ordering.DefaultLeadMinutes
}

// CacheTTL returns the upstream cache TTL, zero when caching is off.
func (c *Config) CacheTTL() time.Duration {
	if c.Upstream.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.Upstream.CacheTTLSeconds) * time.Second
}

// Location resolves the configured region timezone, UTC when unset or
// unknown.
func (c *Config) Location() *time.Location {
	if c.Region.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Region.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Limit returns the API rate limit parameters with sane defaults.
func (c *Config) Limit() (rps float64, burst int) {
	rps = c.RateLimit.RequestsPerSecond
	burst = c.RateLimit.Burst
	if rps <= 0 {
		rps = 50
	}
	if burst <= 0 {
		burst = 100
	}
	return rps, burst
}
