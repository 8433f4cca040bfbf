package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Locale   LocaleConfig   `yaml:"locale"`
	Booking  BookingConfig  `yaml:"booking"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LocaleConfig struct {
	GeoEndpoint       string `yaml:"geo_endpoint"`
	GeoTimeoutSeconds int    `yaml:"geo_timeout_seconds"`
	DefaultLocale     string `yaml:"default_locale"`
	DefaultCurrency   string `yaml:"default_currency"`
}

type BookingConfig struct {
	PaymentLatencySeconds int    `yaml:"payment_latency_seconds"`
	ReferencePrefix       string `yaml:"reference_prefix"`
	SessionTTLMinutes     int    `yaml:"session_ttl_minutes"`
	SearchCacheTTL        int    `yaml:"search_cache_ttl_seconds"`
	SweepMinutes          int    `yaml:"session_sweep_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Locale.GeoEndpoint == "" {
		cfg.Locale.GeoEndpoint = "https://ipapi.co"
	}
	if cfg.Locale.GeoTimeoutSeconds == 0 {
		cfg.Locale.GeoTimeoutSeconds = 3
	}
	if cfg.Locale.DefaultLocale == "" {
		cfg.Locale.DefaultLocale = "en"
	}
	if cfg.Locale.DefaultCurrency == "" {
		cfg.Locale.DefaultCurrency = "USD"
	}
	if cfg.Booking.PaymentLatencySeconds == 0 {
		cfg.Booking.PaymentLatencySeconds = 2
	}
	if cfg.Booking.ReferencePrefix == "" {
		cfg.Booking.ReferencePrefix = "NC"
	}
	if cfg.Booking.SessionTTLMinutes == 0 {
		cfg.Booking.SessionTTLMinutes = 60
	}
	if cfg.Booking.SearchCacheTTL == 0 {
		cfg.Booking.SearchCacheTTL = 120
	}
	if cfg.Booking.SweepMinutes == 0 {
		cfg.Booking.SweepMinutes = 10
	}
	if cfg.Upstream.TimeoutSeconds == 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}
}
