package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Domenick1991/airtickets/internal/domain"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Auth     AuthConfig     `yaml:"auth"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Flights  FlightsConfig  `yaml:"flights"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
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

type AuthConfig struct {
	Secret          string `yaml:"secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	RequiredRole    string `yaml:"required_role"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

type SMTPConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	From           string `yaml:"from"`
	RetryAttempts  int    `yaml:"retry_attempts"`
	RetryBackoffMS int    `yaml:"retry_backoff_ms"`
}

func (s SMTPConfig) RetryBackoff() time.Duration {
	return time.Duration(s.RetryBackoffMS) * time.Millisecond
}

type FlightsConfig struct {
	CacheTTLSeconds int             `yaml:"cache_ttl_seconds"`
	SeatPlan        []SeatClassPlan `yaml:"seat_plan"`
}

func (f FlightsConfig) CacheTTL() time.Duration {
	return time.Duration(f.CacheTTLSeconds) * time.Second
}

// SeatClassPlan describes one class block of the seat inventory seeded for a
// new flight. Seats are numbered consecutively across blocks in plan order.
type SeatClassPlan struct {
	Class      domain.SeatClass `yaml:"class"`
	Count      int              `yaml:"count"`
	PriceCents int64            `yaml:"price_cents"`
}

// DefaultSeatPlan matches the legacy inventory: 12 economy and 12 premium seats.
func DefaultSeatPlan() []SeatClassPlan {
	return []SeatClassPlan{
		{Class: domain.SeatClassEconomy, Count: 12, PriceCents: 100},
		{Class: domain.SeatClassPremium, Count: 12, PriceCents: 450},
	}
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

	// Secrets should not have to live in the file.
	if secret := os.Getenv("AUTH_SECRET"); secret != "" {
		cfg.Auth.Secret = secret
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		cfg.SMTP.Password = pass
	}

	if cfg.Auth.RequiredRole == "" {
		cfg.Auth.RequiredRole = "user"
	}
	if len(cfg.Flights.SeatPlan) == 0 {
		cfg.Flights.SeatPlan = DefaultSeatPlan()
	}
	if cfg.SMTP.RetryAttempts == 0 {
		cfg.SMTP.RetryAttempts = 3
	}

	return &cfg, nil
}
