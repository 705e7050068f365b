package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides, e.g. FLIGHTDESK_HTTP_ADDRESS.
// Leaf fields use split_words instead of explicit names so envconfig never falls
// back to unprefixed variables such as PATH or USER.
const EnvPrefix = "FLIGHTDESK"

type Config struct {
	HTTP      HTTPConfig      `yaml:"http" envconfig:"HTTP"`
	GRPC      GRPCConfig      `yaml:"grpc" envconfig:"GRPC"`
	Database  DatabaseConfig  `yaml:"database" envconfig:"DATABASE"`
	Redis     RedisConfig     `yaml:"redis" envconfig:"REDIS"`
	Kafka     KafkaConfig     `yaml:"kafka" envconfig:"KAFKA"`
	Store     StoreConfig     `yaml:"store" envconfig:"STORE"`
	Search    SearchConfig    `yaml:"search" envconfig:"SEARCH"`
	Pricing   PricingConfig   `yaml:"pricing" envconfig:"PRICING"`
	Wallet    WalletConfig    `yaml:"wallet" envconfig:"WALLET"`
	RateLimit RateLimitConfig `yaml:"rate_limit" split_words:"true"`
	Worker    WorkerConfig    `yaml:"worker" envconfig:"WORKER"`
}

type HTTPConfig struct {
	Address    string `yaml:"address" split_words:"true"`
	SwaggerDir string `yaml:"swagger_dir" split_words:"true"`
}

type GRPCConfig struct {
	Address string `yaml:"address" split_words:"true"`
}

// DatabaseConfig points at the remote booking store. An empty Host disables it.
type DatabaseConfig struct {
	Host     string `yaml:"host" split_words:"true"`
	Port     int    `yaml:"port" split_words:"true"`
	User     string `yaml:"user" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	Name     string `yaml:"name" split_words:"true"`
	SSLMode  string `yaml:"ssl_mode" split_words:"true"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// RedisConfig holds search sessions. An empty Addr falls back to process memory.
type RedisConfig struct {
	Addr     string `yaml:"addr" split_words:"true"`
	Password string `yaml:"password" split_words:"true"`
	DB       int    `yaml:"db" split_words:"true"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" split_words:"true"`
	BookingTopic       string   `yaml:"booking_topic" split_words:"true"`
	WalletTopic        string   `yaml:"wallet_topic" split_words:"true"`
	NotificationsTopic string   `yaml:"notifications_topic" split_words:"true"`
	GroupID            string   `yaml:"group_id" split_words:"true"`
}

type StoreConfig struct {
	Path string `yaml:"path" split_words:"true"`
}

type SearchConfig struct {
	DefaultCount      int `yaml:"default_count" split_words:"true"`
	MaxCount          int `yaml:"max_count" split_words:"true"`
	SessionTTLMinutes int `yaml:"session_ttl_minutes" split_words:"true"`
}

func (s SearchConfig) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

type PricingConfig struct {
	ResetAfterMinutes int   `yaml:"reset_after_minutes" split_words:"true"`
	HotWindowMinutes  int   `yaml:"hot_window_minutes" split_words:"true"`
	AttemptThreshold  int   `yaml:"attempt_threshold" split_words:"true"`
	SurchargePercent  int64 `yaml:"surcharge_percent" split_words:"true"`
}

type WalletConfig struct {
	InitialBalance int64 `yaml:"initial_balance" split_words:"true"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" split_words:"true"`
	Burst int     `yaml:"burst" split_words:"true"`
}

type WorkerConfig struct {
	RemoteSyncMinutes int `yaml:"remote_sync_minutes" split_words:"true"`
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

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Store.Path == "" {
		c.Store.Path = "flightdesk.db"
	}
	if c.Search.DefaultCount <= 0 {
		c.Search.DefaultCount = 10
	}
	if c.Search.MaxCount <= 0 {
		c.Search.MaxCount = 50
	}
	if c.Search.SessionTTLMinutes <= 0 {
		c.Search.SessionTTLMinutes = 30
	}
	if c.Wallet.InitialBalance <= 0 {
		c.Wallet.InitialBalance = 50000
	}
	if c.RateLimit.RPS <= 0 {
		c.RateLimit.RPS = 5
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 10
	}
	if c.Worker.RemoteSyncMinutes <= 0 {
		c.Worker.RemoteSyncMinutes = 5
	}
}
