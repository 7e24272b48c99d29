package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/heyyrintu/hrms-sub001/internal/shared/connection"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	NotificationModeInProcess = "inprocess"
	NotificationModeOutbox    = "outbox"
)

type Config struct {
	Env          string             `yaml:"env"`
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Auth         AuthConfig         `yaml:"auth"`
	Storage      StorageConfig      `yaml:"storage"`
	Notification NotificationConfig `yaml:"notification"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port         string        `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

type DatabaseConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"ssl_mode"`
	MaxRetries int    `yaml:"max_retries"`
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
}

type KafkaConfig struct {
	Broker       string        `yaml:"broker"`
	PollInterval time.Duration `yaml:"outbox_poll_interval"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type StorageConfig struct {
	Dir      string `yaml:"dir"`
	MaxBytes int64  `yaml:"max_bytes"`
}

type NotificationConfig struct {
	Mode      string `yaml:"mode"`
	Workers   int    `yaml:"workers"`
	QueueSize int    `yaml:"queue_size"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

func (d DatabaseConfig) Connection() connection.DBConfig {
	return connection.DBConfig{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Name:     d.Name,
		SSLMode:  d.SSLMode,
	}
}

func Default() Config {
	return Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "3000",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Port:       "5432",
			SSLMode:    "disable",
			MaxRetries: 5,
		},
		Kafka: KafkaConfig{PollInterval: 3 * time.Second},
		Storage: StorageConfig{
			Dir:      "./uploads",
			MaxBytes: 10 << 20,
		},
		Notification: NotificationConfig{
			Mode:      NotificationModeInProcess,
			Workers:   4,
			QueueSize: 256,
		},
		RateLimit: RateLimitConfig{RPS: 10, Burst: 20},
	}
}

// Load reads .env, then the YAML file named by CONFIG_PATH (if any), then
// applies environment overrides.
func Load() (Config, error) {
	_ = godotenv.Load()
	return LoadFrom(os.Getenv("CONFIG_PATH"), os.Getenv)
}

func LoadFrom(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	str("APP_ENV", &c.Env)
	str("PORT", &c.Server.Port)
	str("DB_HOST", &c.Database.Host)
	str("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	str("DB_SSLMODE", &c.Database.SSLMode)
	str("REDIS_ADDR", &c.Redis.Addr)
	str("KAFKA_BROKER", &c.Kafka.Broker)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("STORAGE_DIR", &c.Storage.Dir)
	str("NOTIFICATION_MODE", &c.Notification.Mode)

	durations := map[string]*time.Duration{
		"HTTP_READ_TIMEOUT":    &c.Server.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":   &c.Server.WriteTimeout,
		"HTTP_IDLE_TIMEOUT":    &c.Server.IdleTimeout,
		"OUTBOX_POLL_INTERVAL": &c.Kafka.PollInterval,
	}
	for key, dst := range durations {
		if v := getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = d
		}
	}

	ints := map[string]*int{
		"DB_MAX_RETRIES":          &c.Database.MaxRetries,
		"NOTIFICATION_WORKERS":    &c.Notification.Workers,
		"NOTIFICATION_QUEUE_SIZE": &c.Notification.QueueSize,
		"RATE_LIMIT_BURST":        &c.RateLimit.Burst,
	}
	for key, dst := range ints {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			*dst = n
		}
	}

	if v := getenv("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: RATE_LIMIT_RPS: %w", err)
		}
		c.RateLimit.RPS = f
	}
	if v := getenv("STORAGE_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: STORAGE_MAX_BYTES: %w", err)
		}
		c.Storage.MaxBytes = n
	}

	return nil
}

func (c Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("config: database host must be set")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: jwt secret must be set")
	}
	switch c.Notification.Mode {
	case NotificationModeInProcess:
	case NotificationModeOutbox:
		if c.Kafka.Broker == "" {
			return fmt.Errorf("config: kafka broker must be set when notification mode is %s", NotificationModeOutbox)
		}
	default:
		return fmt.Errorf("config: unknown notification mode %q", c.Notification.Mode)
	}
	if c.Notification.Workers < 1 {
		return fmt.Errorf("config: notification workers must be positive")
	}
	if c.Notification.QueueSize < 1 {
		return fmt.Errorf("config: notification queue size must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
