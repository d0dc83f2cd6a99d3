package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	S3        S3Config        `yaml:"s3"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
	// NotifySelfLikes makes liking your own post notify you.
	NotifySelfLikes bool `yaml:"notify_self_likes"`
}

type AppConfig struct {
	Env      string `yaml:"env"`
	Port     string `yaml:"port"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"` // mysql or postgres
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type S3Config struct {
	Region        string `yaml:"region"`
	Bucket        string `yaml:"bucket"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	Endpoint      string `yaml:"endpoint"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type ReconcileConfig struct {
	Interval  time.Duration `yaml:"interval"`
	BatchSize int           `yaml:"batch_size"`
}

// Default returns the configuration used before the file and environment
// are applied.
func Default() *Config {
	return &Config{
		App:             AppConfig{Env: "development", Port: "8080", LogLevel: "info"},
		Database:        DatabaseConfig{Driver: "mysql"},
		Redis:           RedisConfig{Addr: "localhost:6379"},
		JWT:             JWTConfig{TTL: 24 * time.Hour},
		S3:              S3Config{Region: "us-east-1"},
		Reconcile:       ReconcileConfig{Interval: time.Minute, BatchSize: 100},
		NotifySelfLikes: true,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if it
// exists), then environment variables. A .env file in the working directory
// is loaded into the environment first.
func Load(path string) (*Config, error) {
	// بارگذاری .env
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
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

// loadDotEnv loads the file into the environment. A missing file is not an
// error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.App.Env, "APP_ENV")
	setString(&c.App.Port, "APP_PORT")
	setString(&c.App.LogLevel, "LOG_LEVEL")
	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.DSN, "DB_DSN")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.S3.Region, "S3_REGION")
	setString(&c.S3.Bucket, "S3_BUCKET")
	setString(&c.S3.AccessKey, "S3_ACCESS_KEY")
	setString(&c.S3.SecretKey, "S3_SECRET_KEY")
	setString(&c.S3.Endpoint, "S3_ENDPOINT")
	setString(&c.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.Reconcile.BatchSize, "BATCH_SIZE"); err != nil {
		return err
	}
	if err := setDuration(&c.JWT.TTL, "JWT_TTL"); err != nil {
		return err
	}
	if err := setDuration(&c.Reconcile.Interval, "RECONCILE_INTERVAL"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("NOTIFY_SELF_LIKES"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NOTIFY_SELF_LIKES: %w", err)
		}
		c.NotifySelfLikes = b
	}
	return nil
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("DB_DSN is not set")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	if c.Database.Driver != "mysql" && c.Database.Driver != "postgres" {
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Reconcile.BatchSize <= 0 {
		return errors.New("BATCH_SIZE must be positive")
	}
	if c.Reconcile.Interval <= 0 {
		return errors.New("RECONCILE_INTERVAL must be positive")
	}
	if c.JWT.TTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
