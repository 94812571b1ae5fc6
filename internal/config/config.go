package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string        `yaml:"port" env:"SERVER_PORT"`
	Mode            string        `yaml:"mode" env:"SERVER_MODE"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig selects and configures the storage backend
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"DB_DRIVER"`
	Host            string        `yaml:"host" env:"DB_HOST"`
	Port            string        `yaml:"port" env:"DB_PORT"`
	User            string        `yaml:"user" env:"DB_USER"`
	Password        string        `yaml:"password" env:"DB_PASSWORD"`
	DBName          string        `yaml:"dbname" env:"DB_NAME"`
	SSLMode         string        `yaml:"sslmode" env:"DB_SSLMODE"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	MigrationsDir   string        `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	SQLitePath      string        `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

// JWTConfig holds token signing settings
type JWTConfig struct {
	Secret                string        `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiration time.Duration `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
	Issuer                string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// RecommendationConfig tunes the recommendation builder
type RecommendationConfig struct {
	ExcludeExpired bool `yaml:"exclude_expired" env:"RECOMMENDATION_EXCLUDE_EXPIRED"`
	FallbackLimit  int  `yaml:"fallback_limit" env:"RECOMMENDATION_FALLBACK_LIMIT"`
	ListLimit      int  `yaml:"list_limit" env:"RECOMMENDATION_LIST_LIMIT"`
}

// SeedConfig controls startup seeding
type SeedConfig struct {
	Enabled       bool   `yaml:"enabled" env:"SEED_ENABLED"`
	AdminEmail    string `yaml:"admin_email" env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `yaml:"admin_password" env:"SEED_ADMIN_PASSWORD"`
}

// Config structure represents the application configuration
type Config struct {
	Server         ServerConfig         `yaml:"server"`
	Database       DatabaseConfig       `yaml:"database"`
	JWT            JWTConfig            `yaml:"jwt"`
	Logging        LoggingConfig        `yaml:"logging"`
	Recommendation RecommendationConfig `yaml:"recommendation"`
	Seed           SeedConfig           `yaml:"seed"`
}

// LoadConfig loads configuration from defaults, the YAML file at configPath,
// a .env file in the working directory and finally the process environment.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := LoadDotEnv(".env"); err != nil {
		return nil, err
	}

	if err := ParseEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Mode:            "development",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "postgres",
			DBName:          "scholarmatch",
			SSLMode:         "disable",
			MaxIdleConns:    5,
			MaxOpenConns:    20,
			ConnMaxLifetime: time.Hour,
			MigrationsDir:   "",
			SQLitePath:      "data/scholarmatch.db",
		},
		JWT: JWTConfig{
			AccessTokenExpiration: 24 * time.Hour,
			Issuer:                "scholarmatch.app",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Recommendation: RecommendationConfig{
			ExcludeExpired: false,
			FallbackLimit:  5,
			ListLimit:      10,
		},
		Seed: SeedConfig{
			Enabled:    true,
			AdminEmail: "admin@scholarmatch.app",
		},
	}
}

// Validate ensures that the configuration is usable. The JWT secret is checked by
// the API bootstrap, since command-line tools do not sign tokens.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Database.Driver) {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
	case DriverSQLite:
		if strings.TrimSpace(c.Database.SQLitePath) == "" {
			return fmt.Errorf("sqlite path is required")
		}
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)

	if c.JWT.AccessTokenExpiration <= 0 {
		return fmt.Errorf("JWT access token expiration must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server shutdown timeout must be positive")
	}
	if c.Recommendation.FallbackLimit < 0 {
		return fmt.Errorf("recommendation fallback limit must not be negative")
	}
	if c.Recommendation.ListLimit < 0 {
		return fmt.Errorf("recommendation list limit must not be negative")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
