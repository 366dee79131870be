package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
	Log       LogConfig       `yaml:"log"`
	Strength  StrengthConfig  `yaml:"strength"`
	// UserLogin is the user requests are attributed to when no Tailscale
	// identity is available.
	UserLogin string `yaml:"user_login"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	Name           string `yaml:"name"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	SSLMode        string `yaml:"sslmode"`
	MaxConns       int32  `yaml:"max_conns"`
	MigrationsPath string `yaml:"migrations_path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // optional rotating log file
}

type StrengthConfig struct {
	StandardsFile           string  `yaml:"standards_file"`
	RestSeconds             int     `yaml:"rest_seconds"`
	RecommendationCacheTTL  int     `yaml:"recommendation_cache_ttl_seconds"`
	RecommendationIncrement float64 `yaml:"recommendation_increment"`
}

// Rest returns the rest timer duration.
func (s StrengthConfig) Rest() time.Duration {
	return time.Duration(s.RestSeconds) * time.Second
}

// CacheTTL returns how long personal records stay cached.
func (s StrengthConfig) CacheTTL() time.Duration {
	return time.Duration(s.RecommendationCacheTTL) * time.Second
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix LIFTRANK_ and underscore-separated paths:
//
//	LIFTRANK_SERVER_HOST, LIFTRANK_SERVER_PORT,
//	LIFTRANK_DB_HOST, LIFTRANK_DB_PORT, LIFTRANK_DB_NAME,
//	LIFTRANK_DB_USER, LIFTRANK_DB_PASSWORD, LIFTRANK_DB_SSLMODE,
//	LIFTRANK_AUTH_API_KEY, LIFTRANK_TAILSCALE_ENABLED,
//	LIFTRANK_LOG_LEVEL, LIFTRANK_LOG_FORMAT, LIFTRANK_LOG_FILE,
//	LIFTRANK_STANDARDS_FILE, LIFTRANK_USER_LOGIN
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{MigrationsPath: "migrations"},
		Log:      LogConfig{Level: "info", Format: "text"},
		Strength: StrengthConfig{
			RestSeconds:             90,
			RecommendationCacheTTL:  300,
			RecommendationIncrement: 5,
		},
		Tailscale: TailscaleConfig{Hostname: "liftrank"},
		UserLogin: "local",
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTRANK_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTRANK_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTRANK_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFTRANK_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFTRANK_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFTRANK_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFTRANK_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFTRANK_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFTRANK_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("LIFTRANK_TAILSCALE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("LIFTRANK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LIFTRANK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LIFTRANK_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("LIFTRANK_STANDARDS_FILE"); v != "" {
		cfg.Strength.StandardsFile = v
	}
	if v := os.Getenv("LIFTRANK_USER_LOGIN"); v != "" {
		cfg.UserLogin = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale is enabled")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if c.Strength.RestSeconds < 0 {
		return fmt.Errorf("strength.rest_seconds must not be negative")
	}
	if c.Strength.RecommendationIncrement < 0 {
		return fmt.Errorf("strength.recommendation_increment must not be negative")
	}
	if c.UserLogin == "" {
		return fmt.Errorf("user_login is required")
	}
	return nil
}
