package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig
	Server  ServerConfig
	TLS     TLSConfig
	Redis   RedisConfig
	Session SessionConfig
	Metrics MetricsConfig
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string // brand shown in the rail and page titles
	Version     string
	Environment string // development, staging, production
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     string
	Protocol string // http or https
	Domain   string
}

// TLSConfig holds TLS/HTTPS certificate settings
type TLSConfig struct {
	Enabled  bool
	CertFile string
	KeyFile  string
}

// RedisConfig holds the optional Redis backend. An empty Addr keeps shell state in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig holds the shell session cookie settings
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Namespace string
}

// LoadConfig loads configuration from environment variables, reading a .env
// file first when one exists.
func LoadConfig(logger *slog.Logger) (*Config, error) {
	godotenv.Load()

	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("loading application configuration")

	config := &Config{}

	loadAppConfig(&config.App, logger)

	if err := loadServerConfig(&config.Server, logger); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	loadTLSConfig(&config.TLS, logger)
	loadRedisConfig(&config.Redis, logger)

	if err := loadSessionConfig(&config.Session, config.TLS.Enabled, logger); err != nil {
		return nil, fmt.Errorf("failed to load session config: %w", err)
	}

	config.Metrics.Namespace = getEnv("METRICS_NAMESPACE", "legal_dashboard")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger.Info("configuration loaded successfully",
		"environment", config.App.Environment,
		"version", config.App.Version,
		"port", config.Server.Port,
		"redis", config.Redis.Addr != "",
	)

	return config, nil
}

func loadAppConfig(cfg *AppConfig, logger *slog.Logger) {
	cfg.Name = getEnv("APP_NAME", "Legal Desk")

	cfg.Version = os.Getenv("VERSION")
	if cfg.Version == "" {
		cfg.Version = "1.0.0"
		logger.Warn("VERSION not set, using default", "default", cfg.Version)
	}

	cfg.Environment = os.Getenv("ENV")
	if cfg.Environment == "" {
		cfg.Environment = "development"
		logger.Warn("ENV not set, using default", "default", cfg.Environment)
	}
}

func loadServerConfig(cfg *ServerConfig, logger *slog.Logger) error {
	port := os.Getenv("PORT")
	if port == "" {
		return fmt.Errorf("PORT environment variable is required")
	}
	cfg.Port = port

	cfg.Protocol = os.Getenv("PROTOCOL")
	if cfg.Protocol == "" {
		cfg.Protocol = "http"
		logger.Warn("PROTOCOL not set, using default", "default", cfg.Protocol)
	}

	cfg.Domain = os.Getenv("DOMAIN")
	if cfg.Domain == "" {
		cfg.Domain = "localhost"
		logger.Warn("DOMAIN not set, using default", "default", cfg.Domain)
	}

	return nil
}

func loadTLSConfig(cfg *TLSConfig, logger *slog.Logger) {
	cfg.CertFile = os.Getenv("TLS_CERT_FILE")
	cfg.KeyFile = os.Getenv("TLS_KEY_FILE")
	cfg.Enabled = cfg.CertFile != "" && cfg.KeyFile != ""

	if cfg.Enabled {
		logger.Info("TLS enabled", "cert_file", cfg.CertFile, "key_file", cfg.KeyFile)
	}
}

func loadRedisConfig(cfg *RedisConfig, logger *slog.Logger) {
	cfg.Addr = os.Getenv("REDIS_ADDR")
	cfg.Password = os.Getenv("REDIS_PASSWORD")
	cfg.DB = getEnvAsInt("REDIS_DB", 0)

	if cfg.Addr != "" {
		logger.Debug("Redis config loaded", "addr", cfg.Addr, "db", cfg.DB)
	}
}

func loadSessionConfig(cfg *SessionConfig, tls bool, logger *slog.Logger) error {
	cfg.CookieName = getEnv("SESSION_COOKIE_NAME", "shell_session")

	raw := os.Getenv("SESSION_TTL_HOURS")
	hours := 24
	if raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("SESSION_TTL_HOURS must be an integer: %w", err)
		}
		hours = parsed
	}
	cfg.TTL = time.Duration(hours) * time.Hour

	cfg.Secure = getEnvAsBool("SESSION_COOKIE_SECURE", tls)

	logger.Debug("session config loaded",
		"cookie", cfg.CookieName,
		"ttl", cfg.TTL.String(),
		"secure", cfg.Secure,
	)
	return nil
}

// Helper functions

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetServerAddress returns the full server address (protocol://domain:port)
func (c *Config) GetServerAddress() string {
	if c.Server.Protocol == "https" && c.Server.Port == "443" {
		return fmt.Sprintf("https://%s", c.Server.Domain)
	}
	if c.Server.Protocol == "http" && c.Server.Port == "80" {
		return fmt.Sprintf("http://%s", c.Server.Domain)
	}
	return fmt.Sprintf("%s://%s:%s", c.Server.Protocol, c.Server.Domain, c.Server.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if c.Session.TTL <= 0 {
		return errors.New("session TTL must be positive")
	}
	if c.Session.CookieName == "" {
		return errors.New("session cookie name is required")
	}
	if c.IsProduction() && !c.Session.Secure {
		return errors.New("session cookie must be secure in production")
	}
	return nil
}
