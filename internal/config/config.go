package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr    string         `yaml:"http_addr"`
	JWTSecret   string         `yaml:"jwt_secret"`
	TokenTTL    time.Duration  `yaml:"token_ttl"`
	AdminEmail  string         `yaml:"admin_email"`
	AdminPass   string         `yaml:"admin_pass"`
	UploadDir   string         `yaml:"upload_dir"`
	CORSOrigins []string       `yaml:"cors_origins"`
	Database    DatabaseConfig `yaml:"database"`
	Log         LogConfig      `yaml:"log"`
}

type DatabaseConfig struct {
	// Driver is one of postgres, mysql or sqlite.
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	GelfAddr   string `yaml:"gelf_addr"`
}

func Default() *Config {
	return &Config{
		HTTPAddr:    ":8080",
		JWTSecret:   "fleetdocs-dev-secret-change-me",
		TokenTTL:    24 * time.Hour,
		AdminEmail:  "admin@fleetdocs.local",
		AdminPass:   "admin123",
		UploadDir:   "files",
		CORSOrigins: []string{"*"},
		Database: DatabaseConfig{
			Driver:       "postgres",
			DSN:          "postgresql://postgres@localhost:5432/fleetdocs",
			MaxOpenConns: 10,
			MaxIdleConns: 3,
		},
		Log: LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
	}
}

// Load builds the configuration from defaults, then the optional YAML file,
// then a .env file in the working directory, then FLEET_* environment
// variables.
func Load(configFile string) (*Config, error) {
	cfg := Default()
	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", configFile, err)
		}
	}
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg.HTTPAddr = getEnv("FLEET_ADDR", cfg.HTTPAddr)
	cfg.JWTSecret = getEnv("FLEET_JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTL = getEnvDuration("FLEET_TOKEN_TTL", cfg.TokenTTL)
	cfg.AdminEmail = getEnv("FLEET_ADMIN_EMAIL", cfg.AdminEmail)
	cfg.AdminPass = getEnv("FLEET_ADMIN_PASS", cfg.AdminPass)
	cfg.UploadDir = getEnv("FLEET_UPLOAD_DIR", cfg.UploadDir)
	cfg.Database.Driver = getEnv("FLEET_DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = getEnv("DATABASE_URL", cfg.Database.DSN)
	cfg.Database.MaxOpenConns = getEnvInt("FLEET_DB_MAX_OPEN", cfg.Database.MaxOpenConns)
	cfg.Database.MaxIdleConns = getEnvInt("FLEET_DB_MAX_IDLE", cfg.Database.MaxIdleConns)
	cfg.Log.Level = getEnv("FLEET_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("FLEET_LOG_FILE", cfg.Log.File)
	cfg.Log.GelfAddr = getEnv("FLEET_GELF_ADDR", cfg.Log.GelfAddr)

	switch cfg.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}
