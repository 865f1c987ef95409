package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

type Config struct {
	Environment               string        `koanf:"environment"`
	Hostname                  string        `koanf:"-"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseMaxRetries        int           `koanf:"database_max_retries"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`

	// JWTSecret signs access tokens. Loaded once at startup; there is no
	// runtime rotation.
	JWTSecret         string        `koanf:"jwt_secret"`
	AccessTokenExpiry time.Duration `koanf:"access_token_expiry"`

	// Bootstrap credentials for the single superuser, created at startup if
	// no superuser exists yet.
	SuperuserUsername string `koanf:"superuser_username"`
	SuperuserEmail    string `koanf:"superuser_email"`
	SuperuserPassword string `koanf:"superuser_password"`
}

const (
	environmentENV = "ENVIRONMENT"
	envPrefix      = "MYLIBRARY_"
)

// New loads the configuration: per-environment defaults, then the optional
// config.yaml file, then MYLIBRARY_* environment variables.
func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		Hostname:                  hostname,
		ServerPort:                8000,
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseMaxRetries:        5,
		DatabaseBusyTimeout:       5 * time.Second,
		AccessTokenExpiry:         30 * time.Minute,
		SuperuserUsername:         "admin",
		SuperuserEmail:            "admin@example.com",
	}

	cfg.Environment = os.Getenv(environmentENV)
	switch cfg.Environment {
	case "development", "":
		cfg.Environment = "development"
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	if err := loadOverrides(cfg); err != nil {
		return nil, err
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("jwt_secret is required (set MYLIBRARY_JWT_SECRET or config.yaml)")
	}

	return cfg, nil
}

func loadOverrides(cfg *Config) error {
	k := koanf.New(".")

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return errors.Wrapf(err, "failed to load config file: %s", path)
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	// Unmarshal only sets keys that are present, so defaults survive.
	if err := k.Unmarshal("", cfg); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
