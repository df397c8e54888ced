// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported values for DB_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config holds the application settings.
type Config struct {
	AppPort             string
	DBDriver            string
	DatabaseDSN         string
	JWTSecret           string
	TokenTTL            time.Duration
	BcryptCost          int
	ContactsOwnerScoped bool
	RabbitMQURL         string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":5000")
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=contactbook port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "0s")
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("CONTACTS_OWNER_SCOPED", false)
	v.SetDefault("RABBITMQ_URL", "")
}

// Load reads configuration from envFile (when it exists) and the process
// environment, which takes precedence. An empty envFile skips the file.
func Load(v *viper.Viper, envFile string) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	cfg := Config{
		AppPort:             v.GetString("APP_PORT"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		JWTSecret:           v.GetString("JWT_SECRET"),
		TokenTTL:            v.GetDuration("TOKEN_TTL"),
		BcryptCost:          v.GetInt("BCRYPT_COST"),
		ContactsOwnerScoped: v.GetBool("CONTACTS_OWNER_SCOPED"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
	}
	if !strings.HasPrefix(cfg.AppPort, ":") && !strings.Contains(cfg.AppPort, ":") {
		// PORT-style values such as "5000"
		cfg.AppPort = ":" + cfg.AppPort
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.DBDriver != DriverMemory && c.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL < 0 {
		return errors.New("TOKEN_TTL must not be negative")
	}
	return nil
}
