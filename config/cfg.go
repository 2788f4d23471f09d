package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	httpapi "github.com/jekabolt/grbpwr-waitlist/internal/api/http"
	"github.com/jekabolt/grbpwr-waitlist/internal/apisrv/auth"
	"github.com/jekabolt/grbpwr-waitlist/internal/store"
	"github.com/jekabolt/grbpwr-waitlist/internal/waitlist"
	"github.com/jekabolt/grbpwr-waitlist/log"
	"github.com/spf13/viper"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

// StorageConfig selects the repository backend.
type StorageConfig struct {
	Type string `mapstructure:"type"`
}

// Config represents the global configuration for the service.
type Config struct {
	Storage  StorageConfig   `mapstructure:"storage"`
	DB       store.Config    `mapstructure:"mysql"`
	Logger   log.Config      `mapstructure:"logger"`
	HTTP     httpapi.Config  `mapstructure:"http"`
	Auth     auth.Config     `mapstructure:"auth"`
	Waitlist waitlist.Config `mapstructure:"waitlist"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Nested config keys use double underscore, e.g., MYSQL__DSN for mysql.dsn,
// the common ones also have flat names, e.g., MYSQL_DSN or AUTH_JWT_SECRET.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))
	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			// If config file doesn't exist, continue with env vars only
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/grbpwr-waitlist")
		v.AddConfigPath("/etc/grbpwr-waitlist")
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	switch config.Storage.Type {
	case StorageMySQL, StorageMemory:
	default:
		return nil, fmt.Errorf("unknown storage type %q", config.Storage.Type)
	}

	// Handle MySQL DSN construction from individual env vars if DSN is not set
	if config.Storage.Type == StorageMySQL && config.DB.DSN == "" {
		mysqlHost := os.Getenv("MYSQL_HOST")
		mysqlPort := os.Getenv("MYSQL_PORT")
		mysqlUser := os.Getenv("MYSQL_USER")
		mysqlPassword := os.Getenv("MYSQL_PASSWORD")
		mysqlDatabase := os.Getenv("MYSQL_DATABASE")

		if mysqlHost != "" {
			if mysqlPort == "" {
				mysqlPort = "3306"
			}
			if mysqlUser != "" && mysqlPassword != "" && mysqlDatabase != "" {
				config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true",
					mysqlUser, mysqlPassword, mysqlHost, mysqlPort, mysqlDatabase)
			}
		}
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", StorageMySQL)
	v.SetDefault("http.port", "8081")
	v.SetDefault("http.request_timeout", "60s")
	v.SetDefault("auth.jwt_ttl", "60m")
	v.SetDefault("waitlist.enabled", true)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (MYSQL__DSN) and flat keys (MYSQL_DSN)
func bindEnvVars(v *viper.Viper) {
	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")

	// MySQL
	v.BindEnv("mysql.dsn", "MYSQL_DSN")
	v.BindEnv("mysql.automigrate", "MYSQL_AUTOMIGRATE")
	v.BindEnv("mysql.max_open_connections", "MYSQL_MAX_OPEN_CONNECTIONS")
	v.BindEnv("mysql.max_idle_connections", "MYSQL_MAX_IDLE_CONNECTIONS")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.request_timeout", "HTTP_REQUEST_TIMEOUT")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.jwt_ttl", "AUTH_JWT_TTL")

	// Waitlist
	v.BindEnv("waitlist.enabled", "WAITLIST_ENABLED")
	v.BindEnv("waitlist.allowed_domains", "WAITLIST_ALLOWED_DOMAINS")
	v.BindEnv("waitlist.maximum_participants", "WAITLIST_MAXIMUM_PARTICIPANTS")
	v.BindEnv("waitlist.disable_sign_in_and_sign_up", "WAITLIST_DISABLE_SIGN_IN_AND_SIGN_UP")
	v.BindEnv("waitlist.auto_approve", "WAITLIST_AUTO_APPROVE")
	v.BindEnv("waitlist.admin_role", "WAITLIST_ADMIN_ROLE")
	v.BindEnv("waitlist.default_limit", "WAITLIST_DEFAULT_LIMIT")
	v.BindEnv("waitlist.max_limit", "WAITLIST_MAX_LIMIT")
}
