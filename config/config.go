// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"bitwise74/game-clips/db"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath     = pflag.String("config", ".", "Directory containing config.toml")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

	defaultGames = []string{
		"minecraft.png",
		"fortnite.png",
		"valorant.png",
		"league_of_legends.png",
		"counter_strike.png",
		"rocket_league.png",
	}
)

// Config is the typed view of everything the app needs at startup
type Config struct {
	LogLevel string

	Port        int
	CORSOrigins []string
	SSL         bool
	CertPath    string
	CertKeyPath string

	Database db.Options

	JWTSecret  string
	SessionTTL time.Duration
	RateLimit  int

	LandingCacheTTL time.Duration
}

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	// A .env file is optional, real env vars still win over it
	if err := godotenv.Load(); err == nil {
		zap.L().Debug("Loaded variables from .env")
	}

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	bindEnvs()
	SetDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		fmt.Println("[WARNING]: config.toml not found, using defaults and environment variables")
	}

	if v.GetString("security.jwt_secret") == "" {
		secret := genSecret()
		fmt.Println("[WARNING]: You haven't set a JWT secret, so a random one is used for this run. Sessions won't survive a restart.\nSet security.jwt_secret in config.toml or SECURITY_JWT_SECRET to keep them:\n\n" + secret + "\n")
		v.Set("security.jwt_secret", secret)
	}

	return Validate()
}

func bindEnvs() {
	v.BindEnv("app.log_level", "APP_LOG_LEVEL")

	v.BindEnv("host.port", "HOST_PORT")
	v.BindEnv("host.cors", "HOST_CORS")

	v.BindEnv("host.ssl.enabled", "HOST_SSL_ENABLED")
	v.BindEnv("host.ssl.certificate_path", "HOST_SSL_CERTIFICATE_PATH")
	v.BindEnv("host.ssl.certificate_key_path", "HOST_SSL_CERTIFICATE_KEY_PATH")

	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")

	v.BindEnv("security.jwt_secret", "SECURITY_JWT_SECRET")
	v.BindEnv("security.session_ttl", "SECURITY_SESSION_TTL")
	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT")

	v.BindEnv("games.seed", "GAMES_SEED")

	v.BindEnv("cache.landing_ttl", "CACHE_LANDING_TTL")
}

// SetDefaults is exported so tests can start from the same baseline
func SetDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors", []string{})
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "database.db?_foreign_keys=on")

	v.SetDefault("security.session_ttl", "720h")
	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("games.seed", defaultGames)

	v.SetDefault("cache.landing_ttl", "60s")
}

// Validate checks the values currently held by viper
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if p := v.GetInt("host.port"); p <= 0 || p > 65535 {
		return errors.New("invalid port provided")
	}

	if v.GetBool("host.ssl.enabled") {
		if v.GetString("host.ssl.certificate_path") == "" {
			return errors.New("no ssl certificate path provided")
		}

		if v.GetString("host.ssl.certificate_key_path") == "" {
			return errors.New("no ssl certificate key path provided")
		}
	}

	if !slices.Contains(db.ValidDrivers, v.GetString("database.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("database.dsn") == "" {
		return errors.New("database dsn can't be empty")
	}

	if v.GetString("security.jwt_secret") == "" {
		return errors.New("jwt secret can't be empty")
	}

	if v.GetDuration("security.session_ttl") <= 0 {
		return errors.New("session ttl must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") <= 0 {
		return errors.New("rate limit must be bigger than 0")
	}

	if v.GetDuration("cache.landing_ttl") < 0 {
		return errors.New("landing cache ttl can't be negative")
	}

	return nil
}

// Load builds a Config from viper. Setup has to be called first
func Load() *Config {
	return &Config{
		LogLevel: v.GetString("app.log_level"),

		Port:        v.GetInt("host.port"),
		CORSOrigins: v.GetStringSlice("host.cors"),
		SSL:         v.GetBool("host.ssl.enabled"),
		CertPath:    v.GetString("host.ssl.certificate_path"),
		CertKeyPath: v.GetString("host.ssl.certificate_key_path"),

		Database: db.Options{
			Driver:    v.GetString("database.driver"),
			DSN:       v.GetString("database.dsn"),
			SeedGames: v.GetStringSlice("games.seed"),
		},

		JWTSecret:  v.GetString("security.jwt_secret"),
		SessionTTL: v.GetDuration("security.session_ttl"),
		RateLimit:  v.GetInt("security.rate_limit"),

		LandingCacheTTL: v.GetDuration("cache.landing_ttl"),
	}
}
