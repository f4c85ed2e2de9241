package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultBcryptCost is used when BCRYPT_COST is unset.
const DefaultBcryptCost = 10

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port      int    `mapstructure:"PORT"`
	Env       string `mapstructure:"APP_ENV"` // development | production
	PublicDir string `mapstructure:"PUBLIC_DIR"`

	// Database
	MongoURI string `mapstructure:"MONGODB_URI"`
	MongoDB  string `mapstructure:"MONGODB_DB"`

	// Auth
	SecretKey  string `mapstructure:"SECRET_KEY"`
	ExpiresIn  string `mapstructure:"EXPIRES_IN"`
	BcryptCost int    `mapstructure:"BCRYPT_COST"`

	// TokenTTL is ExpiresIn parsed by Load.
	TokenTTL time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := newViper()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// BcryptCost reads only BCRYPT_COST, for tools that run without the rest of
// the server configuration.
func BcryptCost() int {
	if cost := newViper().GetInt("BCRYPT_COST"); cost > 0 {
		return cost
	}
	return DefaultBcryptCost
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 4000)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PUBLIC_DIR", "")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB", "prestadores")
	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("EXPIRES_IN", "1h")
	v.SetDefault("BCRYPT_COST", DefaultBcryptCost)

	// Optional .env file for local development; does not fail if missing
	_ = v.ReadInConfig()
	return v
}

func (c *Config) finalize() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	ttl, err := ParseExpiresIn(c.ExpiresIn)
	if err != nil {
		return fmt.Errorf("EXPIRES_IN: %w", err)
	}
	c.TokenTTL = ttl
	return nil
}

// ParseExpiresIn accepts the formats clients of the previous API used in
// EXPIRES_IN: a bare number of seconds ("3600"), Go durations ("15m", "1h30m")
// and day counts ("7d").
func ParseExpiresIn(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}
	var d time.Duration
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(secs) * time.Second
	} else if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.ParseFloat(days, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(n * float64(24*time.Hour))
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, err
		}
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", s)
	}
	return d, nil
}
