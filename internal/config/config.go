// Package config loads service settings from the environment
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/cosmo-api/internal/errors"
	"github.com/KirkDiggler/cosmo-api/internal/redis"
)

// Config holds every setting the server reads at startup
type Config struct {
	GRPCPort int `env:"GRPC_PORT" envDefault:"50051"`
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	RedisAddr   string     `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisMode   redis.Mode `env:"REDIS_MODE" envDefault:"single"`
	RedisMaster string     `env:"REDIS_MASTER"`
	RedisTLS    bool       `env:"REDIS_TLS" envDefault:"false"`

	// RosterFile and RosterDB are alternative roster sources, the file wins
	// when both are set
	RosterFile     string        `env:"ROSTER_FILE"`
	RosterDB       string        `env:"ROSTER_DB"`
	RosterCacheTTL time.Duration `env:"ROSTER_CACHE_TTL" envDefault:"1h"`

	ShareTTL         time.Duration `env:"SHARE_TTL" envDefault:"720h"`
	ShortCodeLength  int           `env:"SHORT_CODE_LENGTH" envDefault:"6"`
	ShareMaxAttempts int           `env:"SHARE_MAX_ATTEMPTS" envDefault:"10"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file, then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv never overrides variables already set. Missing default files
// are skipped; explicitly named files must exist.
func loadDotEnv(files []string) error {
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		files = []string{".env"}
	}

	if err := godotenv.Load(files...); err != nil {
		return errors.WrapWithCodef(err, errors.CodeInvalidArgument, "load %s", strings.Join(files, ", "))
	}
	return nil
}

// Validate checks ranges and cross-field requirements
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	validatePort("GRPC_PORT", c.GRPCPort, vb)
	validatePort("HTTP_PORT", c.HTTPPort, vb)
	if c.GRPCPort == c.HTTPPort && c.GRPCPort != 0 {
		vb.Field("HTTP_PORT", "must differ from GRPC_PORT")
	}

	errors.ValidateRequired("REDIS_ADDR", c.RedisAddr, vb)
	errors.ValidateEnum("REDIS_MODE", string(c.RedisMode),
		[]string{string(redis.ModeSingle), string(redis.ModeCluster), string(redis.ModeSentinel)}, vb)
	if c.RedisMode == redis.ModeSentinel {
		errors.ValidateRequired("REDIS_MASTER", c.RedisMaster, vb)
	}

	if c.RosterCacheTTL < 0 {
		vb.Field("ROSTER_CACHE_TTL", "cannot be negative")
	}
	if c.ShareTTL <= 0 {
		vb.Field("SHARE_TTL", "must be positive")
	}
	if c.ShortCodeLength < 4 || c.ShortCodeLength > 32 {
		vb.Field("SHORT_CODE_LENGTH", "must be between 4 and 32")
	}
	if c.ShareMaxAttempts < 1 {
		vb.Field("SHARE_MAX_ATTEMPTS", "must be at least 1")
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		vb.Field("LOG_LEVEL", "must be one of debug, info, warn, error")
	}

	return vb.Build()
}

func validatePort(field string, port int, vb *errors.ValidationBuilder) {
	if port < 0 || port > 65535 {
		vb.Fieldf(field, "must be between 0 and 65535, got %d", port)
	}
}

// RedisConfig builds the client settings
func (c *Config) RedisConfig() *redis.Config {
	return &redis.Config{
		Mode:       c.RedisMode,
		Addr:       c.RedisAddr,
		MasterName: c.RedisMaster,
		Options:    &redis.Options{UseTLS: c.RedisTLS},
	}
}

// NewLogger builds a production zap logger at the configured level
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "parse log level")
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err := zcfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "build logger")
	}
	return logger, nil
}
