// Package config loads the command-line configuration from the environment.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	chatskema "github.com/reoring/chatskema"
)

// EnvPrefix prefixes every variable read by Load.
const EnvPrefix = "CHATSKEMA_"

// Config holds the settings shared by all commands. Flags override it.
type Config struct {
	Lang          string `env:"LANG"           envDefault:"en"`
	LogLevel      string `env:"LOG_LEVEL"      envDefault:"warn"`
	DuplicateKeys string `env:"DUPLICATE_KEYS" envDefault:"error"`
	MaxDepth      int    `env:"MAX_DEPTH"      envDefault:"128"`
	MaxBytes      int64  `env:"MAX_BYTES"      envDefault:"0"`
	NumberMode    string `env:"NUMBER_MODE"    envDefault:"exact"`
	FailFast      bool   `env:"FAIL_FAST"      envDefault:"false"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix})
}

// LoadFrom reads the configuration from environ instead of the process
// environment. Keys include the prefix.
func LoadFrom(environ map[string]string) (Config, error) {
	return parse(env.Options{Prefix: EnvPrefix, Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.DecodeOpt(nil); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeOpt converts the reader settings into decode options.
func (c Config) DecodeOpt(log *zap.Logger) (chatskema.DecodeOpt, error) {
	opt := chatskema.DecodeOpt{
		MaxDepth: c.MaxDepth,
		MaxBytes: c.MaxBytes,
		FailFast: c.FailFast,
		Logger:   log,
	}
	switch strings.ToLower(c.DuplicateKeys) {
	case "ignore":
		opt.OnDuplicateKey = chatskema.Ignore
	case "warn":
		opt.OnDuplicateKey = chatskema.Warn
	case "error", "":
		opt.OnDuplicateKey = chatskema.Error
	default:
		return opt, fmt.Errorf("config: duplicate keys must be ignore, warn or error, got %q", c.DuplicateKeys)
	}
	switch strings.ToLower(c.NumberMode) {
	case "exact", "":
		opt.NumberMode = chatskema.NumberExact
	case "float64":
		opt.NumberMode = chatskema.NumberFloat64
	default:
		return opt, fmt.Errorf("config: number mode must be exact or float64, got %q", c.NumberMode)
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return opt, fmt.Errorf("config: limits must not be negative")
	}
	return opt, nil
}

// Logger builds a console logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
