package config_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	chatskema "github.com/reoring/chatskema"
	"github.com/reoring/chatskema/internal/config"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Lang:          "en",
		LogLevel:      "warn",
		DuplicateKeys: "error",
		MaxDepth:      128,
		NumberMode:    "exact",
	}, cfg)

	opt, err := cfg.DecodeOpt(nil)
	require.NoError(t, err)
	assert.Equal(t, chatskema.Error, opt.OnDuplicateKey)
	assert.Equal(t, chatskema.NumberExact, opt.NumberMode)
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"CHATSKEMA_LANG":           "ja",
		"CHATSKEMA_DUPLICATE_KEYS": "warn",
		"CHATSKEMA_MAX_BYTES":      "4096",
		"CHATSKEMA_NUMBER_MODE":    "float64",
		"CHATSKEMA_FAIL_FAST":      "true",
		"LANG":                     "ignored-without-prefix",
	})
	require.NoError(t, err)
	assert.Equal(t, "ja", cfg.Lang)

	opt, err := cfg.DecodeOpt(nil)
	require.NoError(t, err)
	assert.Equal(t, chatskema.Warn, opt.OnDuplicateKey)
	assert.Equal(t, int64(4096), opt.MaxBytes)
	assert.Equal(t, chatskema.NumberFloat64, opt.NumberMode)
	assert.True(t, opt.FailFast)
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"duplicate keys": {"CHATSKEMA_DUPLICATE_KEYS": "sometimes"},
		"number mode":    {"CHATSKEMA_NUMBER_MODE": "decimal"},
		"depth type":     {"CHATSKEMA_MAX_DEPTH": "deep"},
		"negative":       {"CHATSKEMA_MAX_DEPTH": "-1"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.LoadFrom(environ)
			assert.Error(t, err)
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := config.Config{LogLevel: "info"}.Logger(&buf)
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	_, err = config.Config{LogLevel: "loud"}.Logger(&buf)
	assert.Error(t, err)
}
