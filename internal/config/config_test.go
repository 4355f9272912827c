package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// No config.yaml in this directory; defaults only.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 300*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 60*time.Minute, cfg.Auth.VerifyTokenTTL)
	assert.Equal(t, 512, cfg.S3.ResizedMaxEdge)
	assert.Equal(t, "annotator.mail", cfg.RabbitMQ.ExchangeName)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 1e-9)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ANNOTATOR_APP_ADDR", ":9999")
	t.Setenv("ANNOTATOR_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.App.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
}
