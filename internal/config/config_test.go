package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()
	assert.Equal(t, "sqlite", c.DatabaseDriver)
	assert.Equal(t, "listkeeper.db", c.DatabaseDSN)
	assert.Equal(t, 10*time.Second, c.UndoWindow)
	assert.Equal(t, 16, c.MoneyCacheSize)
	assert.Empty(t, c.S3Bucket)
}

func TestLoadConfig_NoArgs(t *testing.T) {
	withArgs(t)
	want := defaults()
	if diff := cmp.Diff(&want, LoadConfig()); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"database_driver": "pgx",
		"database_dsn":    "postgres://from-json",
		"undo_window":     "30s",
		"s3_bucket":       "json-bucket",
		"locale":          "de",
	})
	withArgs(t, "-c", path, "-dsn", "postgres://from-flag", "-u", "5", "-unknown", "x")

	got := LoadConfig()

	want := defaults()
	want.DatabaseDriver = "pgx"
	want.DatabaseDSN = "postgres://from-flag"
	want.UndoWindow = 5 * time.Second
	want.S3Bucket = "json-bucket"
	want.Locale = "de"
	if diff := cmp.Diff(&want, got); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJson_KeepsMissingFields(t *testing.T) {
	withArgs(t, "-config", writeTempJSON(t, map[string]any{"log_level": "debug", "undo_window": 2000000000}))

	cfg := defaults()
	parseJson(&cfg)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.UndoWindow)
	assert.Equal(t, "listkeeper.db", cfg.DatabaseDSN)
}

func TestParseJson_Panics(t *testing.T) {
	withArgs(t, "-c", filepath.Join(t.TempDir(), "missing.json"))
	assert.Panics(t, func() { parseJson(&Config{}) })

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	withArgs(t, "-c", bad)
	assert.Panics(t, func() { parseJson(&Config{}) })
}

func TestParseArgs(t *testing.T) {
	cfg := defaults()
	parseArgs(&cfg, []string{
		"-d", "pgx", "-l", "warn", "-m", ":9100",
		"-s3-bucket", "b", "-s3-region", "r", "-s3-endpoint", "http://minio:9000",
		"-s3-access-key", "ak", "-s3-secret-key", "sk", "-locale", "fr",
	})
	assert.Equal(t, "pgx", cfg.DatabaseDriver)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":9100", cfg.MetricsAddr)
	assert.Equal(t, "b", cfg.S3Bucket)
	assert.Equal(t, "r", cfg.S3Region)
	assert.Equal(t, "http://minio:9000", cfg.S3BaseEndpoint)
	assert.Equal(t, "ak", cfg.S3AccessKey)
	assert.Equal(t, "sk", cfg.S3SecretKey)
	assert.Equal(t, "fr", cfg.Locale)
	assert.Equal(t, 10*time.Second, cfg.UndoWindow)
}

func TestParseArgs_BadValuePanics(t *testing.T) {
	cfg := defaults()
	assert.Panics(t, func() { parseArgs(&cfg, []string{"-u", "soon"}) })
}
