package config

import "time"

// Config holds runtime settings for the listkeeper CLI.
//
// Fields:
//   - DatabaseDriver: "sqlite" (local file) or "pgx" (PostgreSQL).
//   - DatabaseDSN: file path or connection string for the driver.
//   - LogLevel: debug, info, warn or error.
//   - Locale: BCP 47 tag used for money formatting.
//   - UndoWindow: how long "undo" can restore a cleared batch.
//   - MoneyCacheSize: number of cached currency formatters.
//   - MetricsAddr: host:port serving /metrics; empty disables it.
//   - S3Bucket / S3Region / S3BaseEndpoint / S3AccessKey / S3SecretKey:
//     object storage used by "export".
type Config struct {
	DatabaseDriver string
	DatabaseDSN    string
	LogLevel       string
	Locale         string
	UndoWindow     time.Duration
	MoneyCacheSize int
	MetricsAddr    string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = "sqlite"
	c.DatabaseDSN = "listkeeper.db"
	c.LogLevel = "info"
	c.Locale = "en"
	c.UndoWindow = 10 * time.Second
	c.MoneyCacheSize = 16
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
