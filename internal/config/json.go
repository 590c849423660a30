package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/listkeeper/internal/flagx"
	"github.com/dmitrijs2005/listkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations may
// be given as strings like "10s" or as integer nanoseconds.
type JsonConfig struct {
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	LogLevel       string         `json:"log_level"`
	Locale         string         `json:"locale"`
	UndoWindow     timex.Duration `json:"undo_window"`
	MoneyCacheSize int            `json:"money_cache_size"`
	MetricsAddr    string         `json:"metrics_addr"`
	S3Bucket       string         `json:"s3_bucket"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from the JSON file named by -c
// or -config. Fields missing from the file keep their current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.DatabaseDriver, jc.DatabaseDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.Locale, jc.Locale)
	setString(&cfg.MetricsAddr, jc.MetricsAddr)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.UndoWindow.Duration > 0 {
		cfg.UndoWindow = jc.UndoWindow.Duration
	}
	if jc.MoneyCacheSize > 0 {
		cfg.MoneyCacheSize = jc.MoneyCacheSize
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
