package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/flagx"
)

var knownFlags = []string{
	"-d", "-dsn", "-l", "-locale", "-u", "-m",
	"-s3-bucket", "-s3-region", "-s3-endpoint", "-s3-access-key", "-s3-secret-key",
}

// parseFlags populates Config fields from command-line flags.
//
//	-d string              database driver: sqlite or pgx
//	-dsn string            database file or connection string
//	-l string              log level
//	-locale string         locale for money formatting
//	-u int                 undo window (in seconds)
//	-m string              address serving /metrics
//	-s3-bucket string      export bucket
//	-s3-region string      export bucket region
//	-s3-endpoint string    S3-compatible endpoint URL
//	-s3-access-key string  static access key
//	-s3-secret-key string  static secret key
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// layers (such as -c) do not make parsing fail.
func parseFlags(cfg *Config) {
	parseArgs(cfg, os.Args[1:])
}

func parseArgs(cfg *Config, argv []string) {
	args := flagx.FilterArgs(argv, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDriver, "d", cfg.DatabaseDriver, "database driver (sqlite or pgx)")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "database file or connection string")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for money formatting")
	undoWindow := fs.Int("u", int(cfg.UndoWindow.Seconds()), "undo window (in seconds)")
	fs.StringVar(&cfg.MetricsAddr, "m", cfg.MetricsAddr, "address serving /metrics")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "export bucket")
	fs.StringVar(&cfg.S3Region, "s3-region", cfg.S3Region, "export bucket region")
	fs.StringVar(&cfg.S3BaseEndpoint, "s3-endpoint", cfg.S3BaseEndpoint, "S3-compatible endpoint")
	fs.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.UndoWindow = time.Duration(*undoWindow) * time.Second
}
