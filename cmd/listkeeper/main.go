package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/buildinfo"
	"github.com/dmitrijs2005/listkeeper/internal/cli"
	"github.com/dmitrijs2005/listkeeper/internal/config"
	"github.com/dmitrijs2005/listkeeper/internal/logging"
	"github.com/dmitrijs2005/listkeeper/internal/metrics"
	"github.com/dmitrijs2005/listkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/listkeeper/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	initSignalHandler(cancel)

	if err := run(ctx, cfg, logger); err != nil {
		log.Fatalf("%v", err)
	}
}

func initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	db, repos, err := repomanager.InitDatabase(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, cfg.MetricsAddr, reg, logger)
	}

	app := cli.NewApp(cfg, services.NewPlanService(repos, logger), logger, m)
	app.Run(ctx)
	return nil
}

// serveMetrics exposes reg on /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error(ctx, "metrics server failed", "error", err)
	}
}
