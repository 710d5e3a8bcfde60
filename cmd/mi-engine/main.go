package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/OilBro/api-510-inspection-manager/internal/alerts"
	"github.com/OilBro/api-510-inspection-manager/internal/api"
	"github.com/OilBro/api-510-inspection-manager/internal/config"
	"github.com/OilBro/api-510-inspection-manager/internal/engine"
	"github.com/OilBro/api-510-inspection-manager/internal/metrics"
	"github.com/OilBro/api-510-inspection-manager/internal/repo"
	"github.com/OilBro/api-510-inspection-manager/internal/services"
	"github.com/OilBro/api-510-inspection-manager/internal/utils"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("path", configPath), slog.Any("error", err))
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Logging.Level, cfg.Logging.JSON)
	logger.Info("starting mi-engine", slog.String("address", cfg.Server.Address))

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Error("failed to register metrics", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var source engine.InspectionSource
	var store engine.ResultStore
	var stressSource engine.StressSource
	var storeNotifier alerts.Notifier

	if cfg.Database.DSN != "" {
		pg, err := repo.Open(ctx, cfg.Database.DSN)
		if err != nil {
			logger.Error("failed to connect to database", slog.Any("error", err))
			os.Exit(1)
		}
		defer pg.Close()
		source = pg
		store = pg
		stressSource = pg
		storeNotifier = pg
	} else {
		logger.Warn("no database configured, using in-memory store")
		memory := repo.NewMemoryStore()
		source = memory
		store = memory
		storeNotifier = memory
	}

	// A YAML stress table takes precedence over database lookups so curated
	// code tables can override imported data.
	if table, err := engine.NewStressTableFromFile(cfg.Materials.TablePath); err != nil {
		logger.Error("failed to load material stress table", slog.String("path", cfg.Materials.TablePath), slog.Any("error", err))
		os.Exit(1)
	} else if table != nil {
		stressSource = table
	}

	notifier := alerts.NewMultiNotifier(
		alerts.NewLogNotifier(logger),
		storeNotifier,
		webhookNotifier(cfg.Alerts),
	)

	pipeline := engine.NewPipeline(logger, source, store, notifier)
	service := services.NewInspectionService(logger, pipeline, stressSource)
	handler := api.NewHandler(logger, service)

	server, err := api.NewServer(cfg.Server, handler.Routes())
	if err != nil {
		logger.Error("failed to create HTTP server", slog.Any("error", err))
		os.Exit(1)
	}

	var metricsServer *http.Server
	if cfg.Server.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsServer = &http.Server{
			Addr:         cfg.Server.MetricsAddress,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", slog.String("address", cfg.Server.MetricsAddress))
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server exited", slog.Any("error", err))
				stop()
			}
		}()
	}

	go func() {
		if serveErr := server.Start(); serveErr != nil {
			logger.Error("HTTP server exited", slog.Any("error", serveErr))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()
	server.Shutdown(shutdownCtx)

	if metricsServer != nil {
		metricsCtx, cancelMetrics := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(metricsCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
		cancelMetrics()
	}

	logger.Info("mi-engine stopped")
}

func webhookNotifier(cfg config.AlertsConfig) alerts.Notifier {
	if cfg.WebhookURL == "" {
		return nil
	}
	return alerts.NewWebhookNotifier(cfg.WebhookURL, cfg.Timeout)
}
