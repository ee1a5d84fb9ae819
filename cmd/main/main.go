package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/UnknownOlympus/athena/internal/access"
	"github.com/UnknownOlympus/athena/internal/appconfig"
	"github.com/UnknownOlympus/athena/internal/config"
	"github.com/UnknownOlympus/athena/internal/form"
	"github.com/UnknownOlympus/athena/internal/i18n"
	"github.com/UnknownOlympus/athena/internal/metrics"
	"github.com/UnknownOlympus/athena/internal/repository"
	"github.com/UnknownOlympus/athena/internal/server"
	"github.com/UnknownOlympus/athena/internal/services/employees"
	"github.com/UnknownOlympus/athena/internal/services/sickleaves"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	var wgr sync.WaitGroup
	delta := 2

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)
	logger.DebugContext(ctx, "Configuration loaded", "config", cfg.String())

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	appCfg, err := appconfig.New(cfg.App)
	if err != nil {
		log.Fatalf("Invalid app configuration: %v", err)
	}
	authorizer, err := access.NewAuthorizer(appCfg)
	if err != nil {
		log.Fatalf("Invalid abilities: %v", err)
	}
	translator, err := i18n.New(cfg.DefaultLocale)
	if err != nil {
		log.Fatalf("Failed to load locales: %v", err)
	}

	dtb, err := repository.NewDatabase(ctx,
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Dbname)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	employeeRepo := repository.NewEmployeeRepository(dtb, appMetrics)
	sickLeaveRepo := repository.NewSickLeaveRepository(dtb, appMetrics)
	staff := employees.NewStaff(logger, employeeRepo)
	sickLeaves := sickleaves.NewService(logger, sickLeaveRepo)

	web, err := server.New(server.Deps{
		Log:          logger,
		Metrics:      appMetrics,
		Translator:   translator,
		AppConfig:    appCfg,
		Authorizer:   authorizer,
		SickLeaves:   sickLeaves,
		Employees:    staff,
		Inflight:     form.NewInflight(0),
		JWTSecret:    cfg.Auth.JWTSecret,
		SessionTTL:   cfg.Auth.SessionTTL,
		CookieSecure: cfg.Auth.CookieSecure,

		ShowErrorDetail: cfg.Env != envProd,
	})
	if err != nil {
		log.Fatalf("Failed to build web server: %v", err)
	}

	wgr.Add(delta)

	go func() {
		defer wgr.Done()
		server.StartMonitoringServer(ctx, logger, reg, dtb, cfg.MonitoringPort)
	}()

	go func() {
		defer wgr.Done()
		srv := &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           web.Handler(),
			ReadHeaderTimeout: cfg.HTTP.ReadTimeout,
			ReadTimeout:       cfg.HTTP.ReadTimeout,
			WriteTimeout:      cfg.HTTP.WriteTimeout,
			IdleTimeout:       cfg.HTTP.IdleTimeout,
		}
		server.Serve(ctx, logger, srv, "web")
		stop()
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.",
		"application", appCfg.ApplicationName(), "address", cfg.HTTP.Address)

	wgr.Wait()

	logger.InfoContext(context.Background(), "Application stopped gracefully...")
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: false,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelInfo,
				AddSource: false,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				AddSource:   false,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")
	}

	return log
}

func dropTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey {
		return slog.Attr{Key: "", Value: slog.Value{}}
	}
	return a
}
