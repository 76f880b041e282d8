package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"auditlink/internal/audit"
	"auditlink/internal/catalog"
	catalogservice "auditlink/internal/catalog/service"
	evidencestore "auditlink/internal/catalog/store/evidence"
	requirementstore "auditlink/internal/catalog/store/requirement"
	"auditlink/internal/coverage"
	"auditlink/internal/jwtauth"
	linkhandler "auditlink/internal/link/handler"
	linkmetrics "auditlink/internal/link/metrics"
	linkservice "auditlink/internal/link/service"
	linkstore "auditlink/internal/link/store"
	"auditlink/internal/platform/config"
	"auditlink/internal/platform/httpserver"
	"auditlink/internal/platform/logger"
	"auditlink/internal/platform/metrics"
	"auditlink/internal/platform/postgres"
	platformredis "auditlink/internal/platform/redis"
	"auditlink/internal/selection"
	httptransport "auditlink/internal/transport/http"
	id "auditlink/pkg/domain"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run wires the dependency graph and owns the server lifecycle. Empty DSN
// or redis URL falls back to the in-memory stores so the service runs
// without infrastructure for development.
func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			return err
		}
		log.Info("postgres connected")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	factoryID := id.NewFactoryID()
	if cfg.Catalog.FactoryID != "" {
		factoryID, err = id.ParseFactoryID(cfg.Catalog.FactoryID)
		if err != nil {
			return err
		}
	}

	var (
		evidence     catalog.EvidenceStore    = evidencestore.NewInMemoryStore()
		requirements catalog.RequirementStore = requirementstore.NewInMemoryStore()
		links        linkstore.Store          = linkstore.NewInMemoryStore()
		auditStore   audit.Store              = audit.NewInMemoryStore()
		selStore     selection.Store          = selection.NewInMemoryStore()
	)
	if db != nil {
		evidence = evidencestore.NewPostgresStore(db)
		requirements = requirementstore.NewPostgresStore(db)
		links = linkstore.NewPostgresStore(db)
		auditStore = audit.NewPostgresStore(db)
	}
	if redisClient != nil {
		selStore = selection.NewRedisStore(redisClient.Client, cfg.Redis.SelectionTTL)
	}

	catalogService := catalogservice.New(evidence, requirements, factoryID, log)

	var inbox chan audit.Event
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := audit.NewKafkaSink(ctx, cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return err
		}
		defer sink.Close()

		inbox = make(chan audit.Event, 256)
		worker := audit.NewWorker(sink, inbox, log)
		go func() {
			if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("audit worker stopped", "error", err)
			}
		}()
		log.Info("kafka audit sink connected", "topic", cfg.Kafka.AuditTopic)
	}
	auditLog := audit.NewPublisher(auditStore, inbox)

	m := metrics.New()
	engine := linkservice.NewEngine(links, catalogService, log,
		linkservice.WithAuditor(auditLog),
		linkservice.WithMetrics(linkmetrics.New()),
	)
	calculator := coverage.NewCalculator(catalogService, links)

	manager := selection.NewManager(selStore, log, selection.WithNotify(func(session string, snapshot selection.Snapshot) {
		log.Debug("selection changed",
			"session", session,
			"evidence", snapshot.EvidenceCount,
			"requirements", snapshot.RequirementCount,
			"revision", snapshot.Revision,
		)
	}))

	validator := jwtauth.NewAdapter(jwtauth.NewService(cfg.Auth.JWTSigningKey, "auditlink"))

	healthChecks := map[string]httptransport.HealthCheck{}
	if db != nil {
		healthChecks["postgres"] = db.PingContext
	}
	if redisClient != nil {
		healthChecks["redis"] = redisClient.Health
	}

	router := httptransport.NewRouter(httptransport.Options{
		Logger:         log,
		AdminTokenHash: cfg.Auth.AdminTokenHash,
		AuditLog:       auditLog,
		CatalogCache:   catalogService,
		HealthChecks:   healthChecks,
		Handlers: []httptransport.Registrar{
			linkhandler.New(engine, log, m, validator),
			coverage.NewHandler(calculator, log, m, validator),
			selection.NewHandler(manager, log, m, validator),
		},
	})

	srv := httpserver.New(cfg.Server, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting auditlink", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
