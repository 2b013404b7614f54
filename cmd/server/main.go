package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"evsops/internal/audit"
	"evsops/internal/catalog"
	cataloghandler "evsops/internal/catalog/handler"
	cdrhandler "evsops/internal/cdr/handler"
	cdrmetrics "evsops/internal/cdr/metrics"
	cdrmodels "evsops/internal/cdr/models"
	cdrservice "evsops/internal/cdr/service"
	insphandler "evsops/internal/inspection/handler"
	inspmetrics "evsops/internal/inspection/metrics"
	inspmodels "evsops/internal/inspection/models"
	inspservice "evsops/internal/inspection/service"
	penhandler "evsops/internal/penalty/handler"
	penmetrics "evsops/internal/penalty/metrics"
	penmodels "evsops/internal/penalty/models"
	penservice "evsops/internal/penalty/service"
	"evsops/internal/platform/bus"
	"evsops/internal/platform/config"
	"evsops/internal/platform/httpserver"
	"evsops/internal/platform/logger"
	"evsops/internal/platform/store"
	"evsops/internal/seed"
	taskhandler "evsops/internal/task/handler"
	taskmetrics "evsops/internal/task/metrics"
	taskmodels "evsops/internal/task/models"
	taskservice "evsops/internal/task/service"
	"evsops/internal/token"
	httptransport "evsops/internal/transport/http"
)

// main wires storage, the broker, the domain services, and the HTTP surface.
// Business logic lives in the internal service packages.
func main() {
	seedDemo := flag.Bool("seed", false, "populate an empty store with deterministic demo data")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Broker: Redis when configured, otherwise in-process.
	var broker bus.Broker = bus.NewMemory()
	if cfg.RedisAddr != "" {
		redisBroker, err := bus.NewRedis(cfg.RedisAddr, log)
		if err != nil {
			log.Error("redis broker init failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer redisBroker.Close()
		broker = redisBroker
	}

	// Stores: Postgres when configured, otherwise in-memory.
	var (
		reports    store.Collection[inspmodels.Report]
		cdrs       store.Collection[cdrmodels.CDR]
		invoices   store.Collection[penmodels.Invoice]
		statements store.Collection[penmodels.Statement]
		tasks      store.Collection[taskmodels.Task]
	)
	auditStore := audit.NewMemoryStore()
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := store.Migrate(ctx, pool); err != nil {
			log.Error("postgres migration failed", "error", err)
			os.Exit(1)
		}
		reports = store.NewPostgres[inspmodels.Report]("reports", pool, broker)
		cdrs = store.NewPostgres[cdrmodels.CDR]("cdrs", pool, broker)
		invoices = store.NewPostgres[penmodels.Invoice]("invoices", pool, broker)
		statements = store.NewPostgres[penmodels.Statement]("statements", pool, broker)
		tasks = store.NewPostgres[taskmodels.Task]("tasks", pool, broker)
	} else {
		reports = store.NewMemory[inspmodels.Report]("reports", broker)
		cdrs = store.NewMemory[cdrmodels.CDR]("cdrs", broker)
		invoices = store.NewMemory[penmodels.Invoice]("invoices", broker)
		statements = store.NewMemory[penmodels.Statement]("statements", broker)
		tasks = store.NewMemory[taskmodels.Task]("tasks", broker)
	}

	cat := catalog.Default()
	auditor := audit.NewRecorder(auditStore, log)

	// Services, wired back to front so cross-domain hooks resolve without
	// forward references.
	penaltySvc := penservice.New(invoices, statements, cfg.ContractorName, log,
		penservice.WithMetrics(penmetrics.New()),
		penservice.WithAuditor(auditor),
	)
	inspectionSvc := inspservice.New(reports, cat, cfg.CDRThreshold, log,
		inspservice.WithMetrics(inspmetrics.New()),
		inspservice.WithAuditor(auditor),
	)
	taskSvc := taskservice.New(tasks, cat, log,
		taskservice.WithInspectionDates(inspectionSvc),
		taskservice.WithMetrics(taskmetrics.New()),
		taskservice.WithAuditor(auditor),
	)
	cdrSvc := cdrservice.New(cdrs, cat, log,
		cdrservice.WithInvoiceCreator(penaltySvc),
		cdrservice.WithTaskLinker(taskSvc),
		cdrservice.WithMetrics(cdrmetrics.New()),
		cdrservice.WithAuditor(auditor),
	)
	inspservice.WithDraftCDROpener(cdrSvc)(inspectionSvc)
	inspservice.WithTaskLinker(taskSvc)(inspectionSvc)

	if *seedDemo {
		seeder := seed.New(cat, inspectionSvc, cdrSvc, taskSvc, log)
		if err := seeder.Run(ctx, time.Now().UTC()); err != nil {
			log.Error("demo seeding failed", "error", err)
			os.Exit(1)
		}
	}

	tokens := token.NewService(cfg.JWTSigningKey, "evsops")
	router := httptransport.NewRouter(httptransport.Deps{
		Logger:     log,
		Validator:  tokens,
		Catalog:    cataloghandler.New(cat),
		Inspection: insphandler.New(inspectionSvc, log),
		CDR:        cdrhandler.New(cdrSvc, log),
		Penalty:    penhandler.New(penaltySvc, log),
		Task:       taskhandler.New(taskSvc, log),
	})

	srv := httpserver.New(cfg.Addr, router)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting evsops", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Error("server error", "error", err)
		os.Exit(1)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("evsops stopped")
}
