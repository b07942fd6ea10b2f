package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/config"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/corpus"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/contacts"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/domain/triage"
	v1 "github.com/dmehra2102/prod-golang-projects/emergencykb/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/knowledgebase"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/repository"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/internal/service"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/errreport"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/emergencykb/pkg/tracer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	log = log.With(
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initialising tracer: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	if err := errreport.Init(cfg.App, cfg.Sentry); err != nil {
		return fmt.Errorf("initialising error reporting: %w", err)
	}
	defer errreport.Flush(cfg.Server.ShutdownTimeout)

	m := metrics.NewCollector(metrics.NewRegistry())

	var db *gorm.DB
	if cfg.Database.Enabled {
		db, err = database.Connect(cfg.Database, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := database.Close(db); err != nil {
				log.Warn("closing database", zap.Error(err))
			}
		}()
		if err := database.Migrate(db, log); err != nil {
			return err
		}
	}

	source := selectSource(cfg.Corpus, db)
	c, err := source.Load(context.Background())
	if err != nil {
		return fmt.Errorf("loading corpus from %s: %w", source.Name(), err)
	}
	store, err := knowledgebase.New(c.Protocols, c.RedFlags, log.With(zap.String("corpus_source", source.Name())))
	if err != nil {
		return fmt.Errorf("building knowledge base: %w", err)
	}

	var auditRepo service.AuditRepository = repository.NewLogAuditRepository(log)
	if db != nil {
		auditRepo = repository.NewAuditRepository(db)
	}
	auditSvc := service.NewAuditService(auditRepo, cfg.Audit.BufferSize, cfg.Audit.WriteTimeout, m, log)
	defer auditSvc.Shutdown(cfg.Server.ShutdownTimeout)

	knowledgeSvc := service.NewKnowledgeService(store, source, auditSvc, m, log)
	triageSvc := service.NewTriageService(triage.NewClassifier(triage.DefaultConfig()), auditSvc, m, log)

	h := v1.NewHandler(knowledgeSvc, triageSvc, contacts.Defaults{
		EmergencyNumber:     cfg.Contacts.EmergencyNumber,
		PoisonControlNumber: cfg.Contacts.PoisonControlNumber,
	}, log)

	router := v1.NewRouter(h, v1.RouterConfig{
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Metrics:   m,
		Log:       log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sig)

	for {
		select {
		case err, ok := <-serveErr:
			if ok {
				return fmt.Errorf("serving http: %w", err)
			}
			return nil

		case s := <-sig:
			if s == syscall.SIGHUP {
				log.Info("reloading corpus", zap.String("source", source.Name()))
				// Failures are logged by the service and the active corpus stays.
				_ = knowledgeSvc.Reload(context.Background())
				continue
			}

			log.Info("shutting down", zap.String("signal", s.String()))
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutting down server: %w", err)
			}
			log.Info("server stopped")
			return nil
		}
	}
}

func selectSource(cfg config.CorpusConfig, db *gorm.DB) corpus.Source {
	switch cfg.Source {
	case config.CorpusSourceFile:
		return corpus.File(cfg.Path)
	case config.CorpusSourceDatabase:
		return corpus.Database(repository.NewCorpusRepository(db))
	default:
		return corpus.Builtin()
	}
}
