package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/clinicadev/clinic-api/internal/audit"
	"github.com/clinicadev/clinic-api/internal/config"
	dbpkg "github.com/clinicadev/clinic-api/internal/db"
	"github.com/clinicadev/clinic-api/internal/infra/memory"
	"github.com/clinicadev/clinic-api/internal/infra/repository"
	"github.com/clinicadev/clinic-api/internal/logger"
	"github.com/clinicadev/clinic-api/internal/metrics"
	"github.com/clinicadev/clinic-api/internal/routes"
	"github.com/clinicadev/clinic-api/internal/security"
	"github.com/clinicadev/clinic-api/internal/timezone"
	useruc "github.com/clinicadev/clinic-api/internal/usecase/user"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	memory        bool
	adminUsername string
	adminPassword string
}

// storage is what a backend contributes to the route deps.
type storage struct {
	deps    routes.Deps
	sink    audit.Sink
	cleanup func()
}

func openPostgres(cfg *config.Config) (*storage, error) {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	auditLogger := audit.New(db)
	return &storage{
		deps: routes.Deps{
			Patients:     repository.NewPatientGormRepository(db),
			Specialties:  repository.NewSpecialtyGormRepository(db),
			Users:        repository.NewUserGormRepository(db),
			Appointments: repository.NewAppointmentGormRepository(db),
			AuditLogs:    auditLogger,
		},
		sink:    auditLogger,
		cleanup: func() { _ = dbpkg.Close(db) },
	}, nil
}

func openMemory() *storage {
	store := memory.NewStore()
	sink := audit.NewMemorySink()
	return &storage{
		deps: routes.Deps{
			Patients:     store.Patients(),
			Specialties:  store.Specialties(),
			Users:        store.Users(),
			Appointments: store.Appointments(),
			AuditLogs:    sink,
		},
		sink:    sink,
		cleanup: func() {},
	}
}

func openRevoker(ctx context.Context, cfg *config.Config, log zerolog.Logger) (security.Revoker, func(), error) {
	if cfg.RedisURL == "" {
		log.Warn().Msg("REDIS_URL not set, revoked tokens are kept in memory")
		return security.NewMemoryRevoker(), func() {}, nil
	}

	client, err := security.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	return security.NewRedisRevoker(client), func() { _ = client.Close() }, nil
}

func runServer(ctx context.Context, cfg *config.Config, opts serveOptions) error {
	log := logger.New(os.Stdout, cfg.LogLevel)

	if !timezone.IsValid(cfg.ClinicTimezone) {
		log.Warn().Str("timezone", cfg.ClinicTimezone).Msg("unknown clinic timezone, using default")
		cfg.ClinicTimezone = timezone.DefaultTimezone
	}

	// ======================================================
	// STORAGE
	// ======================================================
	var st *storage
	if opts.memory {
		log.Warn().Msg("running with in-memory storage, records are lost on exit")
		st = openMemory()
	} else {
		var err error
		if st, err = openPostgres(cfg); err != nil {
			return err
		}
		log.Info().Msg("connected to database")
	}
	defer st.cleanup()

	revoker, closeRevoker, err := openRevoker(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRevoker()

	// ======================================================
	// METRICS / AUDIT
	// ======================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(reg)

	dispatcher := audit.NewDispatcher(st.sink, log, 0)
	defer dispatcher.Close()

	deps := st.deps
	deps.Log = log
	deps.CORSOrigins = cfg.CORSOrigins
	deps.Audit = collector.Audit(dispatcher)
	deps.Tokens = security.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	deps.Revoker = revoker
	deps.Clock = timezone.NewClock(cfg.ClinicTimezone)
	deps.Metrics = collector
	deps.Gatherer = reg

	if opts.memory && opts.adminUsername != "" {
		_, err := useruc.NewCreateUser(deps.Users, security.HashPassword, deps.Audit).
			Bootstrap(ctx, opts.adminUsername, opts.adminPassword)
		if err != nil {
			return err
		}
		log.Info().Str("username", opts.adminUsername).Msg("seeded admin")
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
