package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/example/audit-planner/internal/application"
	"github.com/example/audit-planner/internal/config"
	httptransport "github.com/example/audit-planner/internal/http"
	"github.com/example/audit-planner/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := pool.Migrate(context.Background()); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	now := time.Now

	companyRepo := sqlite.NewCompanyRepository(pool)
	auditRepo := sqlite.NewAuditRepository(pool)
	themeRepo := sqlite.NewThemeRepository(pool)
	interviewRepo := sqlite.NewInterviewRepository(pool)

	companyService := application.NewCompanyService(companyRepo, auditRepo, idGenerator, now, logger)
	auditService := application.NewAuditService(auditRepo, companyRepo, idGenerator, now, logger)
	themeService := application.NewThemeService(themeRepo, idGenerator, now, logger)
	interviewService := application.NewInterviewService(interviewRepo, auditRepo, themeRepo, idGenerator, now, logger)
	planService := application.NewPlanService(cfg.Calendar, auditRepo, themeRepo, interviewRepo, idGenerator, now, logger)

	if err := themeService.SeedSystemThemes(context.Background()); err != nil {
		logger.Error("failed to seed system themes", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Companies:  httptransport.NewCompanyHandler(companyService, auditService, logger),
		Audits:     httptransport.NewAuditHandler(auditService, logger),
		Themes:     httptransport.NewThemeHandler(themeService, logger),
		Interviews: httptransport.NewInterviewHandler(interviewService, logger),
		Plans:      httptransport.NewPlanHandler(planService, logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("audit planner API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
