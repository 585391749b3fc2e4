package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expensetracker/internal"
	"expensetracker/internal/ads"
	"expensetracker/internal/auth"
	authPostgres "expensetracker/internal/auth/postgres"
	"expensetracker/internal/category"
	categoryPostgres "expensetracker/internal/category/postgres"
	"expensetracker/internal/expense"
	expensePostgres "expensetracker/internal/expense/postgres"
	"expensetracker/internal/mailer"
	"expensetracker/internal/report"
	"expensetracker/internal/transport"
	"expensetracker/internal/transport/rest"
	"expensetracker/internal/user"
	userPostgres "expensetracker/internal/user/postgres"
	"expensetracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	if err := setupRoutes(deps); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up routes: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if sqlDB, err := deps.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("Database close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func setupRoutes(deps *Dependencies) error {
	cfg := deps.Config

	base := &transport.BaseHandler{
		Logger:  deps.Logger,
		DevMode: !cfg.IsProduction(),
	}

	authRepo := authPostgres.NewRepository(deps.DB)
	tokens := auth.NewTokenService(cfg.Security.TokenSecret, cfg.Security.SessionTTL(), cfg.Security.ResetTTL())
	mail := mailer.NewSMTPMailer(cfg.Mailer, deps.Logger)
	authService := auth.NewService(authRepo, tokens, mail, cfg.Security.Cost(), deps.Logger)

	googleVerifier, err := auth.NewGoogleVerifier(cfg.OAuth.Google.ClientID)
	if err != nil {
		return fmt.Errorf("failed to build google verifier: %w", err)
	}
	appleVerifier := auth.NewAppleVerifier(cfg.OAuth.Apple.ClientID, cfg.OAuth.Apple.KeysURL)
	federated := auth.NewFederatedService(authRepo, tokens, appleVerifier, googleVerifier, deps.Logger)

	authHandler := auth.NewHandler(base, authService, federated, tokens, authRepo)

	categoryRepo := categoryPostgres.NewCategoryRepository(deps.DB)
	categoryService := category.NewService(categoryRepo, deps.Logger)
	categoryHandler := category.NewHandler(base, categoryService)

	expenseRepo := expensePostgres.NewExpenseRepository(deps.DB)
	expenseService := expense.NewService(expenseRepo, categoryService, deps.Logger)
	expenseHandler := expense.NewHandler(base, expenseService)

	reportService := report.NewService(expenseService, deps.Logger)
	reportHandler := report.NewHandler(base, reportService)

	userRepo := userPostgres.NewUserRepository(deps.DB)
	userService := user.NewService(userRepo, expenseService, deps.Logger)
	userHandler := user.NewHandler(base, userService)

	adsHandler := ads.NewHandler(base)

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to unwrap sql.DB: %w", err)
	}

	rest.RegisterAllRoutes(deps.Router, sqlDB, rest.Handlers{
		Auth:     authHandler,
		Category: categoryHandler,
		Expense:  expenseHandler,
		Report:   reportHandler,
		User:     userHandler,
		Ads:      adsHandler,
	}, cfg.Server.AllowedOrigins, deps.Logger)

	return nil
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Dependencies{
		Config: config,
		Logger: logger.L(),
		DB:     db,
		Router: chi.NewRouter(),
	}, nil
}

// initDB opens the configured database. Postgres goes through the pgx
// stdlib driver so the same pool serves goose and the readiness probe;
// sqlite is kept for local development.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		db, err := gorm.Open(gormSqlite.Open(cfg.Source), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, nil
	}

	sqlxDB, err := sqlx.Connect("pgx", cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetMaxOpenConns(cfg.MaxOpenConns)
	if cfg.ConnMaxLifetime > 0 {
		sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlxDB.Ping(); err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{})
	if err != nil {
		_ = sqlxDB.Close()
		return nil, fmt.Errorf("failed to wrap db connection: %w", err)
	}

	return db, nil
}
