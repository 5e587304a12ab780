package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	"github.com/catertrack/catertrack/config"
	"github.com/catertrack/catertrack/internal/database"
	"github.com/catertrack/catertrack/internal/domain"
	httpHandler "github.com/catertrack/catertrack/internal/http"
	"github.com/catertrack/catertrack/internal/http/middleware"
	"github.com/catertrack/catertrack/internal/repository"
	"github.com/catertrack/catertrack/internal/service"
	"github.com/catertrack/catertrack/pkg/logger"
	"github.com/catertrack/catertrack/pkg/ratelimiter"
)

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB
	mux    *http.ServeMux
	server *http.Server

	loginLimiter *ratelimiter.RateLimiter

	// Repositories
	userRepo       domain.UserRepository
	leadRepo       domain.LeadRepository
	activityRepo   domain.ActivityRepository
	followUpRepo   domain.FollowUpRepository
	attachmentRepo domain.AttachmentRepository
	auditLogRepo   domain.AuditLogRepository

	// Services
	authService       *service.AuthService
	userService       *service.UserService
	leadService       *service.LeadService
	activityService   *service.ActivityService
	followUpService   *service.FollowUpService
	attachmentService *service.AttachmentService
	auditLogService   *service.AuditLogService
}

type AppOption func(*App)

func WithLogger(l logger.Logger) AppOption {
	return func(a *App) {
		a.logger = l
	}
}

// WithMockDB injects an existing database handle, used by tests to run
// the app against sqlmock.
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.logger == nil {
		app.logger = logger.NewLoggerWithLevel(cfg.LogLevel)
	}

	return app
}

// InitDB opens the connection, verifies it and creates the schema plus
// the bootstrap admin account.
func (a *App) InitDB() error {
	if a.db == nil {
		a.logger.WithField("host", a.config.Database.Host).
			WithField("database", a.config.Database.DBName).
			Info("Connecting to database")

		db, err := sql.Open("postgres", a.config.Database.ConnectionString())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		if err := db.Ping(); err != nil {
			db.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		a.db = db
	}

	if err := database.InitializeDatabase(a.db, a.config.AdminUser, a.config.AdminPass); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.userRepo = repository.NewUserRepository(a.db)
	a.leadRepo = repository.NewLeadRepository(a.db)
	a.activityRepo = repository.NewActivityRepository(a.db)
	a.followUpRepo = repository.NewFollowUpRepository(a.db)
	a.attachmentRepo = repository.NewAttachmentRepository(a.db)
	a.auditLogRepo = repository.NewAuditLogRepository(a.db)

	return nil
}

// InitServices initializes all services
func (a *App) InitServices() error {
	a.loginLimiter = ratelimiter.NewRateLimiter(
		a.config.RateLimit.LoginAttempts,
		a.config.RateLimit.LoginWindow,
	)

	authService, err := service.NewAuthService(service.AuthServiceConfig{
		UserRepository:  a.userRepo,
		PrivateKey:      a.config.Security.PasetoPrivateKeyBytes,
		PublicKey:       a.config.Security.PasetoPublicKeyBytes,
		TokenExpiration: a.config.Security.TokenExpiration,
		LoginLimiter:    a.loginLimiter,
		Logger:          a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create auth service: %w", err)
	}

	a.authService = authService
	a.userService = service.NewUserService(a.userRepo, a.logger)
	a.leadService = service.NewLeadService(a.leadRepo, a.auditLogRepo, a.logger)
	a.activityService = service.NewActivityService(a.activityRepo, a.leadRepo, a.logger)
	a.followUpService = service.NewFollowUpService(a.followUpRepo, a.leadRepo, a.logger)
	a.attachmentService = service.NewAttachmentService(a.attachmentRepo, a.leadRepo, a.config.Uploads.Dir, a.logger)
	a.auditLogService = service.NewAuditLogService(a.auditLogRepo, a.logger)

	return nil
}

// InitHandlers registers all HTTP routes on the mux
func (a *App) InitHandlers() error {
	auth := middleware.NewAuth(a.authService, a.logger)
	secure := auth.RequireAuth

	httpHandler.NewAuthHandler(a.authService, a.logger).RegisterRoutes(a.mux)
	httpHandler.NewUserHandler(a.userService, a.logger).RegisterRoutes(a.mux, secure)
	httpHandler.NewLeadHandler(a.leadService, a.logger).RegisterRoutes(a.mux, secure)
	httpHandler.NewActivityHandler(a.activityService, a.logger).RegisterRoutes(a.mux, secure)
	httpHandler.NewFollowUpHandler(a.followUpService, a.logger).RegisterRoutes(a.mux, secure)
	httpHandler.NewAttachmentHandler(a.attachmentService, a.logger).RegisterRoutes(a.mux, secure)
	httpHandler.NewAuditLogHandler(a.auditLogService, a.logger).RegisterRoutes(a.mux, secure)

	a.mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, a.config.Version)
	})

	return nil
}

// Initialize runs all initialization steps in order
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting CaterTrack application")

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Start blocks serving HTTP until the server stops
func (a *App) Start() error {
	handler := middleware.CORS(a.config.CORSOrigins)(a.mux)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server and releases resources
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Error("HTTP server shutdown failed")
			return err
		}
	}

	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Database close failed")
			return err
		}
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}
