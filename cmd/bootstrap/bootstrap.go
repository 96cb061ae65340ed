package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"radlab-backoffice/config"
	deliveryHttp "radlab-backoffice/internal/delivery/http"
	"radlab-backoffice/internal/delivery/http/handler"
	"radlab-backoffice/internal/delivery/http/middleware"
	"radlab-backoffice/internal/infrastructure/cache"
	"radlab-backoffice/internal/infrastructure/database"
	"radlab-backoffice/internal/repository"
	"radlab-backoffice/internal/service"
	"radlab-backoffice/internal/usecase"
	"radlab-backoffice/pkg/jwt"
	"radlab-backoffice/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Hub         *service.NotificationHub
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	setupLogger(cfg)
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logrus.Info("Database migrations applied")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server, hub, err := initializeServer(cfg, db, redisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server
	app.Hub = hub

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.NotificationHub, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	repRepo := repository.NewRepresentativeRepository()
	branchRepo := repository.NewBranchRepository()
	scanRepo := repository.NewScanRepository()
	stockRepo := repository.NewStockRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	expenseRepo := repository.NewExpenseRepository()
	auditRepo := repository.NewAuditLogRepository()

	// Initialize services
	hub := service.NewNotificationHub(log)
	auditService := service.NewAuditService(db, log, auditRepo)
	stockService := service.NewStockService(db, log, scanRepo, stockRepo, userRepo, hub)
	mailer := service.NewMailer(cfg, log)
	fileStore, err := service.NewFileStore(cfg.Upload.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize file store: %w", err)
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient, mailer)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, doctorRepo, repRepo, appointmentRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, patientRepo, appointmentRepo, repRepo, auditService)
	repUsecase := usecase.NewRepresentativeUsecase(db, log, repRepo, patientRepo, doctorRepo, auditService)
	branchUsecase := usecase.NewBranchUsecase(db, log, branchRepo, auditService)
	scanUsecase := usecase.NewScanUsecase(db, log, scanRepo, auditService)
	stockUsecase := usecase.NewStockUsecase(db, log, stockRepo, branchRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, userRepo, patientRepo, doctorRepo, branchRepo, scanRepo, auditRepo, stockService, auditService, hub, fileStore)
	expenseUsecase := usecase.NewExpenseUsecase(db, log, expenseRepo, auditService)
	auditUsecase := usecase.NewAuditLogUsecase(db, log, auditRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	repHandler := handler.NewRepresentativeHandler(repUsecase, customValidator)
	branchHandler := handler.NewBranchHandler(branchUsecase, customValidator)
	scanHandler := handler.NewScanHandler(scanUsecase, customValidator)
	stockHandler := handler.NewStockHandler(stockUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	expenseHandler := handler.NewExpenseHandler(expenseUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditUsecase)
	wsHandler := handler.NewWebSocketHandler(hub, log)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(db, jwtService, redisClient, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.CORS.Origins)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		patientHandler,
		doctorHandler,
		repHandler,
		branchHandler,
		scanHandler,
		stockHandler,
		appointmentHandler,
		expenseHandler,
		auditLogHandler,
		wsHandler,
		healthHandler,
		authMiddleware,
		corsMiddleware,
		rateLimitMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, hub, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (websockets, database, redis)
func (app *App) Close() {
	if app.Hub != nil {
		app.Hub.Shutdown()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
