package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	collectionapp "github.com/audicob/backend/internal/application/collection"
	identityapp "github.com/audicob/backend/internal/application/identity"
	notificationapp "github.com/audicob/backend/internal/application/notification"
	"github.com/audicob/backend/internal/domain/collection"
	"github.com/audicob/backend/internal/infrastructure/auth"
	"github.com/audicob/backend/internal/infrastructure/config"
	"github.com/audicob/backend/internal/infrastructure/event"
	"github.com/audicob/backend/internal/infrastructure/logger"
	"github.com/audicob/backend/internal/infrastructure/persistence"
	"github.com/audicob/backend/internal/infrastructure/scheduler"
	"github.com/audicob/backend/internal/infrastructure/telemetry"
	"github.com/audicob/backend/internal/interfaces/http/handler"
	"github.com/audicob/backend/internal/interfaces/http/middleware"
	"github.com/audicob/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Audicob backend",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	if cfg.Penalty.MonthlyRate != "" {
		rate, err := decimal.NewFromString(cfg.Penalty.MonthlyRate)
		if err != nil {
			log.Fatal("Invalid penalty monthly rate", zap.String("rate", cfg.Penalty.MonthlyRate), zap.Error(err))
		}
		collection.DefaultMonthlyPenaltyRate = rate
	}

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowQueryThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Database.TraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled,
			SlowQueryThresh: cfg.Database.SlowQueryThreshold,
		}, log); err != nil {
			log.Warn("Failed to register database tracing", zap.Error(err))
		}
	}

	// Token blacklist; Redis when configured, in-memory otherwise
	var blacklist auth.TokenBlacklist
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis not configured, using in-memory token blacklist")
	}

	// Repositories
	clientRepo := persistence.NewGormClientRepository(db.DB)
	transitionRepo := persistence.NewGormStatusTransitionRepository(db.DB)
	debtRepo := persistence.NewGormDebtRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	assignmentRepo := persistence.NewGormAssignmentRepository(db.DB)
	creditLineRepo := persistence.NewGormCreditLineRepository(db.DB)
	evaluationRepo := persistence.NewGormEvaluationRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Event bus and notification fan-out
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(notificationapp.NewStatusChangedHandler(notificationRepo, clientRepo, userRepo, log))
	eventBus.Subscribe(notificationapp.NewAssignmentHandler(notificationRepo, log))
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authServiceConfig := identityapp.DefaultAuthServiceConfig()
	authServiceConfig.SessionTTL = cfg.JWT.RefreshTokenExpiration
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, authServiceConfig, log)
	userService := identityapp.NewUserService(userRepo, eventBus, log)

	clientService := collectionapp.NewClientService(clientRepo, eventBus, log)
	debtService := collectionapp.NewDebtService(debtRepo, clientRepo, eventBus, log)
	delinquencyService := collectionapp.NewDelinquencyService(clientRepo, transitionRepo, eventBus, log)
	paymentService := collectionapp.NewPaymentService(paymentRepo, clientRepo, eventBus, log)
	assignmentService := collectionapp.NewAssignmentService(assignmentRepo, clientRepo, userRepo, eventBus, log)
	creditLineService := collectionapp.NewCreditLineService(creditLineRepo, clientRepo, log)
	evaluationService := collectionapp.NewEvaluationService(evaluationRepo, clientRepo, log)
	metricsService := collectionapp.NewMetricsService(clientRepo, assignmentRepo, userRepo, log)
	notificationService := notificationapp.NewService(notificationRepo, log)

	// Nightly penalty snapshot refresh keeps dashboard totals current
	snapshotScheduler := scheduler.NewSnapshotScheduler(scheduler.DefaultSnapshotSchedulerConfig(), debtService, log)
	if err := snapshotScheduler.Start(context.Background()); err != nil {
		log.Fatal("Failed to start snapshot scheduler", zap.Error(err))
	}
	defer func() {
		if err := snapshotScheduler.Stop(context.Background()); err != nil {
			log.Error("Error stopping snapshot scheduler", zap.Error(err))
		}
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecureHeaders())
	engine.Use(middleware.CORS(cfg.HTTP.CORSAllowedOrigins))
	if cfg.Telemetry.Enabled {
		engine.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))
	}
	if cfg.HTTP.RateLimitPerMinute > 0 {
		engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitPerMinute))
	}
	if cfg.HTTP.AuthRatePerMinute > 0 {
		// Credential endpoints get a tighter budget than the general API
		authLimit := middleware.RateLimit(cfg.HTTP.AuthRatePerMinute)
		engine.Use(func(c *gin.Context) {
			path := c.Request.URL.Path
			if path == "/api/v1/auth/login" || path == "/api/v1/auth/refresh" {
				authLimit(c)
				return
			}
			c.Next()
		})
	}

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths, "/api/v1/ready")
	jwtConfig.TokenBlacklist = blacklist
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	systemHandler := handler.NewSystemHandler(db.DB, redisClient, version, log)
	engine.GET("/health", systemHandler.Health)
	engine.GET("/ready", systemHandler.Ready)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(systemHandler).
		Register(handler.NewAuthHandler(authService, log)).
		Register(handler.NewUserHandler(userService, log)).
		Register(handler.NewClientHandler(clientService, log)).
		Register(handler.NewDebtHandler(debtService, log)).
		Register(handler.NewDelinquencyHandler(delinquencyService, log)).
		Register(handler.NewPaymentHandler(paymentService, log)).
		Register(handler.NewAssignmentHandler(assignmentService, log)).
		Register(handler.NewCreditLineHandler(creditLineService, log)).
		Register(handler.NewEvaluationHandler(evaluationService, log)).
		Register(handler.NewNotificationHandler(notificationService, log)).
		Register(handler.NewReportHandler(metricsService, log))
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
