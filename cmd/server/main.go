package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4" // Echo web framework
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/iliyamo/hotel-front-desk/internal/config"
	"github.com/iliyamo/hotel-front-desk/internal/database"
	"github.com/iliyamo/hotel-front-desk/internal/handler"
	"github.com/iliyamo/hotel-front-desk/internal/jobs"
	"github.com/iliyamo/hotel-front-desk/internal/middleware"
	"github.com/iliyamo/hotel-front-desk/internal/model"
	"github.com/iliyamo/hotel-front-desk/internal/notify"
	"github.com/iliyamo/hotel-front-desk/internal/queue"
	"github.com/iliyamo/hotel-front-desk/internal/repository"
	"github.com/iliyamo/hotel-front-desk/internal/router"
	"github.com/iliyamo/hotel-front-desk/internal/service"
)

// newLogger builds a development logger for APP_ENV=dev and a production
// (JSON) logger otherwise, at LOG_LEVEL.
func newLogger(cfg config.Config) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Env == "dev" {
		zcfg = zap.NewDevelopmentConfig()
	}
	lvl, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// bootstrapAdmin creates the first ADMIN account when the admins table is
// empty and BOOTSTRAP_ADMIN_USER/PASS are set.
func bootstrapAdmin(ctx context.Context, cfg config.Config, admins *repository.AdminRepo, logger *zap.Logger) error {
	if cfg.BootstrapAdminUser == "" || cfg.BootstrapAdminPass == "" {
		return nil
	}
	n, err := admins.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	id, err := admins.Create(ctx, cfg.BootstrapAdminUser, cfg.BootstrapAdminPass, "Administrator", model.RoleAdmin, cfg.BcryptCost)
	if err != nil {
		return err
	}
	logger.Info("bootstrap admin created", zap.Uint64("admin_id", id), zap.String("username", cfg.BootstrapAdminUser))
	return nil
}

func main() {
	config.LoadDotEnv()
	cfg := config.Load() // Load environment config

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis is optional: without it caching and rate limiting pass through.
	rdb, err := config.LoadRedisConfig().Connect(ctx)
	if err != nil {
		logger.Warn("redis unavailable; cache and rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewCache(config.LoadCacheConfig(), rdb, logger)
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger)

	// Repositories
	admins := repository.NewAdminRepo(db)
	tokens := repository.NewTokenRepo(db)
	guests := repository.NewGuestRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)

	if err := bootstrapAdmin(ctx, cfg, admins, logger); err != nil {
		logger.Fatal("bootstrap admin", zap.Error(err))
	}

	// Lifecycle events go to RabbitMQ when configured; the consumer writes
	// the activity log and notifies guests.
	var pub service.Publisher
	if cfg.AMQPURL != "" {
		publisher := queue.NewPublisher(cfg.AMQPURL, logger)
		defer publisher.Close()
		pub = publisher
		consumer := queue.NewConsumer(cfg.AMQPURL, cfg.EventLogPath, notify.New(config.LoadNotifyConfig(), logger), logger)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("event consumer stopped", zap.Error(err))
			}
		}()
	} else {
		logger.Info("RABBITMQ_URL not set; lifecycle events disabled")
	}
	desk := service.NewManager(repository.NewStore(db), pub, logger)

	sched, err := jobs.Schedule(cfg.OverdueSweepSpec, jobs.NewOverdueSweep(reservations, logger), logger)
	if err != nil {
		logger.Fatal("schedule jobs", zap.Error(err))
	}
	defer sched.Stop()

	e := echo.New() // Create Echo instance
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.RequestLogger(logger))

	authH := handler.NewAuthHandler(cfg, admins, tokens)
	resH := handler.NewReservationHandler(desk, reservations, payments)

	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limiter)
	router.RegisterDesk(e, router.DeskHandlers{
		Guests:       handler.NewGuestHandler(guests),
		Rooms:        handler.NewRoomHandler(rooms),
		Reservations: resH,
		Quotes:       handler.NewQuoteHandler(rooms),
	}, cfg.JWTSecret, cache)
	router.RegisterAdmin(e, authH, resH, handler.NewReportHandler(payments), cfg.JWTSecret, cache)

	addr := ":" + cfg.Port // Address string with port
	go func() {
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
