// File: cmd/service/service.go
// @title        Store Rating API
// @version      1.0
// @description  商店評分平台的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	_ "store-rating/docs" // 引入 swag 產出的 docs
	"store-rating/internal/cache"
	"store-rating/internal/config"
	"store-rating/internal/database"
	"store-rating/internal/events"
	"store-rating/internal/handler"
	"store-rating/internal/handler/auth"
	"store-rating/internal/logging"
	"store-rating/internal/middleware"
	"store-rating/internal/model"
	"store-rating/internal/router"
	"store-rating/internal/service"
	"store-rating/internal/store"
	"store-rating/internal/worker"
)

const (
	eventQueueSize = 256
	limiterIdle    = 10 * time.Minute
)

var (
	loadConfig      = func() (config.App, error) { return config.Load() }
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	dialPublisher   = func(url, exchange string) (events.Publisher, error) { return events.NewAMQPPublisher(url, exchange) }
	hashPassword    = service.HashPassword
	upsertAdmin     = store.UpsertAdmin
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownSignal  = func() <-chan os.Signal {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		return ch
	}
	exitFunc = os.Exit
)

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	service.SetJWTSecret(cfg.JWTSecret)

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	ctx := context.Background()
	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	if cfg.SeedAdmin() {
		if err := bootstrapAdmin(ctx, db, cfg, logger); err != nil {
			return fmt.Errorf("管理員建立失敗: %w", err)
		}
	}

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	pub, err := newPublisher(cfg, logger)
	if err != nil {
		return fmt.Errorf("AMQP 連線失敗: %w", err)
	}
	defer pub.Close()

	wp := newWorkerPool(cfg.WorkerCount, eventQueueSize, logger)
	defer wp.Stop()

	metrics := middleware.NewMetrics()
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, limiterIdle, logger)

	sched := cron.New()
	if _, err := sched.AddFunc(cfg.RateLimitClean, func() {
		if n := limiter.Cleanup(); n > 0 {
			logger.WithField("removed", n).Debug("rate limiter cleanup")
		}
	}); err != nil {
		return fmt.Errorf("無效的 RATE_LIMIT_CLEANUP: %w", err)
	}
	sched.Start()
	defer sched.Stop()

	e, err := newEcho(logger, metrics)
	if err != nil {
		return err
	}
	router.Setup(e, router.Deps{
		DB:      db,
		Cache:   rdb,
		Tokens:  auth.TokenTTL{Access: cfg.AccessTokenTTL, Refresh: cfg.RefreshTokenTTL},
		Events:  events.NewDispatcher(pub, wp, logger, metrics.ObserveEvent),
		Limiter: limiter,
		Metrics: metrics,
	})

	return serve(e, cfg.HTTPAddr, cfg.ShutdownTimeout, logger)
}

// newEcho 建立 echo 實例並掛上共用中介層
func newEcho(logger logrus.FieldLogger, metrics *middleware.Metrics) (*echo.Echo, error) {
	v, err := handler.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("validator 初始化失敗: %w", err)
	}
	e := echo.New()
	e.HideBanner = true
	e.Validator = v
	// 限流以連線來源位址為準，不採信客戶端自帶的 X-Forwarded-For / X-Real-IP
	e.IPExtractor = echo.ExtractIPDirect()
	e.HTTPErrorHandler = middleware.ErrorHandler(logger)
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.ContextLogger(logger))
	e.Use(middleware.RequestLogger(logger))
	e.Use(metrics.Middleware)
	e.Use(echomw.Recover())
	return e, nil
}

func newPublisher(cfg config.App, logger logrus.FieldLogger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL not set, rating events disabled")
		return events.NopPublisher{}, nil
	}
	return dialPublisher(cfg.AMQPURL, cfg.AMQPExchange)
}

// bootstrapAdmin 依 ADMIN_* 設定建立或覆寫系統管理員
func bootstrapAdmin(ctx context.Context, db database.DB, cfg config.App, logger logrus.FieldLogger) error {
	hash, err := hashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	u, err := upsertAdmin(ctx, db, &model.User{
		Name:         cfg.AdminName,
		Email:        service.NormalizeEmail(cfg.AdminEmail),
		PasswordHash: hash,
		Address:      cfg.AdminAddress,
		Role:         model.RoleSystemAdmin,
	})
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("administrator ready")
	return nil
}

// serve 啟動伺服器，收到中止訊號時在 timeout 內優雅關閉
func serve(e *echo.Echo, addr string, timeout time.Duration, logger logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() { errCh <- startServer(e, addr) }()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case sig := <-shutdownSignal():
		logger.WithField("signal", sig.String()).Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return e.Shutdown(ctx)
	}
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
