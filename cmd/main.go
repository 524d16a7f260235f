package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/fitness-auth-api/config"
	"github.com/oksasatya/fitness-auth-api/internal/bootstrap"
	"github.com/oksasatya/fitness-auth-api/internal/container"
	"github.com/oksasatya/fitness-auth-api/internal/interface/middleware"
	"github.com/oksasatya/fitness-auth-api/internal/router"
	"github.com/oksasatya/fitness-auth-api/internal/server"
	"github.com/oksasatya/fitness-auth-api/internal/supervisor"
	"github.com/oksasatya/fitness-auth-api/pkg/helpers"
	"github.com/oksasatya/fitness-auth-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	validation.Init()
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	clustered := cfg.ClusterEnabled
	switch {
	case clustered && !server.ReusePortSupported:
		logger.Warn("SO_REUSEPORT is unavailable on this platform; running a single process")
		clustered = false
	case clustered && cfg.StoreDriver == config.StoreMemory:
		logger.Warn("memory store is per process; running a single process")
		clustered = false
	}

	if clustered && !cfg.IsWorker() {
		if err := runSupervisor(ctx, cfg, logger); err != nil {
			logger.WithError(err).Fatal("supervisor failed")
		}
		return
	}

	if err := runWorker(ctx, cfg, logger, clustered); err != nil {
		logger.WithError(err).Fatal("worker failed")
	}
}

// runSupervisor prepares the store once and keeps the worker processes alive.
func runSupervisor(ctx context.Context, cfg *config.Config, logger *logrus.Logger) error {
	if err := bootstrap.PrepareStore(ctx, cfg, logger); err != nil {
		return err
	}

	spawner, err := supervisor.SelfSpawner("APP_ROLE=" + config.RoleWorker)
	if err != nil {
		return err
	}
	sup := supervisor.New(supervisor.Config{
		Workers:         cfg.WorkerCount(),
		InitialBackoff:  cfg.RestartInitialBackoff,
		MaxBackoff:      cfg.RestartMaxBackoff,
		StableAfter:     cfg.RestartStableAfter,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, spawner, logger)
	return sup.Run(ctx)
}

// runWorker serves HTTP until ctx ends. A worker spawned by the supervisor
// shares the port with its siblings; a single process also prepares the store.
func runWorker(ctx context.Context, cfg *config.Config, logger *logrus.Logger, clustered bool) error {
	if !clustered {
		if err := bootstrap.PrepareStore(ctx, cfg, logger); err != nil {
			return err
		}
	}

	repo, closeStore, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()
	if err := helpers.PingRedis(ctx, rdb); err != nil {
		logger.WithError(err).Warn("redis unreachable; rate limiting fails open")
	}

	sender, closeSender, err := bootstrap.NewSender(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSender()

	index, err := bootstrap.NewUserIndex(cfg, logger)
	if err != nil {
		return err
	}

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL))
	container.SetTaskPool(helpers.NewTaskPool(cfg.HeavyTaskConcurrency))
	container.SetUserRepo(repo)
	container.SetUserIndex(index)
	container.SetMailer(sender)

	r := newEngine(cfg, logger, rdb)
	reg := router.NewRegistry(r)
	deps := router.InitModules(reg)
	reg.RegisterAll()
	r.NoRoute(deps.System.NotFound)

	ln, err := server.Listen(ctx, ":"+cfg.Port, clustered)
	if err != nil {
		return err
	}
	return server.Serve(ctx, server.New(r), ln, cfg.ShutdownTimeout, logger)
}

func newEngine(cfg *config.Config, logger *logrus.Logger, rdb *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP(cfg.TrustProxyHeaders))
	if cfg.HTTPLogEnabled {
		r.Use(middleware.AccessLog(logger))
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.SecureHeaders(cfg.CookieSecure))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	allow := middleware.AllowPaths("/")
	if cfg.RateLimitSkipPrivate {
		allow = middleware.AnyOf(allow, middleware.AllowPrivateIP())
	}
	r.Use(middleware.RateLimit(rdb, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIP(), allow, logger))
	return r
}
