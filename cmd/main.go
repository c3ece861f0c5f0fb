package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-profile-manager/config"
	app "github.com/oksasatya/go-profile-manager/internal/application"
	"github.com/oksasatya/go-profile-manager/internal/container"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/metrics"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/search"
	"github.com/oksasatya/go-profile-manager/internal/infrastructure/store"
	"github.com/oksasatya/go-profile-manager/internal/interface/middleware"
	"github.com/oksasatya/go-profile-manager/internal/router"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
	"github.com/oksasatya/go-profile-manager/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	// Redis backs the rate limiter and, with STORE_DRIVER=redis, the profile store
	redisOpts := helpers.RedisOptions{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB, UseTLS: cfg.RedisUseTLS}
	rdb, err := helpers.ConnectRedis(ctx, redisOpts, 2*time.Second)
	if err != nil {
		if cfg.StoreDriver == config.DriverRedis {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		logger.WithError(err).Warn("redis unavailable; rate limiting disabled")
	}
	defer func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}()

	kv, closeKV, err := store.Open(ctx, cfg, rdb, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer closeKV()

	rec := metrics.New()

	session := app.NewSession(kv, app.SessionConfig{
		StorageKey:  cfg.StorageKey,
		LoadDelay:   cfg.LoadDelay,
		SaveDelay:   cfg.SaveDelay,
		DeleteDelay: cfg.DeleteDelay,
		ToastTTL:    cfg.ToastTTL,
	}, logger)
	session.Profiles.Metrics = rec

	// Optional integrations; each is skipped when not configured
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		defer func() { _ = gcsClient.Close() }()
		container.SetGCS(gcsClient)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch client: %v", err)
		}
		idx := search.NewIndexer(es, cfg.ESProfilesIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			logger.WithError(err).Warn("elasticsearch index not ready; search falls back to the collection")
		}
		session.Profiles.Indexer = idx
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, cfg.AppName)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; profile events disabled")
		} else {
			defer pub.Close()
			session.Profiles.Publisher = pub
		}
	}

	session.Start()

	// Provide infra singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetRedis(rdb)
	container.SetMetrics(rec)
	container.SetSession(session)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	// CORS
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.Metrics(rec))

	// Registry: auto-register modules using container
	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s (store=%s key=%s)", cfg.Port, cfg.StoreDriver, cfg.StorageKey)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
	}
	session.Close()
	logger.Info("server exited properly")
}
