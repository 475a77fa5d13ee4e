package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fathima-sithara/asset-service/internal/auth"
	"github.com/fathima-sithara/asset-service/internal/cache"
	"github.com/fathima-sithara/asset-service/internal/config"
	"github.com/fathima-sithara/asset-service/internal/events"
	"github.com/fathima-sithara/asset-service/internal/handlers"
	"github.com/fathima-sithara/asset-service/internal/metrics"
	"github.com/fathima-sithara/asset-service/internal/middleware"
	"github.com/fathima-sithara/asset-service/internal/repository"
	"github.com/fathima-sithara/asset-service/internal/routes"
	service "github.com/fathima-sithara/asset-service/internal/services"
	"github.com/fathima-sithara/asset-service/internal/storage"
	"github.com/fathima-sithara/asset-service/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(err)
	}
	dev := cfg.App.Env == "development"

	logger, err := utils.NewLogger(dev)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// Mongo
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mc, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}
	db := mc.Database(cfg.Mongo.Database)
	assetRepo := repository.NewMongoAssetRepository(db.Collection("assets"))
	infoRepo := repository.NewMongoInfoRepository(db.Collection("asset_info"))
	logRepo := repository.NewMongoLogRepository(db.Collection("asset_logs"))

	// S3 store, optional for local runs without a bucket
	var store service.ObjectStore
	if cfg.AWS.Bucket != "" {
		s3store, err := storage.NewS3Store(context.Background(), cfg.AWS.Region, cfg.AWS.Bucket)
		if err != nil {
			logger.Fatalf("s3 init: %v", err)
		}
		store = s3store
	}

	// Redis cache for presigned URLs, optional
	var urlCache service.Cache
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		urlCache = cache.NewSignedURLCache(rdb)
	}

	// Kafka event bus, optional
	var pub *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		pub = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	activity := service.NewActivity(logRepo, pub, logger)
	presignTTL := time.Duration(cfg.S3.PresignTTL) * time.Second
	assetSvc := service.NewAssetService(assetRepo, infoRepo, store, urlCache, activity, presignTTL, logger)
	infoSvc := service.NewInfoService(infoRepo, logRepo, logger)

	verifier, err := auth.NewJWTVerifier(cfg.JWT.PublicKeyPath)
	if err != nil {
		logger.Fatalf("jwt init: %v", err)
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})
	app.Use(middleware.Recovery(logger))
	app.Use(middleware.RequestLogger(logger))
	app.Use(metrics.Middleware())
	app.Use(middleware.NewIPRateLimiter(cfg.App.RatePerMinute, logger).Handler())

	h := handlers.NewHandler(assetSvc, infoSvc, logger)
	routes.Setup(app, h, middleware.JWTAuth(verifier))

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("starting asset service on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutdown requested")

	timeoutCtx, cancel2 := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel2()

	_ = app.ShutdownWithContext(timeoutCtx)
	_ = pub.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	_ = mc.Disconnect(timeoutCtx)
	logger.Info("shutdown completed")
}
