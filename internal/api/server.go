package api

import (
	"context"
	"time"

	"aircond-backend/internal/app/config"
	"aircond-backend/internal/app/dsn"
	"aircond-backend/internal/app/handler"
	"aircond-backend/internal/app/middleware"
	"aircond-backend/internal/app/redis"
	"aircond-backend/internal/app/repository"
	"aircond-backend/internal/app/storage"
	"aircond-backend/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает все зависимости и запускает HTTP сервер
func StartServer() {
	logrus.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	if err := repo.SeedStatuses(); err != nil {
		logrus.Errorf("error seeding statuses: %v", err)
	}

	// Redis нужен только для blacklist токенов, без него сервер работает
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		redisClient, err = redis.New(ctx, cfg.Redis)
		cancel()
		if err != nil {
			logrus.Warnf("redis unavailable, token blacklist disabled: %v", err)
			redisClient = nil
		}
	} else {
		logrus.Warn("REDIS_HOST not set, token blacklist disabled")
	}

	// MinIO нужен только для загрузки изображений
	var minioClient *storage.MinIOClient
	if cfg.Minio.Endpoint != "" {
		minioClient, err = storage.NewMinIOClient(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logrus.Warnf("minio unavailable, file uploads disabled: %v", err)
			minioClient = nil
		}
	} else {
		logrus.Warn("MINIO_ENDPOINT not set, file uploads disabled")
	}

	authHandler := handler.NewAuthHandler(repo, redisClient, minioClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()

	// CORS для фронтенда админки
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	application := pkg.NewApp(cfg, r, apiHandler, authMiddleware)
	application.RunApp()
}
