package main

import (
	"context"
	"database/sql"

	"dataroom-service/internal/MinIO"
	"dataroom-service/internal/config"
	"dataroom-service/internal/handler/httpapi"
	"dataroom-service/internal/migrations"
	"dataroom-service/internal/repository/documentRepo"
	"dataroom-service/internal/repository/profileRepo"
	"dataroom-service/internal/repository/sessionRepo"
	"dataroom-service/internal/repository/userRepo"
	"dataroom-service/internal/service/authService"
	"dataroom-service/internal/service/documentService"
	"dataroom-service/pkg/database/postgres"
	"dataroom-service/pkg/database/redis"
	"dataroom-service/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()
	ctx, _ = logger.New(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.GetLogger(ctx).Fatal("Error loading config", zap.Error(err))
	}

	// миграции гоняем через database/sql поверх pgx stdlib
	sqlDB, err := sql.Open("pgx", cfg.Postgres.DSN())
	if err != nil {
		logger.GetLogger(ctx).Fatal("Failed to open database for migrations", zap.Error(err))
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		logger.GetLogger(ctx).Fatal("Failed to apply migrations", zap.Error(err))
	}
	sqlDB.Close()

	pool, err := postgres.New(ctx, cfg.Postgres)
	if err != nil {
		logger.GetLogger(ctx).Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	redisClient := redis.New(cfg.Redis)

	minioClient, err := MinIO.New(ctx, cfg.MinIO)
	if err != nil {
		logger.GetLogger(ctx).Fatal("Failed to connect to object storage", zap.Error(err))
	}

	authSvc := authService.New(
		userRepo.New(pool),
		cfg.JWTSecret,
		sessionRepo.New(redisClient),
	)
	docSvc := documentService.New(
		documentRepo.New(pool),
		profileRepo.New(pool),
		minioClient,
		cfg.MaxUploadFiles,
		cfg.MaxFileSize,
	)

	h := httpapi.New(authSvc, docSvc, logger.GetLogger(ctx))
	r := httpapi.NewRouter(h)

	logger.GetLogger(ctx).Info("dataroom starting", zap.String("port", cfg.HTTPPort))
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		logger.GetLogger(ctx).Fatal("Failed to serve", zap.Error(err))
	}
}
