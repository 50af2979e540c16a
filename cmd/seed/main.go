package main

import (
	"context"
	"errors"
	"log"
	"time"

	"caller_id_server/internal/config"
	"caller_id_server/internal/dao/database"
	"caller_id_server/internal/dao/database/seed"
	"caller_id_server/internal/infrastructure/logger"

	"go.uber.org/zap"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zap.L().Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	// the seed needs the tables regardless of the server setting
	conf.DatabaseConfig.AutoMigrate = true
	store, err := database.Open(ctx, &conf.DatabaseConfig)
	if err != nil {
		zap.L().Fatal("open database failed", zap.Error(err))
	}
	defer store.Close()

	if err := seed.Run(ctx, store.Repos); err != nil {
		if errors.Is(err, seed.ErrAlreadySeeded) {
			zap.L().Info("demo data already present, nothing to do")
			return
		}
		zap.L().Fatal("seed failed", zap.Error(err))
	}
	zap.L().Info("database seeded successfully")
}
