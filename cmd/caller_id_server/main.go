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

	"caller_id_server/internal/config"
	"caller_id_server/internal/dao/database"
	"caller_id_server/internal/handler"
	"caller_id_server/internal/https_server"
	"caller_id_server/internal/infrastructure/logger"
	"caller_id_server/internal/infrastructure/mq"
	"caller_id_server/internal/service"
	"caller_id_server/pkg/constants"
	"caller_id_server/pkg/util/jwt"

	"go.uber.org/zap"
)

func main() {
	// 1. config
	conf, err := config.GetConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// 2. logger
	if err := logger.Init(&conf.LogConfig, conf.MainConfig.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	defer zap.L().Sync()
	zap.L().Info("logger initialized", zap.String("mode", conf.MainConfig.Mode))

	if conf.JWTConfig.Secret == "" {
		zap.L().Fatal("ACCESS_TOKEN_SECRET is not set")
	}

	// 3. database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, err := database.Open(ctx, &conf.DatabaseConfig)
	cancel()
	if err != nil {
		zap.L().Fatal("open database failed", zap.Error(err))
	}

	// 4. jwt
	jwt.Init(conf.JWTConfig.Secret, conf.JWTConfig.AccessTokenExpiry)

	// 5. event publisher
	if conf.KafkaConfig.Mode == "kafka" {
		if err := mq.EnsureTopic(&conf.KafkaConfig); err != nil {
			// the topic may already exist or be managed elsewhere
			zap.L().Warn("ensure kafka topic", zap.Error(err))
		}
	}
	publisher, err := mq.NewPublisher(&conf.KafkaConfig)
	if err != nil {
		zap.L().Fatal("init event publisher failed", zap.Error(err))
	}

	// 6. services, handlers, engine
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translations failed", zap.Error(err))
	}
	services := service.NewServices(store.Repos, publisher)
	engine := https_server.Init(handler.NewHandlers(services), conf)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", conf.MainConfig.Host, conf.MainConfig.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		zap.L().Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("shutting down server...")

	shutdownCtx, stop := context.WithTimeout(context.Background(), constants.SHUTDOWN_TIMEOUT_SECONDS*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("server shutdown", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		zap.L().Error("close event publisher", zap.Error(err))
	}
	if err := store.Close(); err != nil {
		zap.L().Error("close database", zap.Error(err))
	}
	zap.L().Info("server stopped")
}
