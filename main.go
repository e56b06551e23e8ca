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

	"finance-tracker-backend/config"
	"finance-tracker-backend/internal/api"
	"finance-tracker-backend/internal/database"
	"finance-tracker-backend/internal/events"
	"finance-tracker-backend/internal/services"
	"finance-tracker-backend/pkg/logger"

	"go.uber.org/zap"
)

// @title finance-tracker-backend API
// @version 1.0
// @description Personal finance tracker: transactions, categories, budgets and budget notifications.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	if err := logger.InitLogger(&logger.Config{
		Level:      cfg.LogLevel,
		Filename:   cfg.LogFilename,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
		Console:    cfg.LogConsole,
	}); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	if _, err := database.Connect(cfg.DBDriver, cfg.DSN()); err != nil {
		logger.Log.Fatal("Failed to connect database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}

	if err := database.ConnectRedis(cfg); err != nil {
		logger.Log.Fatal("Failed to connect redis", zap.String("addr", cfg.RedisFullAddr()), zap.Error(err))
	}
	if database.RedisClient == nil {
		logger.Log.Warn("Redis not configured, token denylist and user cache are disabled")
	}

	if cfg.AMQPURL != "" {
		client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey)
		if err != nil {
			logger.Log.Fatal("Failed to connect message broker", zap.Error(err))
		}
		defer client.Close()
		events.DefaultPublisher = client
	}

	services.NotificationLocation = cfg.Location()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
}
