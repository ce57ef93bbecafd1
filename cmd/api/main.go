package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/sweetshop/inventory-service/config"
	"github.com/sweetshop/inventory-service/internal/auth"
	"github.com/sweetshop/inventory-service/pkg/broker"
	"github.com/sweetshop/inventory-service/pkg/cache"
	"github.com/sweetshop/inventory-service/pkg/database/postgres"
	"github.com/sweetshop/inventory-service/pkg/logger"
	"github.com/sweetshop/inventory-service/pkg/middleware"

	catalogRepoPkg "github.com/sweetshop/inventory-service/internal/catalog/repository"

	ledgerH "github.com/sweetshop/inventory-service/internal/ledger/handler"
	ledgerListenerPkg "github.com/sweetshop/inventory-service/internal/ledger/listener"
	ledgerRepoPkg "github.com/sweetshop/inventory-service/internal/ledger/repository"
	ledgerUCPkg "github.com/sweetshop/inventory-service/internal/ledger/usecase"

	orderH "github.com/sweetshop/inventory-service/internal/order/handler"
	orderRepoPkg "github.com/sweetshop/inventory-service/internal/order/repository"
	orderUCPkg "github.com/sweetshop/inventory-service/internal/order/usecase"

	reportH "github.com/sweetshop/inventory-service/internal/report/handler"
	reportRepoPkg "github.com/sweetshop/inventory-service/internal/report/repository"
	reportUCPkg "github.com/sweetshop/inventory-service/internal/report/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.New(cfg)
	defer appLogger.Sync()

	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("connected to PostgreSQL", zap.String("db_name", cfg.Postgres.DBName))

	var cacheClient cache.Cache
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("could not connect to Redis, running without cache", zap.Error(err))
	} else {
		defer redisClient.Close()
		cacheClient = redisClient
		appLogger.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	catalogRepo := catalogRepoPkg.NewPGRepository(db)
	ledgerRepo := ledgerRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	reportRepo := reportRepoPkg.NewPGRepository(db)

	ledgerUC := ledgerUCPkg.NewLedgerUseCase(ledgerRepo, catalogRepo, cacheClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, catalogRepo, cacheClient, appLogger)
	reportUC := reportUCPkg.NewReportUseCase(reportRepo, catalogRepo, cacheClient, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Kafka.Enabled {
		consumer := broker.NewConsumer(&broker.Config{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
			GroupID: cfg.Kafka.GroupID,
		})
		defer consumer.Close()
		appLogger.Info("connected to Kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)

		stockListener := ledgerListenerPkg.NewStockListener(consumer, ledgerUC, appLogger)
		go stockListener.Start(ctx)
	}

	ledgerHandler := ledgerH.NewLedgerHandler(ledgerUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	reportHandler := reportH.NewReportHandler(reportUC, appLogger)

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey)

	if cfg.Server.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryHandler(appLogger))
	router.Use(logger.GinMiddleware(appLogger))
	router.Use(middleware.RequestIDMiddleware())

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtManager, appLogger))
	{
		inventory := api.Group("/inventory")
		{
			inventory.POST("/log", middleware.RequireRole(auth.RoleAdmin), ledgerHandler.LogStockChange)
			inventory.GET("/logs", reportHandler.ListLogs)
			inventory.GET("/report", reportHandler.GetReport)
			inventory.GET("/alerts", reportHandler.GetStockAlerts)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.GetOrders)
		}
	}

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:    port,
		Handler: router,
	}

	go func() {
		appLogger.Info("starting HTTP server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("forced shutdown: %v", err)
	}
	appLogger.Info("server stopped")
}
