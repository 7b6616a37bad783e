package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/novapay/paycore/internal/pkg/config"
	"github.com/novapay/paycore/internal/pkg/database"
	"github.com/novapay/paycore/internal/pkg/health"
	"github.com/novapay/paycore/internal/pkg/logger"
	"github.com/novapay/paycore/internal/pkg/middleware"
	natspkg "github.com/novapay/paycore/internal/pkg/nats"
	nrpkg "github.com/novapay/paycore/internal/pkg/newrelic"
	"github.com/novapay/paycore/internal/pkg/server"
	"github.com/novapay/paycore/services/payments/gateway"
	natsHandler "github.com/novapay/paycore/services/payments/handler/nats"
	"github.com/novapay/paycore/services/payments/repository"
	"github.com/novapay/paycore/services/payments/usecase"
)

func main() {
	appName := "payments-service"
	configs := config.InitConfig(os.Getenv("CONFIG_PATH"))

	nrApp := nrpkg.InitNewRelic(configs)
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.NewZapLogger(configs.Logger, appName, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()
	logger.SetGlobalLogger(zapLogger)

	zapLogger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment))

	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	natsClient, err := natspkg.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	paymentRepo := repository.NewPaymentRepo(configs, postgresClient.GetDB(), redisClient)
	processor := gateway.NewProcessorClient(configs, zapLogger)
	eventGW := gateway.NewEventGateway(configs, natsClient)

	paymentUC := usecase.NewPaymentUC(paymentRepo, paymentRepo, paymentRepo, processor, eventGW, configs)

	nh := natsHandler.NewNatsHandler(paymentUC, natsClient, configs)
	if err := nh.InitNATSConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", logger.Err(err))
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	reconciler := usecase.NewReconciler(paymentUC)
	go reconciler.Run(workerCtx)

	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(ctx context.Context) error {
		stopWorker()
		nh.Unsubscribe()
		return nil
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestIDMiddleware())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	health.RegisterHealthEndpoints(e, appName)

	e.GET("/ops/gateway/breaker", func(c echo.Context) error {
		return c.JSON(http.StatusOK, processor.BreakerStats())
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server exited with error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(ctx); err != nil {
		zapLogger.Error("Component shutdown failed", logger.Err(err))
	}
}
