package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopfront/account-service/internal/app"
	"github.com/shopfront/account-service/internal/auth"
	"github.com/shopfront/account-service/internal/config"
	"github.com/shopfront/account-service/internal/handler"
	"github.com/shopfront/account-service/internal/middleware"
	"github.com/shopfront/account-service/internal/postgres"
	"github.com/shopfront/account-service/internal/repo"
	"github.com/shopfront/account-service/internal/service"
	"github.com/shopfront/account-service/pkg/cache"
	"github.com/shopfront/account-service/pkg/trm"

	_ "github.com/shopfront/account-service/docs"

	"github.com/joho/godotenv"
)

// @title           Account Service API
// @version         1.0
// @description     Order history and address book API for the storefront.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	db, err := postgres.New(conf.Postgres)
	panicIfErr("failed to connect to db", err)
	defer db.Close()
	panicIfErr("failed to run migrations", postgres.Migrate(db))
	logger.Info("postgres connected")

	addressRepo := repo.NewAddressRepo(db)
	orderRepo := repo.NewOrderRepo(db)
	txManager := trm.NewManager(db)
	ordersCache := cache.NewLRUCache(conf.Cache.Capacity, conf.Cache.TTL)

	addressService := service.NewAddressService(logger, txManager, addressRepo)
	orderService := service.NewOrderService(logger, txManager, orderRepo, ordersCache)

	jwtService := auth.NewJWTService(conf.JWT)
	requireAuth := middleware.RequireAuth(jwtService, logger)

	addressHandler := handler.NewAddressHandler(logger, requireAuth, addressService)
	ordersHandler := handler.NewOrdersHandler(logger, requireAuth, orderService, conf.Orders.PageSize)
	kafkaHandler := handler.NewKafkaHandler(logger, conf.Kafka, orderService)
	handler.RegisterMetrics()

	app := app.New(logger, conf)

	app.SetHTTPHandlers(addressHandler, ordersHandler)
	app.SetConsumers(kafkaHandler)
	app.SetStarters(ordersCache)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	panicIfErr("failed to stop app", app.Stop())
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}
