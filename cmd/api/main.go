package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/zakaria-baami/marketplace-backend-sub001/internal/broker"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/config"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/db"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/httpserver"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/observability"
	"github.com/zakaria-baami/marketplace-backend-sub001/internal/redisclient"
	boutiquerepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/boutique"
	cartrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/cart"
	orderrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/order"
	productrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/product"
	sellerrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/seller"
	statsrepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/stats"
	templaterepo "github.com/zakaria-baami/marketplace-backend-sub001/internal/repository/template"
	boutiquesvc "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/boutique"
	cartsvc "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/cart"
	ordersvc "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/order"
	statssvc "github.com/zakaria-baami/marketplace-backend-sub001/internal/service/stats"
)

func main() {
	cfg := config.FromEnv()

	logger, err := observability.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	if cfg.JaegerEndpoint != "" {
		tp, err := observability.InitTracer(ctx, cfg.JaegerEndpoint)
		if err != nil {
			logger.Fatal("init tracer", zap.Error(err))
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	var publisher broker.Publisher = broker.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = broker.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
		logger.Info("kafka publisher enabled", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	statsRepo := statsrepo.NewPostgres(dbpool)
	boutiqueRepo := boutiquerepo.NewPostgres(dbpool)
	templateRepo := templaterepo.NewPostgres(dbpool)
	sellerRepo := sellerrepo.NewPostgres(dbpool)

	cartService := cartsvc.New(cartRepo, productRepo, logger)
	orderService := ordersvc.New(orderRepo, cartService, publisher, logger)
	boutiqueService := boutiquesvc.New(boutiqueRepo, templateRepo, sellerRepo, logger)

	statsService := statssvc.New(statsRepo, nil, cfg.StatsCacheTTL, logger)
	if cfg.RedisAddr != "" {
		cacheClient, err := redisclient.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatal("connect to redis", zap.Error(err))
		}
		defer cacheClient.Close()
		statsService = statssvc.New(statsRepo, cacheClient, cfg.StatsCacheTTL, logger)
		logger.Info("stats cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:     cartService,
		OrderSvc:    orderService,
		BoutiqueSvc: boutiqueService,
		StatsSvc:    statsService,
		Products:    productRepo,
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
