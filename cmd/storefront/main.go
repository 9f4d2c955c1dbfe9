package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/haysnairpa/urbanwear/internal/cart"
	"github.com/haysnairpa/urbanwear/internal/catalog"
	"github.com/haysnairpa/urbanwear/internal/checkout"
	"github.com/haysnairpa/urbanwear/internal/config"
	storehttp "github.com/haysnairpa/urbanwear/internal/http"
	"github.com/haysnairpa/urbanwear/internal/identity"
	"github.com/haysnairpa/urbanwear/internal/orders"
	"github.com/haysnairpa/urbanwear/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	log := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	db, err := orders.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		if err := db.Client().Disconnect(disconnectCtx); err != nil {
			log.WithError(err).Error("failed to disconnect from mongodb")
		}
	}()

	orderStore := orders.NewMongoStore(db)
	if err := orderStore.CreateIndexes(ctx); err != nil {
		log.WithError(err).Fatal("failed to create order indexes")
	}

	catalogClient := catalog.NewClient(cfg.CatalogBaseURL, cfg.RequestTimeout)
	identityClient := identity.NewProvider(cfg.IdentityBaseURL, cfg.IdentityAPIKey, cfg.RequestTimeout, log)

	cartEngine := cart.New(cart.NewRedisStorage(redisClient), log)
	history := session.NewHistory(identityClient, orderStore, log)
	defer history.Close()

	gateway := &checkout.SimulatedGateway{Delay: cfg.PaymentDelay}
	flow := checkout.NewFlow(cartEngine, history, gateway, log)

	router := storehttp.NewRouter(storehttp.Deps{
		Catalog:  catalogClient,
		Cart:     cartEngine,
		Flow:     flow,
		Session:  history,
		Identity: identityClient,
	}, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("storefront listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
	log.Info("storefront stopped")
}

func newLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
