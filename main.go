// File: walegrills/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"walegrills/config"
	"walegrills/cron"
	"walegrills/database"
	kvRepo "walegrills/database/repository/kv"
	ordersRepo "walegrills/database/repository/orders"
	"walegrills/handlers"
	"walegrills/middleware"
	"walegrills/routes"
	"walegrills/services/booking"
	"walegrills/services/catalog"
	"walegrills/services/distance"
	"walegrills/services/events"
	"walegrills/services/forms"
	"walegrills/services/mealplan"
	"walegrills/services/ordering"
	"walegrills/services/payment"
	"walegrills/services/pricing"
	"walegrills/services/tasks"
	"walegrills/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if err := database.InitDB(logger); err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	utils.InitSessionStore()
	utils.InitCache()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// stores.
	checkoutStore := kvRepo.NewRedisStore(utils.GetSessionClient(), utils.CheckoutSessionPrefix)
	mealStore := kvRepo.NewRedisStore(utils.GetSessionClient(), utils.MealSessionPrefix)
	catalogCache := kvRepo.NewRedisStore(utils.GetCacheClient(), utils.CatalogCachePrefix)
	distanceCache := kvRepo.NewRedisStore(utils.GetCacheClient(), utils.DistanceCachePrefix)

	var receipts ordersRepo.ReceiptRepository
	if db := database.Database(); db != nil {
		receipts = ordersRepo.NewMongoReceiptRepo(db)
	}

	// external services.
	distanceService := distance.NewService(config.AppConfig.GoogleAPIKey, config.AppConfig.DistanceOrigin, distanceCache, logger)
	catalogClient := catalog.NewClient(config.AppConfig.APIURL, catalogCache, logger)
	orderClient := ordering.NewClient(config.AppConfig.APIURL, logger)

	var linkIssuer payment.LinkIssuer
	if issuer := payment.NewStripeLinkIssuer(config.AppConfig.StripeKey, config.AppConfig.StripeSuccess, config.AppConfig.StripeCancel); issuer != nil {
		linkIssuer = issuer
	}

	var publisher events.Publisher = events.NopPublisher{}
	if brokers := config.KafkaBrokerList(); len(brokers) > 0 {
		kafka, err := events.NewKafkaPublisher(brokers, config.AppConfig.KafkaTopic, logger)
		if err != nil {
			logger.Error("main: Kafka unavailable, checkout events will not be published", zap.Error(err))
		} else {
			publisher = kafka
		}
	}

	taskRedis := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
	reminders := tasks.NewAsynqReminderScheduler(taskRedis, config.AppConfig.BalanceReminderDays)
	reminderWorker := cron.InitReminderWorker(rootCtx, taskRedis, publisher, logger)

	tariff, err := pricing.LoadTariff(viper.GetViper())
	if err != nil {
		logger.Sugar().Fatalf("main: invalid pricing configuration: %v", err)
	}

	// services.
	collector := forms.NewCollector(distanceService, catalogClient)
	sessionTTL := utils.SessionTTL()

	checkoutService := &booking.DefaultCheckoutService{
		Store:      checkoutStore,
		Forms:      collector,
		Quoter:     pricing.NewQuoter(tariff, distanceService),
		Submitter:  orderClient,
		LinkIssuer: linkIssuer,
		Receipts:   receipts,
		Publisher:  publisher,
		Reminders:  reminders,
		Logger:     logger,
		TTL:        sessionTTL,
		Now:        time.Now,
	}

	mealService := &mealplan.DefaultMealPlanService{
		Store:       mealStore,
		Catalog:     catalogClient,
		Forms:       collector,
		Submitter:   orderClient,
		Receipts:    receipts,
		Publisher:   publisher,
		Logger:      logger,
		DeliveryFee: config.AppConfig.MealDeliveryFee,
		TTL:         sessionTTL,
	}

	tokens, err := utils.NewSessionTokenIssuer(config.AppConfig.JWTSecret)
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}

	// Assemble the handler bundle.
	handlerBundle := handlers.NewHandlerBundle(
		tokens,
		handlers.NewBookingHandler(checkoutService, tokens, sessionTTL, logger),
		handlers.NewMealPlanHandler(mealService, tokens, sessionTTL, logger),
		handlers.NewCatalogHandler(catalogClient, logger),
		handlers.NewDistanceHandler(distanceService, logger),
	)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor(rootCtx, []*redis.Client{utils.GetSessionClient(), utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stop()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if err := reminders.Close(); err != nil {
		logger.Warn("main: failed to close reminder client", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		logger.Warn("main: failed to close event publisher", zap.Error(err))
	}
	if database.MongoClient != nil {
		_ = database.MongoClient.Disconnect(ctx)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
