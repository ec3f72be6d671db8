package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sokoni/config"
	"sokoni/cron"
	"sokoni/database"
	categoryRepoPkg "sokoni/database/repository/category"
	notificationRepoPkg "sokoni/database/repository/notification"
	sellerRepoPkg "sokoni/database/repository/seller"
	sellerRequestRepoPkg "sokoni/database/repository/sellerrequest"
	subscriptionRepoPkg "sokoni/database/repository/subscription"
	userRepoPkg "sokoni/database/repository/user"
	withdrawalRepoPkg "sokoni/database/repository/withdrawal"
	"sokoni/handlers"
	"sokoni/middleware"
	"sokoni/routes"
	"sokoni/services/notification"
	"sokoni/services/payment"
	"sokoni/services/seller"
	"sokoni/services/storage"
	"sokoni/services/subscription"
	"sokoni/services/tasks"
	"sokoni/services/user"
	"sokoni/services/withdrawal"
	"sokoni/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()

	storageService, err := storage.NewFromCredentials(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	mailer, err := notification.NewSMTPMailer(notification.SMTPConfig{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUsername,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.SMTPFrom,
	})
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize mailer: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLoggerMiddleware(logger))

	// Repositories.
	usersRepo := userRepoPkg.NewMongoUserRepo()
	categoriesRepo := categoryRepoPkg.NewMongoCategoryRepo()
	requestsRepo := sellerRequestRepoPkg.NewMongoSellerRequestRepo()
	sellersRepo := sellerRepoPkg.NewMongoSellerRepo()
	subscriptionsRepo := subscriptionRepoPkg.NewMongoSubscriptionRepo()
	withdrawalsRepo := withdrawalRepoPkg.NewMongoWithdrawalRepo()
	notificationsRepo := notificationRepoPkg.NewMongoNotificationRepo()

	// Collaborators.
	gateway := payment.NewStripeGateway(config.AppConfig.StripeKey, logger)
	enqueuer := tasks.NewAsynqEnqueuer(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}, logger)
	defer enqueuer.Close()

	notificationService := &notification.DefaultNotificationService{
		Mailer:    mailer,
		FCMClient: utils.FCMClient,
		Users:     usersRepo,
		Logger:    logger,
	}

	// Services.
	userService := &user.DefaultUserService{
		Repo: usersRepo,
	}
	sellerService := &seller.DefaultSellerService{
		Requests:      requestsRepo,
		Sellers:       sellersRepo,
		Users:         usersRepo,
		Categories:    categoriesRepo,
		Notifications: notificationsRepo,
		Tasks:         enqueuer,
		Logger:        logger,
	}
	subscriptionService := &subscription.DefaultSubscriptionService{
		Subs:    subscriptionsRepo,
		Users:   usersRepo,
		Gateway: gateway,
		Tasks:   enqueuer,
		Cfg: subscription.Config{
			PublicBaseURL: config.AppConfig.PublicBaseURL,
			Currency:      config.AppConfig.SubscriptionCurrency,
			MonthlyAmount: config.AppConfig.MonthlyPlanAmount,
			AnnualAmount:  config.AppConfig.AnnualPlanAmount,
		},
		Logger: logger,
	}
	withdrawalService := &withdrawal.DefaultWithdrawalService{
		Withdrawals:   withdrawalsRepo,
		Sellers:       sellersRepo,
		Users:         usersRepo,
		Notifications: notificationsRepo,
		Gateway:       gateway,
		Tasks:         enqueuer,
		Logger:        logger,
	}

	// Background workers.
	cron.InitNotificationWorker(notificationService)
	cron.InitSubscriptionSweeper(subscriptionService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo: usersRepo,

		Users:         &handlers.UserHandler{Service: userService},
		Sellers:       &handlers.SellerHandler{Service: sellerService},
		Subscriptions: &handlers.SubscriptionHandler{Service: subscriptionService},
		Withdrawals:   &handlers.WithdrawalHandler{Service: withdrawalService},
		Notifications: &handlers.NotificationHandler{Repo: notificationsRepo},
		Categories:    &handlers.CategoryHandler{Repo: categoriesRepo},
		Storage:       &handlers.StorageHandler{StorageSvc: storageService},
	}

	routes.RegisterRoutes(router, handlerBundle)

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
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
