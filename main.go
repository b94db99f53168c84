package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"yumres/config"
	"yumres/cron"
	"yumres/database"
	conversationRepoPkg "yumres/database/repository/conversation"
	customerRepoPkg "yumres/database/repository/customer"
	reservationRepoPkg "yumres/database/repository/reservation"
	restaurantRepoPkg "yumres/database/repository/restaurant"
	"yumres/handlers"
	"yumres/middleware"
	"yumres/routes"
	"yumres/services/agent"
	availabilitySvc "yumres/services/availability"
	conversationSvc "yumres/services/conversation"
	reservationSvc "yumres/services/reservation"
	restaurantSvc "yumres/services/restaurant"
	"yumres/services/tasks"
	"yumres/services/whatsapp"
	"yumres/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// Repositories.
	restaurantRepo := restaurantRepoPkg.NewMongoRestaurantRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	customerRepo := customerRepoPkg.NewMongoCustomerRepo()
	conversationRepo := conversationRepoPkg.NewMongoConversationRepo()

	// Services.
	restaurantService := &restaurantSvc.Service{Repo: restaurantRepo}

	availabilityService := &availabilitySvc.Service{
		Restaurants:   restaurantService,
		Reservations:  reservationRepo,
		DefaultTables: config.AppConfig.DefaultVirtualTables,
	}

	reservationService := &reservationSvc.Service{
		Repo:      reservationRepo,
		Reminders: tasks.NewScheduler(),
	}

	toolExecutor := &agent.ToolExecutor{
		Restaurants:  restaurantService,
		Availability: availabilityService,
		Reservations: reservationService,
		Logger:       logger,
	}
	agentLoop := &agent.Loop{
		Chat:          agent.NewOpenAIChatClient(config.AppConfig.OpenAIAPIKey, config.AppConfig.OpenAIBaseURL),
		Model:         config.AppConfig.OpenAIModel,
		Executor:      toolExecutor,
		MaxToolRounds: config.AppConfig.AgentMaxToolRounds,
		Logger:        logger,
	}

	inboundService := &whatsapp.InboundService{
		Restaurants:   restaurantService,
		Customers:     customerRepo,
		Conversations: conversationRepo,
		Agent:         agentLoop,
		Providers:     whatsapp.ProviderFor,
		HistoryWindow: config.AppConfig.AgentHistoryWindow,
		Logger:        logger,
	}

	conversationService := &conversationSvc.Service{
		Repo:        conversationRepo,
		Customers:   customerRepo,
		Restaurants: restaurantService,
		Sender: func(tag string) (conversationSvc.TextSender, error) {
			return whatsapp.ProviderFor(tag)
		},
	}

	// Handlers.
	restaurantHandler := handlers.NewRestaurantHandler(restaurantService)
	reservationHandler := handlers.NewReservationHandler(reservationService, availabilityService)
	conversationHandler := handlers.NewConversationHandler(conversationService)
	webhookHandler := handlers.NewWebhookHandler(inboundService, restaurantService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetRestaurantHandler:    restaurantHandler.GetRestaurantHandler,
		UpdateRestaurantHandler: restaurantHandler.UpdateRestaurantHandler,
		ListTablesHandler:       restaurantHandler.ListTablesHandler,
		CreateTableHandler:      restaurantHandler.CreateTableHandler,
		UpdateTableHandler:      restaurantHandler.UpdateTableHandler,
		DeleteTableHandler:      restaurantHandler.DeleteTableHandler,

		ListReservationsHandler:        reservationHandler.ListReservationsHandler,
		GetReservationHandler:          reservationHandler.GetReservationHandler,
		CreateReservationHandler:       reservationHandler.CreateReservationHandler,
		UpdateReservationHandler:       reservationHandler.UpdateReservationHandler,
		UpdateReservationStatusHandler: reservationHandler.UpdateReservationStatusHandler,
		DeleteReservationHandler:       reservationHandler.DeleteReservationHandler,
		CheckAvailabilityHandler:       reservationHandler.CheckAvailabilityHandler,

		ListConversationsHandler:   conversationHandler.ListConversationsHandler,
		GetConversationHandler:     conversationHandler.GetConversationHandler,
		AssignConversationHandler:  conversationHandler.AssignConversationHandler,
		ResolveConversationHandler: conversationHandler.ResolveConversationHandler,
		ArchiveConversationHandler: conversationHandler.ArchiveConversationHandler,
		SendAgentReplyHandler:      conversationHandler.SendAgentReplyHandler,

		VerifyWebhookHandler:  webhookHandler.VerifyWebhookHandler,
		ReceiveWebhookHandler: webhookHandler.ReceiveWebhookHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker.
	cron.InitReminderWorker(restaurantService)

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
