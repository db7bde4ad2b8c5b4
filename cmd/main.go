package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/vitalink-health/vitalink-backend/internal/ai"
	"github.com/vitalink-health/vitalink-backend/internal/db"
	"github.com/vitalink-health/vitalink-backend/internal/handlers"
	"github.com/vitalink-health/vitalink-backend/internal/logger"
	"github.com/vitalink-health/vitalink-backend/internal/middleware"
	"github.com/vitalink-health/vitalink-backend/internal/repos"
	"github.com/vitalink-health/vitalink-backend/internal/server"
	"github.com/vitalink-health/vitalink-backend/internal/services"
	"github.com/vitalink-health/vitalink-backend/internal/socket"
	"github.com/vitalink-health/vitalink-backend/internal/utils"
)

func main() {
	// Logger Setup
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on process environment")
	}

	// Environment Variables
	log.Info("Loading environment variables now...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	redisAddress := utils.GetEnv("REDIS_ADDRESS", "localhost:6379", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)

	// Postgres Setup
	log.Info("Setting up Postgres now...")
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Error("DB init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repositories Setup
	log.Info("Setting up repositories now...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	conversationRepo := repos.NewConversationRepo(thePG, log)
	messageRepo := repos.NewMessageRepo(thePG, log)
	medicationRepo := repos.NewMedicationRepo(thePG, log)
	vitalRepo := repos.NewVitalRepo(thePG, log)
	documentRepo := repos.NewDocumentRepo(thePG, log)
	notificationRepo := repos.NewNotificationRepo(thePG, log)
	assessmentRepo := repos.NewAssessmentRepo(thePG, log)

	// Websocket Setup
	log.Info("Setting up websocket hub now...")
	wsHub := socket.NewHub(log)

	// Redis PubSub
	redisChanName := "vitalink_hub_broadcast"
	redisPubSub, err := socket.NewRedisPubSub(log, redisAddress, redisPassword, redisChanName)
	if err != nil {
		log.Warn("Failed to init redis pubsub, running single-node", "error", err)
	} else {
		if err := redisPubSub.StartSubscriber(wsHub); err != nil {
			log.Warn("Failed to subscribe to Redis pub/sub", "error", err)
		} else {
			wsHub.SetRedisPubSub(redisPubSub)
			log.Info("Redis pubsub is active")
		}
	}

	// Services Setup
	log.Info("Setting up services now...")
	emailService, err := services.NewEmailService(log)
	if err != nil {
		log.Warn("Could not init EmailService, email delivery disabled", "error", err)
	}
	textService, err := services.NewTextService(log)
	if err != nil {
		log.Warn("Could not init TextService, SMS delivery disabled", "error", err)
	}
	bucketService, err := services.NewBucketService(context.Background(), log)
	if err != nil {
		log.Warn("Could not init BucketService, uploads disabled", "error", err)
	}
	var avatarService services.AvatarService
	if bucketService != nil {
		avatarService, err = services.NewAvatarService(thePG, log, bucketService)
		if err != nil {
			log.Warn("Could not init AvatarService, avatars disabled", "error", err)
		}
	}
	gateway := ai.NewClient(log)
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, avatarService, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	meService := services.NewMeService(thePG, log, userRepo)
	chatService := services.NewChatService(thePG, log, gateway, userRepo, conversationRepo, messageRepo)
	assessmentService := services.NewAssessmentService(thePG, log, gateway, assessmentRepo)
	medicationService := services.NewMedicationService(thePG, log, medicationRepo)
	vitalService := services.NewVitalService(thePG, log, vitalRepo)
	documentService := services.NewDocumentService(thePG, log, documentRepo, bucketService)
	notificationService := services.NewNotificationService(thePG, log, notificationRepo)
	reminderService := services.NewReminderService(thePG, log, medicationRepo, notificationRepo, userRepo, wsHub, emailService, textService)

	// Reminder Schedule
	log.Info("Setting up reminder schedule now...")
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		created, err := reminderService.Sweep(ctx, time.Now().UTC())
		if err != nil {
			log.Error("Scheduled reminder sweep failed", "error", err)
			return
		}
		log.Info("Scheduled reminder sweep complete", "notificationsCreated", created)
	}); err != nil {
		log.Error("Failed to register reminder schedule", "error", err)
		os.Exit(1)
	}
	scheduler.Start()

	// Handler Setup
	log.Info("Setting up handlers now...")
	authHandler := handlers.NewAuthHandler(authService)
	meHandler := handlers.NewMeHandler(meService)
	chatHandler := handlers.NewChatHandler(log, chatService)
	assessmentHandler := handlers.NewAssessmentHandler(log, assessmentService)
	medicationHandler := handlers.NewMedicationHandler(medicationService)
	vitalHandler := handlers.NewVitalHandler(vitalService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	reminderHandler := handlers.NewReminderHandler(log, reminderService)
	wsHandler := handlers.WsHandler(wsHub, log)

	// Middleware Setup
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router Setup
	log.Info("Setting up router now...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		MeHandler:           meHandler,
		ChatHandler:         chatHandler,
		AssessmentHandler:   assessmentHandler,
		MedicationHandler:   medicationHandler,
		VitalHandler:        vitalHandler,
		DocumentHandler:     documentHandler,
		NotificationHandler: notificationHandler,
		ReminderHandler:     reminderHandler,
		WsHandler:           wsHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}

	// On Shutdown
	scheduler.Stop()
	if redisPubSub != nil {
		redisPubSub.Stop()
	}
}
