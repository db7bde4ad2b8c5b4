package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vitalink-health/vitalink-backend/internal/handlers"
	"github.com/vitalink-health/vitalink-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	MeHandler           *handlers.MeHandler
	ChatHandler         *handlers.ChatHandler
	AssessmentHandler   *handlers.AssessmentHandler
	MedicationHandler   *handlers.MedicationHandler
	VitalHandler        *handlers.VitalHandler
	DocumentHandler     *handlers.DocumentHandler
	NotificationHandler *handlers.NotificationHandler
	ReminderHandler     *handlers.ReminderHandler
	WsHandler           gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	//-----------------------------------------
	// Cors Setup
	//-----------------------------------------
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders: []string{"X-Conversation-ID"},
	}))

	//-----------------------------------------
	// Health Routes
	//-----------------------------------------
	router.GET("/healthz", handlers.Healthz)

	//-----------------------------------------
	// Public Routes
	//-----------------------------------------
	api := router.Group("/api")
	{
		api.POST("/register", cfg.AuthHandler.Register)
		api.POST("/login", cfg.AuthHandler.Login)
		api.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	//------------------------------------------
	// Protected Routes
	//------------------------------------------
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.GET("/ws", cfg.WsHandler)

	//Me
	protected.GET("/me", cfg.MeHandler.GetMe)
	protected.PUT("/me", cfg.MeHandler.UpdateMe)

	//Chat
	protected.POST("/chat", cfg.ChatHandler.Chat)
	protected.GET("/conversations", cfg.ChatHandler.GetConversations)
	protected.GET("/conversations/:id/messages", cfg.ChatHandler.GetConversationMessages)
	protected.DELETE("/conversations/:id", cfg.ChatHandler.DeleteConversation)

	//Assessments
	protected.POST("/predict-disease", cfg.AssessmentHandler.PredictDisease)
	protected.GET("/assessments", cfg.AssessmentHandler.GetAssessments)

	//Medications
	protected.POST("/medications", cfg.MedicationHandler.Create)
	protected.GET("/medications", cfg.MedicationHandler.GetMine)
	protected.PUT("/medications/:id", cfg.MedicationHandler.Update)
	protected.DELETE("/medications/:id", cfg.MedicationHandler.Deactivate)

	//Vitals
	protected.POST("/vitals", cfg.VitalHandler.Create)
	protected.GET("/vitals", cfg.VitalHandler.GetMine)
	protected.DELETE("/vitals/:id", cfg.VitalHandler.Delete)

	//Documents
	protected.POST("/documents", cfg.DocumentHandler.Upload)
	protected.GET("/documents", cfg.DocumentHandler.GetMine)
	protected.DELETE("/documents/:id", cfg.DocumentHandler.Delete)

	//Notifications
	protected.GET("/notifications", cfg.NotificationHandler.GetMine)
	protected.PUT("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
	protected.PUT("/notifications/:id/read", cfg.NotificationHandler.MarkRead)

	//Reminder sweep
	protected.POST("/internal/reminder-sweep", cfg.ReminderHandler.SweepNow)

	return router
}
