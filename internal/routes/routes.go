package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/medilinkhq/telehealth-api/internal/assistant"
	"github.com/medilinkhq/telehealth-api/internal/audit"
	"github.com/medilinkhq/telehealth-api/internal/chat"
	"github.com/medilinkhq/telehealth-api/internal/config"
	"github.com/medilinkhq/telehealth-api/internal/handlers"
	infraRepo "github.com/medilinkhq/telehealth-api/internal/infra/repository"
	"github.com/medilinkhq/telehealth-api/internal/metrics"
	"github.com/medilinkhq/telehealth-api/internal/middleware"
	"github.com/medilinkhq/telehealth-api/internal/models"
	ucAppointment "github.com/medilinkhq/telehealth-api/internal/usecase/appointment"
	ucSchedule "github.com/medilinkhq/telehealth-api/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	redisClient *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	assistantClient := assistant.NewClient(cfg.AIServiceURL)
	assistantCache := assistant.NewHistoryCache(redisClient)

	chatHub := chat.NewHub(db, cfg, log)

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	confirmUC := ucAppointment.NewConfirmAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	cancelUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
		time.Duration(cfg.CancelLeadMinutes)*time.Minute,
	)

	listMineUC := ucAppointment.NewListMyAppointments(
		appointmentRepo,
	)

	scheduleUC := ucSchedule.NewDoctorSchedule(
		appointmentRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, log)
	doctorHandler := handlers.NewDoctorHandler(db, auditDispatcher, scheduleUC)
	patientHandler := handlers.NewPatientHandler(db)
	specializationHandler := handlers.NewSpecializationHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		confirmUC,
		cancelUC,
		listMineUC,
	)

	chatHandler := handlers.NewChatHandler(db)
	assistantHandler := handlers.NewAssistantHandler(db, assistantClient, assistantCache, log)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// WEBSOCKET
	// ======================================================
	r.GET("/ws/chat", chatHub.HandleWS)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgot-password", authHandler.ForgotPassword)
		api.POST("/auth/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// PUBLIC DIRECTORY
		// ------------------------------
		api.GET("/specializations", specializationHandler.List)
		api.GET("/doctors", doctorHandler.List)
		api.GET("/doctors/:id", doctorHandler.GetByID)
		api.GET("/doctors/:id/availability", doctorHandler.ListAvailability)
		api.GET("/doctors/:id/reviews", doctorHandler.ListReviews)

		// ------------------------------
		// GUEST AI CHAT
		// ------------------------------
		api.POST("/ai/guest-chat", assistantHandler.GuestChat)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/doctors/:id/schedule", doctorHandler.Schedule)
			secured.POST("/doctors/:id/reviews", doctorHandler.CreateReview)

			// own-profile routes live under /me to keep the public
			// /doctors/:id tree free of wildcard conflicts
			doctorOnly := secured.Group("/me/doctor")
			doctorOnly.Use(middleware.RequireRole(models.RoleDoctor))
			{
				doctorOnly.GET("", doctorHandler.GetMe)
				doctorOnly.PUT("", doctorHandler.UpdateMe)
				doctorOnly.POST("/availability", doctorHandler.CreateAvailability)
				doctorOnly.DELETE("/availability/:slotId", doctorHandler.DeleteAvailability)
			}

			secured.GET("/me/patient", patientHandler.GetMe)
			secured.PUT("/me/patient", patientHandler.UpdateMe)
			secured.GET("/patients/:id", patientHandler.GetByID)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Book)
			secured.GET("/appointments/my-appointments", appointmentHandler.ListMine)
			secured.PUT("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PUT("/appointments/:id/cancel", appointmentHandler.Cancel)

			// ------------------------------
			// CHAT / ASSISTANT
			// ------------------------------
			secured.GET("/chat/:appointmentId/history", chatHandler.History)

			secured.POST("/ai/chat", assistantHandler.Chat)
			secured.GET("/ai/sessions", assistantHandler.ListSessions)
			secured.GET("/ai/sessions/:sessionId", assistantHandler.SessionMessages)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/metrics", metrics.Handler())
}
