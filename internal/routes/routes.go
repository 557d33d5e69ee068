package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anri-dev/reservation-api/internal/audit"
	"github.com/anri-dev/reservation-api/internal/config"
	"github.com/anri-dev/reservation-api/internal/events"
	"github.com/anri-dev/reservation-api/internal/handlers"
	infraRepo "github.com/anri-dev/reservation-api/internal/infra/repository"
	"github.com/anri-dev/reservation-api/internal/middleware"
	"github.com/anri-dev/reservation-api/internal/storage"
	ucReservation "github.com/anri-dev/reservation-api/internal/usecase/reservation"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log *zap.Logger,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	reservationRepo := infraRepo.NewReservationGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitURL != "" {
		publisher = events.NewAMQPPublisher(cfg.RabbitURL, log)
	}

	letterStore := storage.NewLetterStore(cfg)

	// ======================================================
	// 🧠 USE CASES — RESERVATIONS
	// ======================================================
	createReservationUC := ucReservation.NewCreateReservation(
		reservationRepo,
		auditDispatcher,
	)

	listOwnReservationsUC := ucReservation.NewListOwnReservations(
		reservationRepo,
	)

	showReservationUC := ucReservation.NewShowReservation(
		reservationRepo,
	)

	cancelReservationUC := ucReservation.NewCancelReservation(
		reservationRepo,
		auditDispatcher,
	)

	adminListReservationsUC := ucReservation.NewListReservationsForAdmin(
		reservationRepo,
	)

	approveReservationUC := ucReservation.NewApproveReservation(
		reservationRepo,
		auditDispatcher,
		publisher,
	)

	rejectReservationUC := ucReservation.NewRejectReservation(
		reservationRepo,
		auditDispatcher,
		publisher,
	)

	completeReservationUC := ucReservation.NewCompleteReservation(
		reservationRepo,
		auditDispatcher,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	serviceHandler := handlers.NewServiceHandler(db)
	slotHandler := handlers.NewSlotHandler(db)

	reservationHandler := handlers.NewReservationHandler(
		createReservationUC,
		listOwnReservationsUC,
		showReservationUC,
		cancelReservationUC,
		reservationRepo,
		letterStore,
	)

	adminReservationHandler := handlers.NewAdminReservationHandler(
		adminListReservationsUC,
		approveReservationUC,
		rejectReservationUC,
		completeReservationUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	v1 := r.Group("/api/v1")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🌐 API PÚBLICA (com cache)
		// ------------------------------
		cached := v1.Group("/")
		cached.Use(middleware.CacheMiddleware(rdb, cfg.CacheTTL))
		{
			cached.GET("/services", serviceHandler.PublicList)
			cached.GET("/slots", slotHandler.PublicList)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := v1.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", authHandler.Me)

			// ------------------------------
			// RESERVATIONS
			// ------------------------------
			secured.GET("/reservations", reservationHandler.List)
			secured.POST("/reservations", reservationHandler.Create)
			secured.GET("/reservations/:id", reservationHandler.Show)
			secured.PATCH("/reservations/:id/cancel", reservationHandler.Cancel)
			secured.POST("/reservations/:id/letter", reservationHandler.UploadLetter)

			// ------------------------------
			// ADMIN
			// ------------------------------
			adminAPI := secured.Group("/admin")
			adminAPI.Use(middleware.RequireAdmin())
			{
				adminAPI.GET("/reservations", adminReservationHandler.List)
				adminAPI.POST("/reservations/:id/approve", adminReservationHandler.Approve)
				adminAPI.POST("/reservations/:id/reject", adminReservationHandler.Reject)
				adminAPI.PATCH("/reservations/:id/complete", adminReservationHandler.Complete)

				adminAPI.GET("/services", serviceHandler.List)
				adminAPI.POST("/services", serviceHandler.Create)
				adminAPI.GET("/services/:id", serviceHandler.Show)
				adminAPI.PATCH("/services/:id", serviceHandler.Update)
				adminAPI.DELETE("/services/:id", serviceHandler.Delete)

				adminAPI.GET("/slots", slotHandler.List)
				adminAPI.POST("/slots", slotHandler.Create)
				adminAPI.GET("/slots/:id", slotHandler.Show)
				adminAPI.PATCH("/slots/:id", slotHandler.Update)
				adminAPI.DELETE("/slots/:id", slotHandler.Delete)

				adminAPI.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
