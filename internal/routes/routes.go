package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/config"
	"github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/handlers"
	"github.com/BruksfildServices01/barber-queue/internal/logging"
	"github.com/BruksfildServices01/barber-queue/internal/metrics"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
	ucBooking "github.com/BruksfildServices01/barber-queue/internal/usecase/booking"
	ucSchedule "github.com/BruksfildServices01/barber-queue/internal/usecase/schedule"
)

// Deps are the long-lived components built in main.
type Deps struct {
	Store    booking.Store
	Manager  *queue.Manager
	Notifier notify.Notifier
	Clock    timezone.Clock
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, d Deps) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(logging.GinLogger(d.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// 🔧 INFRA
	// ======================================================
	calc := availability.NewCalculator(d.Store, cfg.Booking.BufferMinutes, d.Logger)
	resolver := availability.NewResolver(calc, d.Metrics)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	checkUC := ucBooking.NewCheckAvailability(d.Store, resolver, cfg.Booking)
	createUC := ucBooking.NewCreateAppointment(d.Store, resolver, cfg.Booking, d.Logger)
	walkInUC := ucBooking.NewCreateWalkIn(d.Store, resolver, d.Manager, d.Notifier, cfg.Booking, d.Logger)
	statusUC := ucBooking.NewUpdateStatus(d.Store, d.Manager)
	cancelUC := ucBooking.NewCancelPending(d.Store, d.Logger)
	listUC := ucBooking.NewListAppointments(d.Store)
	getAppointmentUC := ucBooking.NewGetAppointment(d.Store)
	getWalkInUC := ucBooking.NewGetWalkIn(d.Store)
	listWalkInsUC := ucBooking.NewListWalkIns(d.Store)

	hoursUC := ucSchedule.NewWorkingHours(d.Store, cfg.Booking.MaxScheduleEntries, d.Clock, d.Logger)
	blockedUC := ucSchedule.NewBlockedSlots(d.Store, cfg.Booking.MaxScheduleEntries, d.Clock, d.Logger)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	publicHandler := handlers.NewPublicHandler(calc, checkUC, walkInUC)
	appointmentHandler := handlers.NewAppointmentHandler(createUC, statusUC, cancelUC, listUC, getAppointmentUC)
	walkInHandler := handlers.NewWalkInHandler(statusUC, getWalkInUC, listWalkInsUC)
	queueHandler := handlers.NewQueueHandler(d.Manager, d.Store, d.Clock)
	hoursHandler := handlers.NewWorkingHoursHandler(hoursUC)
	blockedHandler := handlers.NewBlockedSlotHandler(blockedUC)

	// ======================================================
	// 🩺 OPS
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers/:id/free-slots", publicHandler.FreeIntervals)
			publicAPI.GET("/barbers/:id/queue", queueHandler.Public)
			publicAPI.POST("/available-slots", publicHandler.CheckAvailability)
			publicAPI.POST("/walk-ins", publicHandler.CreateWalkIn)
		}

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))

		// ------------------------------
		// 👤 CUSTOMERS
		// ------------------------------
		customers := secured.Group("/appointments")
		customers.Use(middleware.RequireRole(models.RoleCustomer, models.RoleBarber, models.RoleAdmin))
		{
			customers.POST("", appointmentHandler.Create)
		}

		// ------------------------------
		// ✂️ STAFF
		// ------------------------------
		staff := secured.Group("/")
		staff.Use(middleware.RequireRole(models.RoleBarber, models.RoleAdmin))
		{
			staff.GET("/appointments", appointmentHandler.List)
			staff.GET("/appointments/:id", appointmentHandler.Get)
			staff.DELETE("/appointments/:id", appointmentHandler.Cancel)
			staff.PATCH("/appointments/:id/approve", appointmentHandler.Approve)
			staff.PATCH("/appointments/:id/reject", appointmentHandler.Reject)
			staff.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

			staff.GET("/walk-ins", walkInHandler.List)
			staff.GET("/walk-ins/:id", walkInHandler.Get)
			staff.PUT("/walk-ins/:id/status", walkInHandler.UpdateStatus)

			staff.GET("/queue", queueHandler.Current)
			staff.GET("/queue/completed", queueHandler.Completed)
			staff.POST("/queue/next", queueHandler.Next)
			staff.POST("/queue/complete", queueHandler.CompleteCurrent)
			staff.POST("/queue/recalculate", queueHandler.Recalculate)
			staff.POST("/queue/:id/complete", queueHandler.Complete)
			staff.PUT("/queue/:id/status", queueHandler.UpdateStatus)

			staff.GET("/working-hours", hoursHandler.List)
			staff.GET("/working-hours/count", hoursHandler.Count)
			staff.POST("/working-hours", hoursHandler.Create)
			staff.POST("/working-hours/replace", hoursHandler.Replace)
			staff.PUT("/working-hours/:id", hoursHandler.Update)
			staff.DELETE("/working-hours/:id", hoursHandler.Delete)

			staff.GET("/blocked-slots", blockedHandler.List)
			staff.GET("/blocked-slots/count", blockedHandler.Count)
			staff.GET("/blocked-slots/:id", blockedHandler.Get)
			staff.POST("/blocked-slots", blockedHandler.Create)
			staff.POST("/blocked-slots/replace", blockedHandler.Replace)
			staff.PUT("/blocked-slots/:id", blockedHandler.Update)
			staff.DELETE("/blocked-slots/:id", blockedHandler.Delete)
		}
	}
}
