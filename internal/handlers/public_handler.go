package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/availability"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-queue/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

// PublicHandler serves the endpoints open to walk-up customers.
type PublicHandler struct {
	calc    *availability.Calculator
	checkUC *ucBooking.CheckAvailability
	walkUC  *ucBooking.CreateWalkIn
}

func NewPublicHandler(
	calc *availability.Calculator,
	checkUC *ucBooking.CheckAvailability,
	walkUC *ucBooking.CreateWalkIn,
) *PublicHandler {
	return &PublicHandler{
		calc:    calc,
		checkUC: checkUC,
		walkUC:  walkUC,
	}
}

// ======================================================
// DTOs
// ======================================================

type CheckAvailabilityRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	Date          string `json:"date" binding:"required"`
	RequestedTime string `json:"requested_time" binding:"required"`
	Service       string `json:"service" binding:"required"`
}

type CreateWalkInRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date" binding:"required"`
	ArrivalTime   string `json:"arrival_time" binding:"required"`
	Service       string `json:"service" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// FREE INTERVALS
// ======================================================

func (h *PublicHandler) FreeIntervals(c *gin.Context) {
	barberID, ok := idParam(c)
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	free, err := h.calc.FreeIntervals(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date,
		"slots": free,
	})
}

// ======================================================
// CHECK AVAILABILITY
// ======================================================

func (h *PublicHandler) CheckAvailability(c *gin.Context) {
	var req CheckAvailabilityRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.checkUC.Execute(c.Request.Context(), ucBooking.CheckAvailabilityInput{
		BarberID:      req.BarberID,
		Date:          req.Date,
		RequestedTime: req.RequestedTime,
		Service:       req.Service,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, out)
}

// ======================================================
// WALK-IN
// ======================================================

func (h *PublicHandler) CreateWalkIn(c *gin.Context) {
	var req CreateWalkInRequest
	if !bindJSON(c, &req) {
		return
	}

	out, err := h.walkUC.Execute(c.Request.Context(), ucBooking.CreateWalkInInput{
		BarberID:      req.BarberID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		ArrivalTime:   req.ArrivalTime,
		Service:       req.Service,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, out)
}
