package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	ucBooking "github.com/BruksfildServices01/barber-queue/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC *ucBooking.CreateAppointment
	statusUC *ucBooking.UpdateStatus
	cancelUC *ucBooking.CancelPending
	listUC   *ucBooking.ListAppointments
	getUC    *ucBooking.GetAppointment
}

func NewAppointmentHandler(
	createUC *ucBooking.CreateAppointment,
	statusUC *ucBooking.UpdateStatus,
	cancelUC *ucBooking.CancelPending,
	listUC *ucBooking.ListAppointments,
	getUC *ucBooking.GetAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC: createUC,
		statusUC: statusUC,
		cancelUC: cancelUC,
		listUC:   listUC,
		getUC:    getUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID      uint   `json:"barber_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"date" binding:"required"`
	RequestedTime string `json:"requested_time" binding:"required"`
	Service       string `json:"service" binding:"required"`
	Notes         string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	var customerID *uint
	if role(c) == models.RoleCustomer {
		id := userID(c)
		customerID = &id
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateAppointmentInput{
		BarberID:      req.BarberID,
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Date:          req.Date,
		RequestedTime: req.RequestedTime,
		Service:       req.Service,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	statuses, ok := statusQuery(c)
	if !ok {
		return
	}

	list, err := h.listUC.Execute(c.Request.Context(), actingBarber(c, requested), c.Query("date"), statuses...)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), actingBarber(c, 0), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Approve(c *gin.Context) { h.setStatus(c, domain.StatusApproved) }
func (h *AppointmentHandler) Reject(c *gin.Context)  { h.setStatus(c, domain.StatusRejected) }
func (h *AppointmentHandler) NoShow(c *gin.Context)  { h.setStatus(c, domain.StatusNoShow) }

func (h *AppointmentHandler) setStatus(c *gin.Context, to domain.Status) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.statusUC.Appointment(c.Request.Context(), actingBarber(c, 0), id, to)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.cancelUC.Execute(c.Request.Context(), actingBarber(c, 0), id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
