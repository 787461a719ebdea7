package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/dto"
	"github.com/BruksfildServices01/barber-queue/internal/hhmm"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	"github.com/BruksfildServices01/barber-queue/internal/queue"
	"github.com/BruksfildServices01/barber-queue/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type QueueHandler struct {
	manager *queue.Manager
	entries domain.QueueRepository
	clock   timezone.Clock
}

func NewQueueHandler(manager *queue.Manager, entries domain.QueueRepository, clock timezone.Clock) *QueueHandler {
	return &QueueHandler{
		manager: manager,
		entries: entries,
		clock:   clock,
	}
}

// date returns ?date= or today in the shop's timezone.
func (h *QueueHandler) date(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return hhmm.DateOf(h.clock.Now()), true
	}
	if !hhmm.ValidDate(date) {
		writeError(c, hhmm.ErrInvalidFormat)
		return "", false
	}
	return date, true
}

func (h *QueueHandler) target(c *gin.Context) (uint, string, bool) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return 0, "", false
	}
	barberID, ok := requireBarber(c, requested)
	if !ok {
		return 0, "", false
	}
	date, ok := h.date(c)
	if !ok {
		return 0, "", false
	}
	return barberID, date, true
}

func (h *QueueHandler) list(c *gin.Context, barberID uint, date string, statuses ...domain.Status) {
	items, err := h.manager.Snapshot(c.Request.Context(), barberID, date, statuses...)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.QueueItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, dto.QueueItem(it.Entry, it.Appointment, it.WalkIn))
	}
	httpresp.List(c, out)
}

// ======================================================
// VIEWS
// ======================================================

// Current lists waiting and ongoing entries in position order.
func (h *QueueHandler) Current(c *gin.Context) {
	barberID, date, ok := h.target(c)
	if !ok {
		return
	}
	h.list(c, barberID, date, domain.StatusWaiting, domain.StatusOngoing)
}

func (h *QueueHandler) Completed(c *gin.Context) {
	barberID, date, ok := h.target(c)
	if !ok {
		return
	}
	h.list(c, barberID, date, domain.StatusCompleted)
}

// Public shows the waiting line of a barber to customers.
func (h *QueueHandler) Public(c *gin.Context) {
	barberID, ok := idParam(c)
	if !ok {
		return
	}
	date, ok := h.date(c)
	if !ok {
		return
	}
	h.list(c, barberID, date, domain.StatusWaiting, domain.StatusOngoing)
}

// ======================================================
// SERVING
// ======================================================

func (h *QueueHandler) Next(c *gin.Context) {
	barberID, date, ok := h.target(c)
	if !ok {
		return
	}

	entry, err := h.manager.StartServingNext(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *QueueHandler) CompleteCurrent(c *gin.Context) {
	barberID, date, ok := h.target(c)
	if !ok {
		return
	}

	entry, err := h.manager.CompleteCurrent(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *QueueHandler) Complete(c *gin.Context) {
	id, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	entry, err := h.manager.CompleteService(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *QueueHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.ownedEntry(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	to, ok := domain.ParseStatus(req.Status)
	if !ok {
		httperr.BadRequest(c, "invalid_status", "Invalid status value.")
		return
	}

	entry, err := h.manager.SetEntryStatus(c.Request.Context(), id, to)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, entry)
}

func (h *QueueHandler) Recalculate(c *gin.Context) {
	barberID, date, ok := h.target(c)
	if !ok {
		return
	}

	entries, err := h.manager.RecalculateWaitTimes(c.Request.Context(), barberID, date)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, entries)
}

// ownedEntry reads :id and, for barbers, checks the entry is in their queue.
func (h *QueueHandler) ownedEntry(c *gin.Context) (uint, bool) {
	id, ok := idParam(c)
	if !ok {
		return 0, false
	}

	barberID := actingBarber(c, 0)
	if barberID == 0 {
		return id, true
	}

	entry, err := h.entries.GetEntry(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return 0, false
	}
	if entry.BarberID != barberID {
		writeError(c, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}
