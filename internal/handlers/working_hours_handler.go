package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/barber-queue/internal/usecase/schedule"
)

type WorkingHoursHandler struct {
	uc *ucSchedule.WorkingHours
}

func NewWorkingHoursHandler(uc *ucSchedule.WorkingHours) *WorkingHoursHandler {
	return &WorkingHoursHandler{uc: uc}
}

type WorkingHoursRequest struct {
	BarberID    uint   `json:"barber_id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable *bool  `json:"is_available"`
}

// input binds the body and resolves the barber it applies to.
func (h *WorkingHoursHandler) input(c *gin.Context) (ucSchedule.WorkingHoursInput, bool) {
	var req WorkingHoursRequest
	if !bindJSON(c, &req) {
		return ucSchedule.WorkingHoursInput{}, false
	}
	barberID, ok := requireBarber(c, req.BarberID)
	if !ok {
		return ucSchedule.WorkingHoursInput{}, false
	}
	return ucSchedule.WorkingHoursInput{
		BarberID:    barberID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsAvailable: req.IsAvailable,
	}, true
}

func (h *WorkingHoursHandler) List(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	barberID, ok := requireBarber(c, requested)
	if !ok {
		return
	}

	hours, err := h.uc.List(c.Request.Context(), barberID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, hours)
}

func (h *WorkingHoursHandler) Count(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	barberID, ok := requireBarber(c, requested)
	if !ok {
		return
	}

	n, err := h.uc.Count(c.Request.Context(), barberID)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, n)
}

func (h *WorkingHoursHandler) Create(c *gin.Context) {
	in, ok := h.input(c)
	if !ok {
		return
	}

	wh, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, wh)
}

// Replace is the confirmation step after schedule_limit_reached: it clears
// the barber's hours and stores the new entry.
func (h *WorkingHoursHandler) Replace(c *gin.Context) {
	in, ok := h.input(c)
	if !ok {
		return
	}

	wh, err := h.uc.Replace(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, wh)
}

func (h *WorkingHoursHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, ok := h.input(c)
	if !ok {
		return
	}

	wh, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, wh)
}

func (h *WorkingHoursHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), actingBarber(c, 0), id); err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, gin.H{"deleted": true})
}
