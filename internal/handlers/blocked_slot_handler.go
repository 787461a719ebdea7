package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucSchedule "github.com/BruksfildServices01/barber-queue/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type BlockedSlotHandler struct {
	uc *ucSchedule.BlockedSlots
}

func NewBlockedSlotHandler(uc *ucSchedule.BlockedSlots) *BlockedSlotHandler {
	return &BlockedSlotHandler{uc: uc}
}

type BlockedSlotRequest struct {
	BarberID  uint   `json:"barber_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason" binding:"max=255"`
}

func (h *BlockedSlotHandler) input(c *gin.Context) (ucSchedule.BlockedSlotInput, bool) {
	var req BlockedSlotRequest
	if !bindJSON(c, &req) {
		return ucSchedule.BlockedSlotInput{}, false
	}
	barberID, ok := requireBarber(c, req.BarberID)
	if !ok {
		return ucSchedule.BlockedSlotInput{}, false
	}
	return ucSchedule.BlockedSlotInput{
		BarberID:  barberID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}, true
}

// ======================================================
// READ
// ======================================================

func (h *BlockedSlotHandler) List(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	barberID, ok := requireBarber(c, requested)
	if !ok {
		return
	}

	slots, err := h.uc.List(c.Request.Context(), barberID, c.Query("date"))
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, slots)
}

func (h *BlockedSlotHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	bs, err := h.uc.Get(c.Request.Context(), actingBarber(c, 0), id)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, bs)
}

func (h *BlockedSlotHandler) Count(c *gin.Context) {
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

// ======================================================
// WRITE
// ======================================================

func (h *BlockedSlotHandler) Create(c *gin.Context) {
	in, ok := h.input(c)
	if !ok {
		return
	}

	bs, err := h.uc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, bs)
}

func (h *BlockedSlotHandler) Replace(c *gin.Context) {
	in, ok := h.input(c)
	if !ok {
		return
	}

	bs, err := h.uc.Replace(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.Created(c, bs)
}

func (h *BlockedSlotHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	in, ok := h.input(c)
	if !ok {
		return
	}

	bs, err := h.uc.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, bs)
}

func (h *BlockedSlotHandler) Delete(c *gin.Context) {
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
