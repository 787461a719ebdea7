package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/httpresp"
	ucBooking "github.com/BruksfildServices01/barber-queue/internal/usecase/booking"
)

type WalkInHandler struct {
	statusUC *ucBooking.UpdateStatus
	getUC    *ucBooking.GetWalkIn
	listUC   *ucBooking.ListWalkIns
}

func NewWalkInHandler(
	statusUC *ucBooking.UpdateStatus,
	getUC *ucBooking.GetWalkIn,
	listUC *ucBooking.ListWalkIns,
) *WalkInHandler {
	return &WalkInHandler{
		statusUC: statusUC,
		getUC:    getUC,
		listUC:   listUC,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// List returns one barber's walk-ins for ?date=, filtered by any
// repeated ?status= values.
func (h *WalkInHandler) List(c *gin.Context) {
	requested, ok := queryUint(c, "barber_id")
	if !ok {
		return
	}
	barberID, ok := requireBarber(c, requested)
	if !ok {
		return
	}
	statuses, ok := statusQuery(c)
	if !ok {
		return
	}

	list, err := h.listUC.Execute(c.Request.Context(), barberID, c.Query("date"), statuses...)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *WalkInHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	w, err := h.getUC.Execute(c.Request.Context(), actingBarber(c, 0), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, w)
}

// UpdateStatus applies a manual decision to a walk-in. From waiting only
// rejected and no-show are reachable; serving and completion run through
// the queue.
func (h *WalkInHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c)
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

	w, err := h.statusUC.WalkIn(c.Request.Context(), actingBarber(c, 0), id, to)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, w)
}
