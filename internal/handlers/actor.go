package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/booking"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/middleware"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ======================================================
// CALLER
// ======================================================

func userID(c *gin.Context) uint {
	return c.GetUint(middleware.ContextUserID)
}

func role(c *gin.Context) string {
	return c.GetString(middleware.ContextUserRole)
}

// actingBarber resolves which barber the request is for. Barbers always act
// for themselves; admins name a barber or get 0, meaning any.
func actingBarber(c *gin.Context, requested uint) uint {
	if role(c) == models.RoleBarber {
		return userID(c)
	}
	return requested
}

// requireBarber is actingBarber for writes that need a concrete barber.
func requireBarber(c *gin.Context, requested uint) (uint, bool) {
	id := actingBarber(c, requested)
	if id == 0 {
		httperr.BadRequest(c, "missing_barber_id", "Please provide a barber ID.")
		return 0, false
	}
	return id, true
}

// ======================================================
// PARAMS
// ======================================================

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, key string) (uint, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Invalid "+key+".")
		return 0, false
	}
	return uint(n), true
}

// statusQuery parses repeated ?status= values.
func statusQuery(c *gin.Context) ([]domain.Status, bool) {
	var out []domain.Status
	for _, raw := range c.QueryArray("status") {
		s, ok := domain.ParseStatus(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_status", "Invalid status value.")
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		httperr.WriteDetails(c, http.StatusBadRequest, "invalid_request", "Invalid request.", err.Error())
		return false
	}
	return true
}
