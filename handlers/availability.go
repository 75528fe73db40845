package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"therabook/services/availability"
	"therabook/utils"
)

// maxRangeDays bounds range queries so a single request cannot ask for
// years of slot computation.
const maxRangeDays = 92

type AvailabilityHandler struct {
	Service availability.Service
}

func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetDayAvailabilityHandler returns the free slots for one provider on
// one date: GET /api/providers/:providerID/availability?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetDayAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	date, err := time.Parse(utils.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid date; expected YYYY-MM-DD"})
		return
	}

	slots, err := h.Service.DayAvailability(c.Request.Context(), providerID, date)
	if err != nil {
		utils.GetLogger().Error("Failed to compute day availability",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

// GetRangeAvailabilityHandler returns per-day availability for a date
// range: GET /api/providers/:providerID/availability/range?from=...&to=...
func (h *AvailabilityHandler) GetRangeAvailabilityHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	from, err := time.Parse(utils.DateLayout, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid from date; expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(utils.DateLayout, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid to date; expected YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not be before from"})
		return
	}
	if to.Sub(from) > maxRangeDays*24*time.Hour {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Date range too large"})
		return
	}

	days, err := h.Service.RangeAvailability(c.Request.Context(), providerID, from, to)
	if err != nil {
		utils.GetLogger().Error("Failed to compute range availability",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, days)
}
