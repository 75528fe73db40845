package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"therabook/models"
	"therabook/services/schedule"
	"therabook/utils"
)

type ScheduleHandler struct {
	Service schedule.Service
}

func NewScheduleHandler(svc schedule.Service) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// GetScheduleHandler returns a provider's recurring weekly schedule.
func (h *ScheduleHandler) GetScheduleHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	sched, err := h.Service.GetSchedule(c.Request.Context(), providerID)
	if err != nil {
		utils.GetLogger().Error("Failed to fetch schedule",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}
	if sched == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No schedule configured for provider"})
		return
	}

	c.JSON(http.StatusOK, sched)
}

// SetScheduleHandler replaces a provider's weekly schedule.
func (h *ScheduleHandler) SetScheduleHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	var req models.SetScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	sched, err := h.Service.SetSchedule(c.Request.Context(), providerID, req.Schedule)
	if err != nil {
		var validationErr schedule.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid schedule", "message": validationErr.Error()})
			return
		}
		utils.GetLogger().Error("Failed to save schedule",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Schedule saved",
		"schedule": sched,
	})
}
