package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"therabook/models"
	"therabook/services/booking"
	"therabook/utils"
)

type BookingHandler struct {
	Service booking.Service
}

func NewBookingHandler(svc booking.Service) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingHandler books one offered slot: POST /api/bookings
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if _, err := time.Parse(utils.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date; expected YYYY-MM-DD"})
		return
	}
	if _, err := utils.ParseClock(req.StartTime); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startTime; expected HH:MM"})
		return
	}

	created, err := h.Service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, booking.ErrSlotUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is not available"})
			return
		}
		utils.GetLogger().Error("Failed to create booking",
			zap.String("providerID", req.ProviderID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking created",
		"booking": created,
	})
}

// CancelBookingHandler cancels a booking and frees its slot.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing booking ID in path"})
		return
	}

	cancelled, err := h.Service.CancelBooking(c.Request.Context(), bookingID)
	if err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		utils.GetLogger().Error("Failed to cancel booking",
			zap.String("bookingID", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled",
		"booking": cancelled,
	})
}

// UpdateBookingStatusHandler moves a booking through its lifecycle,
// including the bank-transfer payment states.
func (h *BookingHandler) UpdateBookingStatusHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	if bookingID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing booking ID in path"})
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid status in request body"})
		return
	}

	updated, err := h.Service.UpdateBookingStatus(c.Request.Context(), bookingID, body.Status)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown booking status"})
		case errors.Is(err, booking.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, booking.ErrSlotUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot is not available"})
		default:
			utils.GetLogger().Error("Failed to update booking status",
				zap.String("bookingID", bookingID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking updated",
		"booking": updated,
	})
}

// ListProviderBookingsHandler returns a provider's occupying bookings for
// a date: GET /api/providers/:providerID/bookings?date=YYYY-MM-DD
func (h *BookingHandler) ListProviderBookingsHandler(c *gin.Context) {
	providerID := c.Param("providerID")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing provider ID in path"})
		return
	}

	dateStr := c.Query("date")
	if _, err := time.Parse(utils.DateLayout, dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid date; expected YYYY-MM-DD"})
		return
	}

	bookings, err := h.Service.ListProviderBookings(c.Request.Context(), providerID, dateStr)
	if err != nil {
		utils.GetLogger().Error("Failed to list bookings",
			zap.String("providerID", providerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
