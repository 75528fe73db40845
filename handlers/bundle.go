package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates the route handlers so route registration takes
// a single dependency.
type HandlerBundle struct {
	// Availability endpoints.
	GetDayAvailabilityHandler   gin.HandlerFunc
	GetRangeAvailabilityHandler gin.HandlerFunc

	// Schedule endpoints.
	GetScheduleHandler gin.HandlerFunc
	SetScheduleHandler gin.HandlerFunc

	// Booking endpoints.
	CreateBookingHandler        gin.HandlerFunc
	CancelBookingHandler        gin.HandlerFunc
	UpdateBookingStatusHandler  gin.HandlerFunc
	ListProviderBookingsHandler gin.HandlerFunc
}
