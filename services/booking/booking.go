// File: services/booking/booking.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	bookingRepo "therabook/database/repository/booking"
	"therabook/models"
	"therabook/services/availability"
	"therabook/services/tasks"
	"therabook/utils"
)

// DefaultBookingService implements Service on top of the booking store
// and the availability engine.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Availability availability.Service
	Queue        *asynq.Client
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	date, err := time.Parse(utils.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}
	start, err := utils.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}

	// The engine is the source of truth for what is bookable: the
	// requested start must name one of the currently offered slots.
	slots, err := s.Availability.DayAvailability(ctx, req.ProviderID, date)
	if err != nil {
		return nil, err
	}
	var offered *models.Slot
	for i := range slots {
		if slots[i].Start == start {
			offered = &slots[i]
			break
		}
	}
	if offered == nil {
		return nil, ErrSlotUnavailable
	}

	booking := &models.Booking{
		ProviderID: req.ProviderID,
		ClientID:   req.ClientID,
		Date:       req.Date,
		Start:      offered.Start,
		End:        offered.End,
		Status:     models.BookingStatusPending,
		Notes:      req.Notes,
	}

	// A concurrent request may have claimed the slot between the check
	// above and this insert; the partial unique index turns that race
	// into ErrSlotTaken.
	if err := s.Repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}

	s.Availability.InvalidateDay(ctx, req.ProviderID, date)
	s.enqueueRefresh(req.ProviderID)
	return booking, nil
}

func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.UpdateBookingStatus(ctx, bookingID, models.BookingStatusCancelled)
}

func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, bookingID, status string) (*models.Booking, error) {
	if !models.IsKnownStatus(status) {
		return nil, ErrInvalidStatus
	}

	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if booking.Status == status {
		return booking, nil
	}

	if err := s.Repo.UpdateStatus(ctx, bookingID, status); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}
		// Re-occupying a freed booking fails when the slot was rebooked.
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotUnavailable
		}
		return nil, err
	}
	wasOccupying := models.IsOccupyingStatus(booking.Status)
	booking.Status = status

	// Freeing a slot (or re-occupying one) changes what the engine
	// should offer, so drop the cached day.
	if wasOccupying != models.IsOccupyingStatus(status) {
		if date, err := time.Parse(utils.DateLayout, booking.Date); err == nil {
			s.Availability.InvalidateDay(ctx, booking.ProviderID, date)
		}
		s.enqueueRefresh(booking.ProviderID)
	}
	return booking, nil
}

func (s *DefaultBookingService) ListProviderBookings(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	return s.Repo.GetOccupyingByDate(ctx, providerID, date)
}

func (s *DefaultBookingService) enqueueRefresh(providerID string) {
	if s.Queue == nil {
		return
	}
	task, err := tasks.NewAvailabilityRefreshTask(providerID)
	if err != nil {
		utils.GetLogger().Warn("failed to build refresh task",
			zap.String("providerID", providerID), zap.Error(err))
		return
	}
	if _, err := s.Queue.Enqueue(task); err != nil {
		utils.GetLogger().Warn("failed to enqueue availability refresh",
			zap.String("providerID", providerID), zap.Error(err))
	}
}
