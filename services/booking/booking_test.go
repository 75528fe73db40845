package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "therabook/database/repository/booking"
	"therabook/models"
)

type fakeBookingRepo struct {
	created   []*models.Booking
	existing  map[string]*models.Booking
	createErr error
	updateErr error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, b)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return f.existing[id], nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	b, ok := f.existing[id]
	if !ok {
		return errors.New("not found")
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) GetOccupyingByDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) GetOccupyingByDateRange(ctx context.Context, providerID, from, to string) (map[string][]models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

// fakeAvailability offers a fixed set of slots regardless of date.
type fakeAvailability struct {
	slots       []models.Slot
	err         error
	invalidated int
}

func (f *fakeAvailability) DayAvailability(ctx context.Context, providerID string, date time.Time) ([]models.Slot, error) {
	return f.slots, f.err
}

func (f *fakeAvailability) RangeAvailability(ctx context.Context, providerID string, from, to time.Time) ([]models.AvailabilityDay, error) {
	return nil, nil
}

func (f *fakeAvailability) RefreshProvider(ctx context.Context, providerID string) error { return nil }

func (f *fakeAvailability) InvalidateDay(ctx context.Context, providerID string, date time.Time) {
	f.invalidated++
}

func offeredSlots() []models.Slot {
	return []models.Slot{
		{Start: 540, End: 600, StartTime: "09:00", EndTime: "10:00"},
		{Start: 600, End: 660, StartTime: "10:00", EndTime: "11:00"},
	}
}

func validRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		ProviderID: "prov-1",
		ClientID:   "client-1",
		Date:       "2026-03-02",
		StartTime:  "09:00",
	}
}

func TestCreateBooking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("books an offered slot", func(t *testing.T) {
		t.Parallel()
		repo := &fakeBookingRepo{}
		avail := &fakeAvailability{slots: offeredSlots()}
		svc := &DefaultBookingService{Repo: repo, Availability: avail}

		created, err := svc.CreateBooking(ctx, validRequest())
		if err != nil {
			t.Fatalf("CreateBooking() error: %v", err)
		}
		if created.Start != 540 || created.End != 600 {
			t.Errorf("booking interval = %d-%d, want 540-600", created.Start, created.End)
		}
		if created.Status != models.BookingStatusPending {
			t.Errorf("status = %q, want pending", created.Status)
		}
		if len(repo.created) != 1 {
			t.Fatalf("persisted %d bookings, want 1", len(repo.created))
		}
		if avail.invalidated != 1 {
			t.Errorf("cache invalidations = %d, want 1", avail.invalidated)
		}
	})

	t.Run("rejects a start that is not an offered slot", func(t *testing.T) {
		t.Parallel()
		svc := &DefaultBookingService{
			Repo:         &fakeBookingRepo{},
			Availability: &fakeAvailability{slots: offeredSlots()},
		}

		req := validRequest()
		req.StartTime = "09:30"
		_, err := svc.CreateBooking(ctx, req)
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("error = %v, want ErrSlotUnavailable", err)
		}
	})

	t.Run("maps a concurrent duplicate to ErrSlotUnavailable", func(t *testing.T) {
		t.Parallel()
		svc := &DefaultBookingService{
			Repo:         &fakeBookingRepo{createErr: bookingRepo.ErrSlotTaken},
			Availability: &fakeAvailability{slots: offeredSlots()},
		}

		_, err := svc.CreateBooking(ctx, validRequest())
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("error = %v, want ErrSlotUnavailable", err)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		t.Parallel()
		svc := &DefaultBookingService{
			Repo:         &fakeBookingRepo{},
			Availability: &fakeAvailability{slots: offeredSlots()},
		}

		req := validRequest()
		req.Date = "03/02/2026"
		if _, err := svc.CreateBooking(ctx, req); err == nil {
			t.Error("expected error for malformed date")
		}
	})

	t.Run("availability failure propagates", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("schedule store down")
		svc := &DefaultBookingService{
			Repo:         &fakeBookingRepo{},
			Availability: &fakeAvailability{err: wantErr},
		}

		_, err := svc.CreateBooking(ctx, validRequest())
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	newSvc := func(status string) (*DefaultBookingService, *fakeAvailability) {
		avail := &fakeAvailability{}
		repo := &fakeBookingRepo{existing: map[string]*models.Booking{
			"bk-1": {
				ID: "bk-1", ProviderID: "prov-1", Date: "2026-03-02",
				Start: 540, End: 600, Status: status,
			},
		}}
		return &DefaultBookingService{Repo: repo, Availability: avail}, avail
	}

	t.Run("cancelling frees the slot and drops the cached day", func(t *testing.T) {
		t.Parallel()
		svc, avail := newSvc(models.BookingStatusConfirmed)

		cancelled, err := svc.CancelBooking(ctx, "bk-1")
		if err != nil {
			t.Fatalf("CancelBooking() error: %v", err)
		}
		if cancelled.Status != models.BookingStatusCancelled {
			t.Errorf("status = %q, want cancelled", cancelled.Status)
		}
		if avail.invalidated != 1 {
			t.Errorf("cache invalidations = %d, want 1", avail.invalidated)
		}
	})

	t.Run("payment progress keeps the slot occupied without invalidation", func(t *testing.T) {
		t.Parallel()
		svc, avail := newSvc(models.BookingStatusPaymentPending)

		updated, err := svc.UpdateBookingStatus(ctx, "bk-1", models.BookingStatusPaymentUploaded)
		if err != nil {
			t.Fatalf("UpdateBookingStatus() error: %v", err)
		}
		if updated.Status != models.BookingStatusPaymentUploaded {
			t.Errorf("status = %q, want payment_uploaded", updated.Status)
		}
		if avail.invalidated != 0 {
			t.Errorf("cache invalidations = %d, want 0", avail.invalidated)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc(models.BookingStatusPending)

		_, err := svc.UpdateBookingStatus(ctx, "bk-1", "vanished")
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("error = %v, want ErrInvalidStatus", err)
		}
	})

	t.Run("re-occupying a rebooked slot reports it unavailable", func(t *testing.T) {
		t.Parallel()
		svc, avail := newSvc(models.BookingStatusCancelled)
		svc.Repo.(*fakeBookingRepo).updateErr = bookingRepo.ErrSlotTaken

		_, err := svc.UpdateBookingStatus(ctx, "bk-1", models.BookingStatusConfirmed)
		if !errors.Is(err, ErrSlotUnavailable) {
			t.Errorf("error = %v, want ErrSlotUnavailable", err)
		}
		if avail.invalidated != 0 {
			t.Errorf("cache invalidations = %d, want 0", avail.invalidated)
		}
	})

	t.Run("missing booking is reported", func(t *testing.T) {
		t.Parallel()
		svc, _ := newSvc(models.BookingStatusPending)

		_, err := svc.UpdateBookingStatus(ctx, "bk-missing", models.BookingStatusConfirmed)
		if !errors.Is(err, ErrBookingNotFound) {
			t.Errorf("error = %v, want ErrBookingNotFound", err)
		}
	})
}
