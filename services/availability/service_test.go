package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"

	"therabook/models"
)

type fakeScheduleRepo struct {
	schedules map[string]*models.ProviderSchedule
	err       error
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, sched *models.ProviderSchedule) error {
	f.schedules[sched.ProviderID] = sched
	return nil
}

func (f *fakeScheduleRepo) GetByProviderID(ctx context.Context, providerID string) (*models.ProviderSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedules[providerID], nil
}

func (f *fakeScheduleRepo) ListProviderIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.schedules))
	for id := range f.schedules {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeScheduleRepo) EnsureIndexes() error { return nil }

type fakeBookingRepo struct {
	bookings []models.Booking
	err      error
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *models.Booking) error { return nil }

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id, status string) error { return nil }

func (f *fakeBookingRepo) GetOccupyingByDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.Date == date && models.IsOccupyingStatus(b.Status) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) GetOccupyingByDateRange(ctx context.Context, providerID, from, to string) (map[string][]models.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	byDate := make(map[string][]models.Booking)
	for _, b := range f.bookings {
		if b.ProviderID == providerID && b.Date >= from && b.Date <= to && models.IsOccupyingStatus(b.Status) {
			byDate[b.Date] = append(byDate[b.Date], b)
		}
	}
	return byDate, nil
}

func (f *fakeBookingRepo) EnsureIndexes() error { return nil }

func newTestService(sched *fakeScheduleRepo, book *fakeBookingRepo) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		ScheduleRepo: sched,
		BookingRepo:  book,
		Now:          func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) },
	}
}

func TestServiceDayAvailability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	weekly := models.WeeklySchedule{
		"monday": enabledDay(block("09:00", "12:00")),
	}
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("computes free slots against occupying bookings", func(t *testing.T) {
		t.Parallel()
		sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{
			"prov-1": {ProviderID: "prov-1", Schedule: weekly},
		}}
		book := &fakeBookingRepo{bookings: []models.Booking{
			{ProviderID: "prov-1", Date: "2026-03-02", Start: 540, End: 600, Status: models.BookingStatusConfirmed},
			{ProviderID: "prov-1", Date: "2026-03-02", Start: 600, End: 660, Status: models.BookingStatusCancelled},
		}}

		slots, err := newTestService(sched, book).DayAvailability(ctx, "prov-1", monday)
		if err != nil {
			t.Fatalf("DayAvailability() error: %v", err)
		}
		// 09:00 is occupied; 10:00 was cancelled and is free again.
		want := []string{"10:00-11:00", "11:00-12:00"}
		got := slotTimes(slots)
		if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
			t.Errorf("slots = %v, want %v", got, want)
		}
	})

	t.Run("no schedule configured yields empty result, not an error", func(t *testing.T) {
		t.Parallel()
		sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{}}
		book := &fakeBookingRepo{}

		slots, err := newTestService(sched, book).DayAvailability(ctx, "prov-unknown", monday)
		if err != nil {
			t.Fatalf("DayAvailability() error: %v", err)
		}
		if len(slots) != 0 {
			t.Errorf("expected no slots, got %v", slotTimes(slots))
		}
	})

	t.Run("store failures propagate", func(t *testing.T) {
		t.Parallel()
		wantErr := errors.New("mongo down")
		sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{}, err: wantErr}
		book := &fakeBookingRepo{}

		_, err := newTestService(sched, book).DayAvailability(ctx, "prov-1", monday)
		if !errors.Is(err, wantErr) {
			t.Errorf("error = %v, want %v", err, wantErr)
		}
	})
}

func TestServiceRangeAvailability(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{
		"prov-1": {ProviderID: "prov-1", Schedule: models.WeeklySchedule{
			"monday": enabledDay(block("09:00", "11:00")),
		}},
	}}
	book := &fakeBookingRepo{bookings: []models.Booking{
		{ProviderID: "prov-1", Date: "2026-03-02", Start: 540, End: 600, Status: models.BookingStatusPaymentUploaded},
	}}
	svc := newTestService(sched, book)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	days, err := svc.RangeAvailability(ctx, "prov-1", from, to)
	if err != nil {
		t.Fatalf("RangeAvailability() error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("got %d days, want 2", len(days))
	}
	// payment_uploaded occupies its slot, so monday keeps only 10:00.
	if got := slotTimes(days[0].Slots); len(got) != 1 || got[0] != "10:00-11:00" {
		t.Errorf("monday slots = %v, want [10:00-11:00]", got)
	}
	if days[1].HasAvailableSlots {
		t.Error("tuesday should have no slots")
	}
}

func TestServiceDayAvailabilityWithUnreachableCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{
		"prov-1": {ProviderID: "prov-1", Schedule: models.WeeklySchedule{
			"monday": enabledDay(block("09:00", "11:00")),
		}},
	}}
	svc := newTestService(sched, &fakeBookingRepo{})
	// Port 1 refuses connections, so every cache read and write errors out.
	// The query must still be served from the stores.
	svc.Cache = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { svc.Cache.Close() })

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	slots, err := svc.DayAvailability(ctx, "prov-1", monday)
	if err != nil {
		t.Fatalf("DayAvailability() error: %v", err)
	}
	want := []string{"09:00-10:00", "10:00-11:00"}
	if got := slotTimes(slots); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("slots = %v, want %v", got, want)
	}

	// Invalidation and refresh tolerate the same outage.
	svc.InvalidateDay(ctx, "prov-1", monday)
	svc.WarmDays = 2
	if err := svc.RefreshProvider(ctx, "prov-1"); err != nil {
		t.Fatalf("RefreshProvider() error: %v", err)
	}
}

func TestServiceRefreshProviderWithoutCache(t *testing.T) {
	t.Parallel()

	sched := &fakeScheduleRepo{schedules: map[string]*models.ProviderSchedule{
		"prov-1": {ProviderID: "prov-1", Schedule: models.WeeklySchedule{
			"monday": enabledDay(block("09:00", "10:00")),
		}},
	}}
	svc := newTestService(sched, &fakeBookingRepo{})
	svc.WarmDays = 3

	// Without a cache client the refresh is a no-op and must not fail.
	if err := svc.RefreshProvider(context.Background(), "prov-1"); err != nil {
		t.Fatalf("RefreshProvider() error: %v", err)
	}
}
