// File: services/availability/service.go
package availability

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	bookingRepo "therabook/database/repository/booking"
	scheduleRepo "therabook/database/repository/schedule"
	"therabook/models"
	"therabook/utils"
)

// DefaultAvailabilityService wires the slot calculator to the schedule and
// booking stores, with a short-TTL Redis cache in front of day queries.
// A nil Cache disables caching; queries are then computed every time.
type DefaultAvailabilityService struct {
	ScheduleRepo scheduleRepo.ScheduleRepository
	BookingRepo  bookingRepo.BookingRepository
	Cache        *redis.Client
	Calc         SlotCalculator
	CacheTTL     time.Duration
	WarmDays     int
	Now          func() time.Time // injectable clock; time.Now when nil
}

// cachedSlot is the cache encoding of a slot. Only the minute offsets are
// stored; the formatted times are rebuilt on read.
type cachedSlot struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultAvailabilityService) DayAvailability(ctx context.Context, providerID string, date time.Time) ([]models.Slot, error) {
	dateStr := date.Format(utils.DateLayout)

	if slots, ok := s.cacheGet(ctx, providerID, dateStr); ok {
		return slots, nil
	}

	slots, err := s.computeDay(ctx, providerID, dateStr, date)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, providerID, dateStr, slots)
	return slots, nil
}

func (s *DefaultAvailabilityService) RangeAvailability(ctx context.Context, providerID string, from, to time.Time) ([]models.AvailabilityDay, error) {
	sched, err := s.ScheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}
	var weekly models.WeeklySchedule
	if sched != nil {
		weekly = sched.Schedule
	}

	byDate, err := s.BookingRepo.GetOccupyingByDateRange(ctx, providerID,
		from.Format(utils.DateLayout), to.Format(utils.DateLayout))
	if err != nil {
		return nil, err
	}

	return s.Calc.RangeAvailability(weekly, from, to, toIntervalsByDate(byDate), s.now()), nil
}

// RefreshProvider recomputes and caches the provider's availability for
// the next WarmDays days, starting today.
func (s *DefaultAvailabilityService) RefreshProvider(ctx context.Context, providerID string) error {
	warm := s.WarmDays
	if warm <= 0 {
		warm = 7
	}

	sched, err := s.ScheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		return err
	}
	var weekly models.WeeklySchedule
	if sched != nil {
		weekly = sched.Schedule
	}

	start := utils.DateOnly(s.now())
	end := start.AddDate(0, 0, warm-1)
	byDate, err := s.BookingRepo.GetOccupyingByDateRange(ctx, providerID,
		start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	if err != nil {
		return err
	}
	intervals := toIntervalsByDate(byDate)

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(utils.DateLayout)
		slots := s.Calc.DaySlots(weekly[models.WeekdayKey(d)], intervals[dateStr])
		s.cacheSet(ctx, providerID, dateStr, slots)
	}
	return nil
}

func (s *DefaultAvailabilityService) InvalidateDay(ctx context.Context, providerID string, date time.Time) {
	if s.Cache == nil {
		return
	}
	key := cacheKey(providerID, date.Format(utils.DateLayout))
	if err := s.Cache.Del(ctx, key).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache",
			zap.String("key", key), zap.Error(err))
	}
}

func (s *DefaultAvailabilityService) computeDay(ctx context.Context, providerID, dateStr string, date time.Time) ([]models.Slot, error) {
	sched, err := s.ScheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var day models.DaySchedule
	if sched != nil {
		day = sched.Schedule[models.WeekdayKey(date)]
	}

	bookings, err := s.BookingRepo.GetOccupyingByDate(ctx, providerID, dateStr)
	if err != nil {
		return nil, err
	}

	intervals := make([]models.BookedInterval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, b.Interval())
	}

	return s.Calc.DaySlots(day, intervals), nil
}

// cacheGet returns the cached slots for a provider/date. Cache failures
// degrade to a miss; the query is then computed from the stores.
func (s *DefaultAvailabilityService) cacheGet(ctx context.Context, providerID, dateStr string) ([]models.Slot, bool) {
	if s.Cache == nil {
		return nil, false
	}
	raw, err := s.Cache.Get(ctx, cacheKey(providerID, dateStr)).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.GetLogger().Warn("availability cache read failed", zap.Error(err))
		return nil, false
	}

	var cached []cachedSlot
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		utils.GetLogger().Warn("availability cache entry corrupt", zap.Error(err))
		return nil, false
	}

	slots := make([]models.Slot, 0, len(cached))
	for _, cs := range cached {
		slots = append(slots, makeSlot(cs.Start, cs.End))
	}
	return slots, true
}

func (s *DefaultAvailabilityService) cacheSet(ctx context.Context, providerID, dateStr string, slots []models.Slot) {
	if s.Cache == nil {
		return
	}
	ttl := s.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	cached := make([]cachedSlot, 0, len(slots))
	for _, slot := range slots {
		cached = append(cached, cachedSlot{Start: slot.Start, End: slot.End})
	}
	raw, err := json.Marshal(cached)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, cacheKey(providerID, dateStr), raw, ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed", zap.Error(err))
	}
}

func cacheKey(providerID, dateStr string) string {
	return utils.AvailabilityCachePrefix + providerID + ":" + dateStr
}

func toIntervalsByDate(byDate map[string][]models.Booking) map[string][]models.BookedInterval {
	intervals := make(map[string][]models.BookedInterval, len(byDate))
	for date, bookings := range byDate {
		for _, b := range bookings {
			intervals[date] = append(intervals[date], b.Interval())
		}
	}
	return intervals
}
