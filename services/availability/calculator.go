// File: services/availability/calculator.go
package availability

import (
	"time"

	"go.uber.org/zap"

	"therabook/models"
	"therabook/utils"
)

// DefaultSlotDuration is the bookable session length in minutes.
const DefaultSlotDuration = 60

// SlotCalculator turns a provider's recurring weekly schedule and the
// bookings already placed in a window into the list of free fixed-duration
// slots. It is a pure computation: it never mutates its inputs and holds
// no state between calls.
type SlotCalculator struct {
	SlotDuration int // minutes; DefaultSlotDuration when zero
}

func (c SlotCalculator) duration() int {
	if c.SlotDuration > 0 {
		return c.SlotDuration
	}
	return DefaultSlotDuration
}

// DaySlots computes the free slots for a single calendar day. Each time
// block is tiled independently with full-duration slots starting at the
// block's start; a candidate overlapping any booked interval is dropped
// and the cursor moves to the next tile. A trailing span shorter than the
// slot duration is never emitted. Blocks are processed in input order; a
// block with an unparsable time is skipped with a diagnostic rather than
// failing the whole day.
func (c SlotCalculator) DaySlots(day models.DaySchedule, booked []models.BookedInterval) []models.Slot {
	slots := []models.Slot{}
	if !day.Enabled || len(day.TimeBlocks) == 0 {
		return slots
	}

	logger := utils.GetLogger()
	dur := c.duration()

	for i, block := range day.TimeBlocks {
		start, err := utils.ParseClock(block.StartTime)
		if err != nil {
			logger.Warn("skipping malformed time block",
				zap.Int("block", i), zap.String("startTime", block.StartTime), zap.Error(err))
			continue
		}
		end, err := utils.ParseClock(block.EndTime)
		if err != nil {
			logger.Warn("skipping malformed time block",
				zap.Int("block", i), zap.String("endTime", block.EndTime), zap.Error(err))
			continue
		}

		for cursor := start; cursor+dur <= end; cursor += dur {
			if overlapsAny(cursor, cursor+dur, booked) {
				continue
			}
			slots = append(slots, makeSlot(cursor, cursor+dur))
		}
	}
	return slots
}

// RangeAvailability computes per-day availability for every date in
// [from, to] inclusive, in ascending order. Dates strictly before today
// are excluded from the output entirely. A nil or empty weekly schedule
// degrades to zero-slot days rather than an error.
func (c SlotCalculator) RangeAvailability(
	weekly models.WeeklySchedule,
	from, to time.Time,
	bookingsByDate map[string][]models.BookedInterval,
	today time.Time,
) []models.AvailabilityDay {
	days := []models.AvailabilityDay{}
	// The cutoff is a calendar comparison, not an instant one. from/to come
	// off the wire as UTC midnights while today is usually the server-local
	// clock, so comparing time.Time values directly would shift the boundary
	// by the zone offset.
	todayStr := today.Format(utils.DateLayout)
	last := utils.DateOnly(to)

	for d := utils.DateOnly(from); !d.After(last); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(utils.DateLayout)
		if dateStr < todayStr {
			continue
		}
		slots := c.DaySlots(weekly[models.WeekdayKey(d)], bookingsByDate[dateStr])
		days = append(days, models.AvailabilityDay{
			Date:              dateStr,
			Slots:             slots,
			HasAvailableSlots: len(slots) > 0,
		})
	}
	return days
}

func makeSlot(start, end int) models.Slot {
	return models.Slot{
		Start:     start,
		End:       end,
		StartTime: utils.FormatClock(start),
		EndTime:   utils.FormatClock(end),
	}
}

// overlapsAny applies the half-open overlap test against every booked interval.
func overlapsAny(start, end int, booked []models.BookedInterval) bool {
	for _, b := range booked {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
