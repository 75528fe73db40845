package models

// BookedInterval is an already-reserved span on a single calendar date,
// in minutes from midnight.
type BookedInterval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Overlaps reports whether the half-open interval [start, end) intersects
// this interval.
func (i BookedInterval) Overlaps(start, end int) bool {
	return start < i.End && end > i.Start
}

// Slot is a fixed-duration bookable interval derived from a configured
// time block. Start and End are minutes from midnight; the wire format
// carries only the formatted times.
type Slot struct {
	Start     int    `json:"-" bson:"-"`
	End       int    `json:"-" bson:"-"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`
}

// AvailabilityDay wraps one calendar date's free slots for range queries.
type AvailabilityDay struct {
	Date              string `json:"date"` // "YYYY-MM-DD"
	Slots             []Slot `json:"slots"`
	HasAvailableSlots bool   `json:"hasAvailableSlots"`
}
