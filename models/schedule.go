package models

import (
	"strings"
	"time"
)

// TimeBlock is one contiguous span of availability within a single day,
// expressed as 24-hour "HH:MM" wall-clock strings.
type TimeBlock struct {
	StartTime string `bson:"startTime" json:"startTime"`
	EndTime   string `bson:"endTime" json:"endTime"`
}

// DaySchedule holds a provider's recurring availability for one weekday.
// A disabled day yields no slots regardless of its blocks.
type DaySchedule struct {
	Enabled    bool        `bson:"enabled" json:"enabled"`
	TimeBlocks []TimeBlock `bson:"timeBlocks" json:"timeBlocks"`
}

// WeeklySchedule maps lower-case English weekday names ("monday".."sunday")
// to that day's schedule. Days may be absent; an absent day is treated the
// same as a disabled one.
type WeeklySchedule map[string]DaySchedule

// ProviderSchedule is the persisted recurring schedule for one provider.
type ProviderSchedule struct {
	ProviderID string         `bson:"providerId" json:"providerId"`
	Schedule   WeeklySchedule `bson:"schedule" json:"schedule"`
	UpdatedAt  time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// SetScheduleRequest defines the payload for replacing a provider's
// weekly schedule.
type SetScheduleRequest struct {
	Schedule WeeklySchedule `json:"schedule" binding:"required"`
}

// WeekdayKeys lists the valid WeeklySchedule keys.
var WeekdayKeys = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// WeekdayKey returns the WeeklySchedule key for a calendar date.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// IsWeekdayKey reports whether s is a valid WeeklySchedule key.
func IsWeekdayKey(s string) bool {
	for _, k := range WeekdayKeys {
		if s == k {
			return true
		}
	}
	return false
}
