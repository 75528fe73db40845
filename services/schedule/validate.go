// File: services/schedule/validate.go
package schedule

import (
	"fmt"
	"sort"

	"therabook/models"
	"therabook/utils"
)

// ValidationError reports a rejected weekly schedule. Schedules are
// validated here, at configuration time; the slot calculator treats
// well-formed blocks as a precondition.
type ValidationError struct {
	Day    string
	Block  int // 1-based; 0 when the problem is the day itself
	Reason string
}

func (e ValidationError) Error() string {
	if e.Block > 0 {
		return fmt.Sprintf("%s, block %d: %s", e.Day, e.Block, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Day, e.Reason)
}

// ValidateWeeklySchedule checks that every day key is a valid weekday,
// every block parses, each block has start before end, and no two blocks
// within a day overlap.
func ValidateWeeklySchedule(weekly models.WeeklySchedule) error {
	for day, daySched := range weekly {
		if !models.IsWeekdayKey(day) {
			return ValidationError{Day: day, Reason: "unknown weekday"}
		}

		type span struct{ start, end int }
		spans := make([]span, 0, len(daySched.TimeBlocks))

		for i, block := range daySched.TimeBlocks {
			start, err := utils.ParseClock(block.StartTime)
			if err != nil {
				return ValidationError{Day: day, Block: i + 1, Reason: err.Error()}
			}
			end, err := utils.ParseClock(block.EndTime)
			if err != nil {
				return ValidationError{Day: day, Block: i + 1, Reason: err.Error()}
			}
			if start >= end {
				return ValidationError{Day: day, Block: i + 1, Reason: "start must be before end"}
			}
			spans = append(spans, span{start, end})
		}

		// Blocks may arrive in any order; sort a copy to detect overlap.
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return ValidationError{Day: day, Reason: "time blocks overlap"}
			}
		}
	}
	return nil
}
