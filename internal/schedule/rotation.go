package schedule

import (
	"strconv"
	"strings"
	"time"

	scheduleerrors "go-workschedule/internal/schedule/errors"
)

// CycleWeeks is the length of the rotating roster: off-day assignments repeat
// every four calendar weeks.
const CycleWeeks = 4

// Rotation maps a cycle-week index ("0".."3") to the weekday names that are
// off-days in that week. A week may map to an empty list (a full five-day
// working week).
type Rotation map[string][]string

var weekdayByName = map[string]time.Weekday{
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
	"SUNDAY":    time.Sunday,
}

func (r Rotation) Validate() error {
	if len(r) == 0 {
		return scheduleerrors.ErrInvalidRotation
	}
	for key, days := range r {
		week, err := strconv.Atoi(key)
		if err != nil || week < 0 || week >= CycleWeeks {
			return scheduleerrors.ErrInvalidRotation
		}
		for _, day := range days {
			if _, ok := weekdayByName[strings.ToUpper(day)]; !ok {
				return scheduleerrors.ErrInvalidRotation
			}
		}
	}
	return nil
}

// OffWeekdays returns the weekdays assigned as off-days for the given cycle
// week. Unknown or unassigned weeks yield an empty slice.
func (r Rotation) OffWeekdays(week int) []time.Weekday {
	names := r[strconv.Itoa(week)]
	weekdays := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		if wd, ok := weekdayByName[strings.ToUpper(name)]; ok {
			weekdays = append(weekdays, wd)
		}
	}
	return weekdays
}

func (r Rotation) hasAnyOffDay() bool {
	for week := 0; week < CycleWeeks; week++ {
		if len(r.OffWeekdays(week)) > 0 {
			return true
		}
	}
	return false
}
