package schedule

import (
	"time"

	scheduleerrors "go-workschedule/internal/schedule/errors"
)

const week = 7 * 24 * time.Hour

// CycleCalculator is the pure date-arithmetic core of the roster. All math
// happens in the civil timezone handed to the constructor; the host timezone
// is never consulted. Weeks run Monday through Sunday.
type CycleCalculator struct {
	loc *time.Location
}

func NewCycleCalculator(loc *time.Location) *CycleCalculator {
	return &CycleCalculator{loc: loc}
}

func (c *CycleCalculator) Location() *time.Location {
	return c.loc
}

// Normalize rebuilds t as midnight of the same calendar day in the
// calculator's timezone. The calendar components are kept as-is rather than
// converting the instant, so a date scanned from the store keeps its day.
func (c *CycleCalculator) Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// WeekStart returns the Monday of the week containing t.
func (c *CycleCalculator) WeekStart(t time.Time) time.Time {
	day := c.Normalize(t)
	offset := int(day.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday belongs to the preceding Monday's week
	}
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the Sunday of the week containing t.
func (c *CycleCalculator) WeekEnd(t time.Time) time.Time {
	return c.WeekStart(t).AddDate(0, 0, 6)
}

func (c *CycleCalculator) IsSameWeek(a, b time.Time) bool {
	return c.WeekStart(a).Equal(c.WeekStart(b))
}

// CycleWeek counts whole weeks from the week containing anchor to the week
// containing target, reduced modulo the cycle length. Targets before the
// anchor week are rejected.
func (c *CycleCalculator) CycleWeek(anchor, target time.Time) (int, error) {
	anchorWeek := c.WeekStart(anchor)
	targetWeek := c.WeekStart(target)

	diff := targetWeek.Sub(anchorWeek)
	if diff < 0 {
		return 0, scheduleerrors.ErrTargetBeforeAnchor
	}
	if diff%week != 0 {
		return 0, scheduleerrors.ErrWeekMisaligned
	}

	return int(diff/week) % CycleWeeks, nil
}

// OffWeekdaysFor resolves the rotation's off-days for the cycle week that
// contains target. An empty result means a full working week.
func (c *CycleCalculator) OffWeekdaysFor(anchor, target time.Time, rotation Rotation) ([]time.Weekday, error) {
	cycleWeek, err := c.CycleWeek(anchor, target)
	if err != nil {
		return nil, err
	}
	return rotation.OffWeekdays(cycleWeek), nil
}

// IsOffDay reports whether target is a rotation off-day.
func (c *CycleCalculator) IsOffDay(anchor, target time.Time, rotation Rotation) (bool, error) {
	weekdays, err := c.OffWeekdaysFor(anchor, target, rotation)
	if err != nil {
		return false, err
	}
	targetWeekday := c.Normalize(target).Weekday()
	for _, wd := range weekdays {
		if wd == targetWeekday {
			return true, nil
		}
	}
	return false, nil
}

// NextOffDays enumerates the next count off-days strictly after from. The
// function is pure: calling it again with the same inputs yields the same
// dates.
func (c *CycleCalculator) NextOffDays(anchor time.Time, rotation Rotation, from time.Time, count int) ([]time.Time, error) {
	offDays := make([]time.Time, 0, count)
	if count <= 0 || !rotation.hasAnyOffDay() {
		return offDays, nil
	}

	day := c.Normalize(from).AddDate(0, 0, 1)
	if anchorWeek := c.WeekStart(anchor); day.Before(anchorWeek) {
		day = anchorWeek
	}

	for len(offDays) < count {
		isOff, err := c.IsOffDay(anchor, day, rotation)
		if err != nil {
			return nil, err
		}
		if isOff {
			offDays = append(offDays, day)
		}
		day = day.AddDate(0, 0, 1)
	}

	return offDays, nil
}

// IsProbation reports whether asOf falls inside the probation window after
// hireDate. The window end is exclusive: probation over `months` months ends
// on the anniversary day.
func (c *CycleCalculator) IsProbation(hireDate, asOf time.Time, months int) bool {
	hire := c.Normalize(hireDate)
	day := c.Normalize(asOf)
	if day.Before(hire) {
		return false
	}
	return day.Before(hire.AddDate(0, months, 0))
}
