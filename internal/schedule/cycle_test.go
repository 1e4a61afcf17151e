package schedule_test

import (
	"testing"
	"time"

	"go-workschedule/internal/schedule"
	scheduleerrors "go-workschedule/internal/schedule/errors"

	"github.com/stretchr/testify/assert"
)

var kst = time.FixedZone("KST", 9*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, kst)
}

func TestCycleCalculator_WeekStart(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)

	// 2026-01-05 is a Monday.
	assert.Equal(t, date(2026, 1, 5), calc.WeekStart(date(2026, 1, 5)))
	// Sunday belongs to the preceding Monday's week.
	assert.Equal(t, date(2026, 1, 5), calc.WeekStart(date(2026, 1, 11)))
	// 2026-01-01 is a Thursday in the week starting 2025-12-29.
	assert.Equal(t, date(2025, 12, 29), calc.WeekStart(date(2026, 1, 1)))
}

func TestCycleCalculator_WeekStart_IgnoresScanZone(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)

	// A date column scanned back in UTC must keep its calendar day.
	scanned := time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, date(2026, 1, 5), calc.WeekStart(scanned))
}

func TestCycleCalculator_IsSameWeek(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)

	assert.True(t, calc.IsSameWeek(date(2026, 1, 5), date(2026, 1, 11)))
	assert.False(t, calc.IsSameWeek(date(2026, 1, 11), date(2026, 1, 12)))
}

func TestCycleCalculator_CycleWeek(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)
	anchor := date(2026, 1, 5)

	t.Run("counts and wraps every four weeks", func(t *testing.T) {
		cases := []struct {
			target time.Time
			want   int
		}{
			{date(2026, 1, 5), 0},
			{date(2026, 1, 11), 0},
			{date(2026, 1, 12), 1},
			{date(2026, 1, 26), 3},
			{date(2026, 2, 2), 0},
			{date(2026, 3, 2), 0},
		}
		for _, tc := range cases {
			got, err := calc.CycleWeek(anchor, tc.target)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got, tc.target.Format("2006-01-02"))
		}
	})

	t.Run("mid-week anchor shares its whole week", func(t *testing.T) {
		// Anchor on Wednesday: the Monday of the same week is still week 0.
		got, err := calc.CycleWeek(date(2026, 1, 7), date(2026, 1, 5))
		assert.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("negative target before anchor week", func(t *testing.T) {
		_, err := calc.CycleWeek(anchor, date(2026, 1, 4))
		assert.ErrorIs(t, err, scheduleerrors.ErrTargetBeforeAnchor)
	})
}

func TestCycleCalculator_IsOffDay(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)
	anchor := date(2026, 1, 5)
	rotation := schedule.Rotation{"0": {"FRIDAY"}}

	// 2026-01-09 is the Friday of cycle week 0.
	isOff, err := calc.IsOffDay(anchor, date(2026, 1, 9), rotation)
	assert.NoError(t, err)
	assert.True(t, isOff)

	// The Friday of week 1 is a working day.
	isOff, err = calc.IsOffDay(anchor, date(2026, 1, 16), rotation)
	assert.NoError(t, err)
	assert.False(t, isOff)

	// Week 0 comes around again four weeks later.
	isOff, err = calc.IsOffDay(anchor, date(2026, 2, 6), rotation)
	assert.NoError(t, err)
	assert.True(t, isOff)
}

func TestCycleCalculator_NextOffDays(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)
	anchor := date(2026, 1, 5)
	rotation := schedule.Rotation{"0": {"FRIDAY"}, "2": {"MONDAY"}}

	t.Run("enumerates strictly after from", func(t *testing.T) {
		offDays, err := calc.NextOffDays(anchor, rotation, date(2026, 1, 5), 3)
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{
			date(2026, 1, 9),
			date(2026, 1, 19),
			date(2026, 2, 6),
		}, offDays)
	})

	t.Run("is deterministic", func(t *testing.T) {
		first, err := calc.NextOffDays(anchor, rotation, date(2026, 1, 5), 5)
		assert.NoError(t, err)
		second, err := calc.NextOffDays(anchor, rotation, date(2026, 1, 5), 5)
		assert.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("from before anchor clamps to anchor week", func(t *testing.T) {
		offDays, err := calc.NextOffDays(anchor, rotation, date(2025, 12, 1), 1)
		assert.NoError(t, err)
		assert.Equal(t, []time.Time{date(2026, 1, 9)}, offDays)
	})

	t.Run("rotation with no off-days returns empty", func(t *testing.T) {
		offDays, err := calc.NextOffDays(anchor, schedule.Rotation{"0": {}}, date(2026, 1, 5), 3)
		assert.NoError(t, err)
		assert.Empty(t, offDays)
	})
}

func TestCycleCalculator_IsProbation(t *testing.T) {
	calc := schedule.NewCycleCalculator(kst)
	hire := date(2026, 1, 5)

	assert.True(t, calc.IsProbation(hire, date(2026, 1, 5), 3))
	assert.True(t, calc.IsProbation(hire, date(2026, 4, 4), 3))
	// The anniversary day itself is out of probation.
	assert.False(t, calc.IsProbation(hire, date(2026, 4, 5), 3))
	assert.False(t, calc.IsProbation(hire, date(2025, 12, 31), 3))
}

func TestRotation_Validate(t *testing.T) {
	cases := []struct {
		name     string
		rotation schedule.Rotation
		wantErr  bool
	}{
		{"valid", schedule.Rotation{"0": {"FRIDAY"}, "3": {"MONDAY", "TUESDAY"}}, false},
		{"lowercase weekday accepted", schedule.Rotation{"1": {"friday"}}, false},
		{"empty week list allowed", schedule.Rotation{"2": {}}, false},
		{"empty rotation", schedule.Rotation{}, true},
		{"week key out of range", schedule.Rotation{"4": {"FRIDAY"}}, true},
		{"non-numeric week key", schedule.Rotation{"first": {"FRIDAY"}}, true},
		{"unknown weekday", schedule.Rotation{"0": {"FUNDAY"}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rotation.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, scheduleerrors.ErrInvalidRotation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
