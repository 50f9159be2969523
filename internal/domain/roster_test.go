package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMonthID(t *testing.T) {
	t.Run("format pads to two digits", func(t *testing.T) {
		require.Equal(t, "2026-03", FormatMonthID(2026, time.March))
		require.Equal(t, "2026-12", FormatMonthID(2026, time.December))
	})

	t.Run("parse round-trips", func(t *testing.T) {
		year, month, err := ParseMonthID("2026-08")
		require.NoError(t, err)
		require.Equal(t, 2026, year)
		require.Equal(t, time.August, month)
	})

	t.Run("parse rejects malformed ids", func(t *testing.T) {
		for _, id := range []string{"", "2026", "2026-13", "2026-00", "2026-8", "1999-05", "2026-08-01", "garbage"} {
			_, _, err := ParseMonthID(id)
			require.Error(t, err, id)
		}
	})
}

func TestDaysInMonth(t *testing.T) {
	require.Equal(t, 31, DaysInMonth(2026, time.January))
	require.Equal(t, 28, DaysInMonth(2026, time.February))
	require.Equal(t, 29, DaysInMonth(2028, time.February))
	require.Equal(t, 30, DaysInMonth(2026, time.April))
}

func TestDayRecordOccupancy(t *testing.T) {
	rec := &DayRecord{
		NightShift: map[SlotKey]*Assignment{
			SlotVelitel: {UID: "u1", Name: "Jan Novák", Qualified: true},
			SlotHasic1:  {UID: "u2", Name: "Petr Dvořák", Qualified: true},
		},
	}

	slot, ok := rec.SlotOf(ShiftNight, "u2")
	require.True(t, ok)
	require.Equal(t, SlotHasic1, slot)

	require.True(t, rec.Occupies(ShiftNight, "u1"))
	require.False(t, rec.Occupies(ShiftDay, "u1"))
	require.False(t, rec.Occupies(ShiftNight, "u3"))

	var missing *DayRecord
	require.False(t, missing.Occupies(ShiftNight, "u1"))
}

func TestHasDayShift(t *testing.T) {
	var missing *DayRecord
	require.False(t, missing.HasDayShift())
	require.False(t, (&DayRecord{}).HasDayShift())
	require.True(t, (&DayRecord{DayShiftEnabled: true}).HasDayShift())

	// legacy documents have assignments without the flag
	legacy := &DayRecord{DayShift: map[SlotKey]*Assignment{SlotHasic1: {UID: "u1"}}}
	require.True(t, legacy.HasDayShift())
}

func TestDayRecordClone(t *testing.T) {
	hours := 5
	rec := &DayRecord{
		DayShiftEnabled: true,
		NightShift:      map[SlotKey]*Assignment{SlotHasic1: {UID: "u1", Name: "Jan"}},
		Hours:           map[string]*HoursOverride{"u1": {Night: &hours}},
	}

	clone := rec.Clone()
	clone.NightShift[SlotHasic1].Name = "changed"
	*clone.Hours["u1"].Night = 9

	require.Equal(t, "Jan", rec.NightShift[SlotHasic1].Name)
	require.Equal(t, 5, *rec.Hours["u1"].Night)

	var missing *DayRecord
	require.NotNil(t, missing.Clone())
}
