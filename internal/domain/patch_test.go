package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyDayPatchSlots(t *testing.T) {
	t.Run("set writes a copy of the assignment", func(t *testing.T) {
		patch := &DayPatch{}
		a := &Assignment{UID: "u1", Name: "Jan Novák", Qualified: true}
		patch.SetSlot(ShiftNight, SlotVelitel, a)

		rec := ApplyDayPatch(nil, patch)
		require.Equal(t, "u1", rec.NightShift[SlotVelitel].UID)

		a.Name = "changed"
		require.Equal(t, "Jan Novák", rec.NightShift[SlotVelitel].Name)
	})

	t.Run("delete tombstones one slot and leaves siblings", func(t *testing.T) {
		rec := &DayRecord{NightShift: map[SlotKey]*Assignment{
			SlotVelitel: {UID: "u1"},
			SlotHasic1:  {UID: "u2"},
		}}
		patch := &DayPatch{}
		patch.DeleteSlot(ShiftNight, SlotVelitel)

		ApplyDayPatch(rec, patch)
		require.Nil(t, rec.NightShift[SlotVelitel])
		require.NotNil(t, rec.NightShift[SlotHasic1])
	})

	t.Run("day and night halves are independent", func(t *testing.T) {
		rec := &DayRecord{
			DayShift:   map[SlotKey]*Assignment{SlotHasic1: {UID: "u1"}},
			NightShift: map[SlotKey]*Assignment{SlotHasic1: {UID: "u1"}},
		}
		patch := &DayPatch{}
		patch.DeleteSlot(ShiftDay, SlotHasic1)

		ApplyDayPatch(rec, patch)
		require.Nil(t, rec.DayShift[SlotHasic1])
		require.NotNil(t, rec.NightShift[SlotHasic1])
	})
}

func TestApplyDayPatchDayShiftLifecycle(t *testing.T) {
	t.Run("enabling creates the empty slot map", func(t *testing.T) {
		enabled := true
		rec := ApplyDayPatch(nil, &DayPatch{SetDayShiftEnabled: &enabled})
		require.True(t, rec.DayShiftEnabled)
		require.NotNil(t, rec.DayShift)
		require.Empty(t, rec.DayShift)
	})

	t.Run("clearing removes both the flag and the map", func(t *testing.T) {
		rec := &DayRecord{DayShiftEnabled: true, DayShift: map[SlotKey]*Assignment{}}
		ApplyDayPatch(rec, &DayPatch{ClearDayShift: true})
		require.False(t, rec.DayShiftEnabled)
		require.Nil(t, rec.DayShift)
	})
}

func TestApplyDayPatchHours(t *testing.T) {
	t.Run("components merge independently", func(t *testing.T) {
		night := 4
		rec := &DayRecord{Hours: map[string]*HoursOverride{"u1": {Night: &night}}}

		patch := &DayPatch{}
		patch.SetHoursField("u1", &HoursField{Day: &ComponentField{Value: 6}})
		ApplyDayPatch(rec, patch)

		require.Equal(t, 6, *rec.Hours["u1"].Day)
		require.Equal(t, 4, *rec.Hours["u1"].Night)
	})

	t.Run("delete removes the whole entry", func(t *testing.T) {
		day := 8
		rec := &DayRecord{Hours: map[string]*HoursOverride{"u1": {Day: &day}}}

		patch := &DayPatch{}
		patch.SetHoursField("u1", &HoursField{Delete: true})
		ApplyDayPatch(rec, patch)

		require.NotContains(t, rec.Hours, "u1")
	})

	t.Run("an entry emptied component-wise is dropped, not left as an empty object", func(t *testing.T) {
		day := 8
		rec := &DayRecord{Hours: map[string]*HoursOverride{"u1": {Day: &day}}}

		patch := &DayPatch{}
		patch.SetHoursField("u1", &HoursField{Day: &ComponentField{Delete: true}})
		ApplyDayPatch(rec, patch)

		require.NotContains(t, rec.Hours, "u1")
	})

	t.Run("a partial wipe keeps the surviving component", func(t *testing.T) {
		day, night := 8, 11
		rec := &DayRecord{Hours: map[string]*HoursOverride{"u1": {Day: &day, Night: &night}}}

		patch := &DayPatch{}
		patch.SetHoursField("u1", &HoursField{Day: &ComponentField{Delete: true}})
		ApplyDayPatch(rec, patch)

		require.Nil(t, rec.Hours["u1"].Day)
		require.Equal(t, 11, *rec.Hours["u1"].Night)
	})

	t.Run("explicit zero is stored, not dropped", func(t *testing.T) {
		patch := &DayPatch{}
		patch.SetHoursField("u1", &HoursField{Day: &ComponentField{Value: 0}, Night: &ComponentField{Value: 0}})
		rec := ApplyDayPatch(nil, patch)

		require.Equal(t, 0, *rec.Hours["u1"].Day)
		require.Equal(t, 0, *rec.Hours["u1"].Night)
	})
}

func TestDayPatchIsEmpty(t *testing.T) {
	var missing *DayPatch
	require.True(t, missing.IsEmpty())
	require.True(t, (&DayPatch{}).IsEmpty())

	p := &DayPatch{}
	p.DeleteSlot(ShiftNight, SlotHasic1)
	require.False(t, p.IsEmpty())

	enabled := true
	require.False(t, (&DayPatch{SetDayShiftEnabled: &enabled}).IsEmpty())
	require.False(t, (&DayPatch{ClearDayShift: true}).IsEmpty())
}
