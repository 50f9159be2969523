package domain

import (
	"fmt"
	"time"
)

type SlotKey string

const (
	SlotVelitel  SlotKey = "velitel"
	SlotStrojnik SlotKey = "strojnik"
	SlotHasic1   SlotKey = "hasic1"
	SlotHasic2   SlotKey = "hasic2"
	SlotHasic3   SlotKey = "hasic3"
)

// SlotKeys lists all slots of a shift half in display order.
var SlotKeys = []SlotKey{SlotVelitel, SlotStrojnik, SlotHasic1, SlotHasic2, SlotHasic3}

// FirefighterSlots are the bump targets: never qualification-restricted.
var FirefighterSlots = []SlotKey{SlotHasic1, SlotHasic2, SlotHasic3}

func IsValidSlotKey(s SlotKey) bool {
	for _, k := range SlotKeys {
		if k == s {
			return true
		}
	}
	return false
}

type ShiftHalf string

const (
	ShiftDay   ShiftHalf = "day"
	ShiftNight ShiftHalf = "night"
)

func IsValidShiftHalf(s ShiftHalf) bool {
	return s == ShiftDay || s == ShiftNight
}

// Default worked-hour values implied by slot occupancy.
const (
	DefaultDayHours   = 8  // ~9:00 - 17:00
	DefaultNightHours = 11 // 18:00 - 5:00
)

// Assignment is one occupied slot. Qualified=false marks a member holding a
// role-restricted slot without the required qualification (velitel only).
type Assignment struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	Qualified bool   `json:"qualified"`
}

// HoursOverride is an explicit per-member correction of worked hours,
// independent per shift half. A present component (including 0) overrides the
// default; an absent one means "derive from occupancy". Legacy carries the
// pre-migration single-number shape and is read as a day-less total.
type HoursOverride struct {
	Day    *int `json:"day,omitempty"`
	Night  *int `json:"night,omitempty"`
	Legacy *int `json:"hours,omitempty"`
}

func (h *HoursOverride) IsEmpty() bool {
	return h == nil || (h.Day == nil && h.Night == nil && h.Legacy == nil)
}

// DayRecord holds both shift halves of one calendar day. The night shift
// implicitly exists for every day; the day shift only when enabled.
type DayRecord struct {
	DayShiftEnabled bool                    `json:"dayShiftEnabled,omitempty"`
	DayShift        map[SlotKey]*Assignment `json:"dayShift,omitempty"`
	NightShift      map[SlotKey]*Assignment `json:"nightShift,omitempty"`
	Hours           map[string]*HoursOverride `json:"hours,omitempty"`
}

// Shift returns the slot map of the given half, which may be nil.
func (d *DayRecord) Shift(half ShiftHalf) map[SlotKey]*Assignment {
	if d == nil {
		return nil
	}
	if half == ShiftDay {
		return d.DayShift
	}
	return d.NightShift
}

// SlotOf finds the slot the member occupies within one shift half.
func (d *DayRecord) SlotOf(half ShiftHalf, uid string) (SlotKey, bool) {
	for _, key := range SlotKeys {
		if a := d.Shift(half)[key]; a != nil && a.UID == uid {
			return key, true
		}
	}
	return "", false
}

// Occupies reports whether the member holds any slot in the given half.
func (d *DayRecord) Occupies(half ShiftHalf, uid string) bool {
	_, ok := d.SlotOf(half, uid)
	return ok
}

// HasDayShift reports whether a day shift exists for this date, either
// enabled explicitly or implied by assignments (legacy documents predate the
// dayShiftEnabled flag).
func (d *DayRecord) HasDayShift() bool {
	if d == nil {
		return false
	}
	return d.DayShiftEnabled || len(d.DayShift) > 0
}

func (d *DayRecord) Clone() *DayRecord {
	if d == nil {
		return &DayRecord{}
	}
	c := &DayRecord{DayShiftEnabled: d.DayShiftEnabled}
	if d.DayShift != nil {
		c.DayShift = make(map[SlotKey]*Assignment, len(d.DayShift))
		for k, a := range d.DayShift {
			dup := *a
			c.DayShift[k] = &dup
		}
	}
	if d.NightShift != nil {
		c.NightShift = make(map[SlotKey]*Assignment, len(d.NightShift))
		for k, a := range d.NightShift {
			dup := *a
			c.NightShift[k] = &dup
		}
	}
	if d.Hours != nil {
		c.Hours = make(map[string]*HoursOverride, len(d.Hours))
		for uid, h := range d.Hours {
			dup := HoursOverride{}
			if h.Day != nil {
				v := *h.Day
				dup.Day = &v
			}
			if h.Night != nil {
				v := *h.Night
				dup.Night = &v
			}
			if h.Legacy != nil {
				v := *h.Legacy
				dup.Legacy = &v
			}
			c.Hours[uid] = &dup
		}
	}
	return c
}

// RosterDocument is one month of the duty roster, id "YYYY-MM".
type RosterDocument struct {
	Days map[int]*DayRecord `json:"days"`
}

func NewRosterDocument() *RosterDocument {
	return &RosterDocument{Days: make(map[int]*DayRecord)}
}

// Day returns the record for the given day number, or nil.
func (r *RosterDocument) Day(day int) *DayRecord {
	if r == nil {
		return nil
	}
	return r.Days[day]
}

// DayCopy returns a deep copy of the day record, or an empty record when the
// day has never been written. Callers mutate the copy freely.
func (r *RosterDocument) DayCopy(day int) *DayRecord {
	return r.Day(day).Clone()
}

// FormatMonthID builds the zero-padded document id, e.g. "2025-03".
func FormatMonthID(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseMonthID validates and splits a document id.
func ParseMonthID(id string) (int, time.Month, error) {
	var year, month int
	if _, err := fmt.Sscanf(id, "%4d-%2d", &year, &month); err != nil {
		return 0, 0, fmt.Errorf("invalid month id %q", id)
	}
	if len(id) != 7 || id[4] != '-' || month < 1 || month > 12 || year < 2000 || year > 2999 {
		return 0, 0, fmt.Errorf("invalid month id %q", id)
	}
	return year, time.Month(month), nil
}

// DaysInMonth returns the number of calendar days of a roster month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
