package domain

// DayPatch is a merge-write covering exactly one day record. Nested maps
// merge key by key; a Delete marker tombstones the targeted key without
// touching its siblings. This mirrors the document store's partial-update
// contract, so a patch can be applied both locally (to predict post-mutation
// state) and by the store itself.
type DayPatch struct {
	// SetDayShiftEnabled enables the day shift; applying it also creates the
	// empty slot map so the shift shows up before anyone signs in.
	SetDayShiftEnabled *bool

	// ClearDayShift tombstones both dayShiftEnabled and the dayShift map.
	// Only legal while the day shift is empty; the engine enforces that.
	ClearDayShift bool

	DayShift   map[SlotKey]*SlotField
	NightShift map[SlotKey]*SlotField
	Hours      map[string]*HoursField
}

type SlotField struct {
	Delete     bool
	Assignment *Assignment
}

// HoursField patches one member's override entry. Delete removes the whole
// entry; otherwise Day/Night are merged component-wise.
type HoursField struct {
	Delete bool
	Day    *ComponentField
	Night  *ComponentField
}

type ComponentField struct {
	Delete bool
	Value  int
}

func (p *DayPatch) shift(half ShiftHalf) map[SlotKey]*SlotField {
	if half == ShiftDay {
		if p.DayShift == nil {
			p.DayShift = make(map[SlotKey]*SlotField)
		}
		return p.DayShift
	}
	if p.NightShift == nil {
		p.NightShift = make(map[SlotKey]*SlotField)
	}
	return p.NightShift
}

func (p *DayPatch) SetSlot(half ShiftHalf, key SlotKey, a *Assignment) {
	p.shift(half)[key] = &SlotField{Assignment: a}
}

func (p *DayPatch) DeleteSlot(half ShiftHalf, key SlotKey) {
	p.shift(half)[key] = &SlotField{Delete: true}
}

func (p *DayPatch) SetHoursField(uid string, f *HoursField) {
	if p.Hours == nil {
		p.Hours = make(map[string]*HoursField)
	}
	p.Hours[uid] = f
}

// IsEmpty reports whether applying the patch would be a no-op write.
func (p *DayPatch) IsEmpty() bool {
	return p == nil ||
		(p.SetDayShiftEnabled == nil && !p.ClearDayShift &&
			len(p.DayShift) == 0 && len(p.NightShift) == 0 && len(p.Hours) == 0)
}

// ApplyDayPatch merges the patch into the record in place and returns the
// record. Hours entries that end up with no components are removed entirely
// rather than left as empty objects.
func ApplyDayPatch(rec *DayRecord, p *DayPatch) *DayRecord {
	if rec == nil {
		rec = &DayRecord{}
	}
	if p == nil {
		return rec
	}

	if p.ClearDayShift {
		rec.DayShiftEnabled = false
		rec.DayShift = nil
	}
	if p.SetDayShiftEnabled != nil {
		rec.DayShiftEnabled = *p.SetDayShiftEnabled
		if rec.DayShift == nil {
			rec.DayShift = make(map[SlotKey]*Assignment)
		}
	}

	applySlots := func(dst map[SlotKey]*Assignment, fields map[SlotKey]*SlotField) map[SlotKey]*Assignment {
		if len(fields) == 0 {
			return dst
		}
		if dst == nil {
			dst = make(map[SlotKey]*Assignment)
		}
		for key, f := range fields {
			if f.Delete {
				delete(dst, key)
				continue
			}
			dup := *f.Assignment
			dst[key] = &dup
		}
		return dst
	}
	rec.DayShift = applySlots(rec.DayShift, p.DayShift)
	rec.NightShift = applySlots(rec.NightShift, p.NightShift)

	for uid, f := range p.Hours {
		if f.Delete {
			delete(rec.Hours, uid)
			continue
		}
		if rec.Hours == nil {
			rec.Hours = make(map[string]*HoursOverride)
		}
		cur := rec.Hours[uid]
		if cur == nil {
			cur = &HoursOverride{}
			rec.Hours[uid] = cur
		}
		if f.Day != nil {
			if f.Day.Delete {
				cur.Day = nil
			} else {
				v := f.Day.Value
				cur.Day = &v
			}
		}
		if f.Night != nil {
			if f.Night.Delete {
				cur.Night = nil
			} else {
				v := f.Night.Value
				cur.Night = &v
			}
		}
		if cur.IsEmpty() {
			delete(rec.Hours, uid)
		}
	}

	return rec
}
