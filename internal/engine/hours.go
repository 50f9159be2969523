package engine

import "github.com/sdh-lhota/duty-roster/backend/internal/domain"

// Hours is the effective worked-hours derivation for one member on one day.
// Explicit marks that some override entry exists for the member.
type Hours struct {
	Day      int  `json:"day"`
	Night    int  `json:"night"`
	Total    int  `json:"total"`
	Explicit bool `json:"explicit"`
}

// EffectiveHours reconciles explicit overrides with the defaults implied by
// slot occupancy. A present override component wins even when 0; an absent
// one falls back to the occupancy default, never to zero. The legacy
// single-number shape reads as a split-less total.
func EffectiveHours(rec *domain.DayRecord, uid string) Hours {
	var override *domain.HoursOverride
	if rec != nil {
		override = rec.Hours[uid]
	}

	if override != nil && override.Day == nil && override.Night == nil && override.Legacy != nil {
		return Hours{Day: 0, Night: 0, Total: *override.Legacy, Explicit: true}
	}

	day := 0
	if override != nil && override.Day != nil {
		day = *override.Day
	} else if rec.Occupies(domain.ShiftDay, uid) {
		day = domain.DefaultDayHours
	}

	night := 0
	if override != nil && override.Night != nil {
		night = *override.Night
	} else if rec.Occupies(domain.ShiftNight, uid) {
		night = domain.DefaultNightHours
	}

	return Hours{Day: day, Night: night, Total: day + night, Explicit: override != nil}
}

// appendHoursCleanup adds the override-wipe write for a member affected by a
// slot mutation. The check runs on the post-mutation state: a component is
// wiped when the action directly targeted that half, or when the member no
// longer occupies any slot in it (stale overrides must not misstate hours).
// When both halves wipe the entry is deleted entirely; a partial wipe
// tombstones only the stale component and preserves the other.
func appendHoursCleanup(patch *domain.DayPatch, pre *domain.DayRecord, uid string, touched domain.ShiftHalf) {
	post := domain.ApplyDayPatch(pre.Clone(), patch)

	wipeDay := touched == domain.ShiftDay || !post.Occupies(domain.ShiftDay, uid)
	wipeNight := touched == domain.ShiftNight || !post.Occupies(domain.ShiftNight, uid)

	if wipeDay && wipeNight {
		patch.SetHoursField(uid, &domain.HoursField{Delete: true})
		return
	}
	field := &domain.HoursField{}
	if wipeDay {
		field.Day = &domain.ComponentField{Delete: true}
	}
	if wipeNight {
		field.Night = &domain.ComponentField{Delete: true}
	}
	patch.SetHoursField(uid, field)
}

// SetHours is the administrative override edit: one component becomes an
// explicit non-negative value while the other is pinned at its current
// effective value, so editing one half never perturbs the other. After an
// edit both components are explicit; tombstoning only ever happens through
// the engine's own cleanup pass.
func SetHours(doc *domain.RosterDocument, day int, uid string, half domain.ShiftHalf, value int, actor *domain.Identity) Decision {
	if !actor.CanAct() {
		return denied(ReasonNotPermitted)
	}
	if !actor.CanManageHours() {
		return denied(ReasonHoursNotPermitted)
	}
	if !domain.IsValidShiftHalf(half) {
		return denied("unknown shift half")
	}
	if value < 0 {
		value = 0 // clamp on decrement
	}

	current := EffectiveHours(doc.Day(day), uid)
	dayValue, nightValue := current.Day, current.Night
	if half == domain.ShiftDay {
		dayValue = value
	} else {
		nightValue = value
	}

	patch := &domain.DayPatch{}
	patch.SetHoursField(uid, &domain.HoursField{
		Day:   &domain.ComponentField{Value: dayValue},
		Night: &domain.ComponentField{Value: nightValue},
	})
	return applied(patch)
}
