package engine

import (
	"fmt"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

// Evaluate runs the slot decision procedure against a roster snapshot. It
// never mutates the document; the returned patch covers exactly one day
// record and is applied by the store (or discarded on a declined
// confirmation). Evaluated in order against the slot's current occupant:
// self-removal, bump/eviction/occupied, then the free-slot rules.
func Evaluate(doc *domain.RosterDocument, req Request) Decision {
	if !req.Actor.CanAct() {
		return denied(ReasonNotPermitted)
	}
	if !domain.IsValidShiftHalf(req.Shift) || !domain.IsValidSlotKey(req.Slot) {
		return denied(fmt.Sprintf("unknown slot %s/%s", req.Shift, req.Slot))
	}

	rec := doc.DayCopy(req.Day)
	occupant := rec.Shift(req.Shift)[req.Slot]
	actorQualified := domain.IsQualified(req.Slot, req.Actor.Roles)
	patch := &domain.DayPatch{}

	// Case 1: the actor occupies the slot itself -> self-removal.
	if occupant != nil && occupant.UID == req.Actor.UID {
		patch.DeleteSlot(req.Shift, req.Slot)
		appendHoursCleanup(patch, rec, req.Actor.UID, req.Shift)
		return pending(&Confirmation{
			Kind:    ConfirmSelfRemoval,
			Message: "Really cancel your duty?",
		}, patch)
	}

	// Case 2: the slot is taken by someone else.
	if occupant != nil {
		// A qualified member may bump an unqualified velitel into a free
		// firefighter slot. Strojník is strict; no bump there.
		if req.Slot == domain.SlotVelitel && actorQualified && !occupant.Qualified {
			freeSlot, ok := freeFirefighterSlot(rec.Shift(req.Shift))
			if !ok {
				return denied(ReasonNoFreeFirefighterSlot)
			}
			moved := *occupant
			moved.Qualified = true // firefighter slots are never restricted
			patch.SetSlot(req.Shift, freeSlot, &moved)
			patch.SetSlot(req.Shift, req.Slot, &domain.Assignment{
				UID:       req.Actor.UID,
				Name:      req.Actor.Name,
				Qualified: true,
			})
			appendHoursCleanup(patch, rec, req.Actor.UID, req.Shift)
			return pending(&Confirmation{
				Kind:        ConfirmBump,
				OccupantUID: occupant.UID,
				Message:     fmt.Sprintf("Take over the velitel position from %s? They will be moved to a firefighter slot.", occupant.Name),
			}, patch)
		}

		if req.Actor.CanEvict() {
			patch.DeleteSlot(req.Shift, req.Slot)
			appendHoursCleanup(patch, rec, occupant.UID, req.Shift)
			return pending(&Confirmation{
				Kind:        ConfirmEviction,
				OccupantUID: occupant.UID,
				Message:     fmt.Sprintf("Remove %s from this slot?", occupant.Name),
			}, patch)
		}

		return denied(ReasonSlotOccupied)
	}

	// Case 3: the slot is free.
	if _, taken := rec.SlotOf(req.Shift, req.Actor.UID); taken {
		return denied(ReasonAlreadyAssigned)
	}
	if req.Slot == domain.SlotStrojnik && !actorQualified {
		return denied(ReasonQualificationRequired)
	}

	assignment := &domain.Assignment{
		UID:       req.Actor.UID,
		Name:      req.Actor.Name,
		Qualified: true,
	}

	if req.Slot == domain.SlotVelitel && !actorQualified {
		assignment.Qualified = false
		patch.SetSlot(req.Shift, req.Slot, assignment)
		appendHoursCleanup(patch, rec, req.Actor.UID, req.Shift)
		return pending(&Confirmation{
			Kind:    ConfirmUnqualifiedVelitel,
			Message: "You lack the velitel qualification. You will be marked unqualified and a qualified VD may take your place. Continue?",
		}, patch)
	}

	patch.SetSlot(req.Shift, req.Slot, assignment)
	appendHoursCleanup(patch, rec, req.Actor.UID, req.Shift)
	return applied(patch)
}

// Resolve finishes a suspended action. The decision procedure is re-run
// against the fresh snapshot: the patch is applied only when it still means
// the same thing (same confirmation kind against the same counterpart).
// Anything else is stale and refused rather than applied blindly.
func Resolve(doc *domain.RosterDocument, req Request, pendingAction *Confirmation, accepted bool) Decision {
	if !accepted {
		return Decision{Kind: Declined}
	}

	d := Evaluate(doc, req)
	if d.Kind == NeedsConfirmation &&
		d.Confirmation.Kind == pendingAction.Kind &&
		d.Confirmation.OccupantUID == pendingAction.OccupantUID {
		return applied(d.Patch)
	}
	return denied(ReasonStaleConfirmation)
}

// AddDayShift enables a day shift for the date. Night shifts exist
// implicitly; day shifts are created on demand.
func AddDayShift(doc *domain.RosterDocument, day int, actor *domain.Identity) Decision {
	if !actor.CanAct() {
		return denied(ReasonNotPermitted)
	}
	if doc.Day(day).HasDayShift() {
		return denied(ReasonDayShiftExists)
	}

	enabled := true
	return applied(&domain.DayPatch{SetDayShiftEnabled: &enabled})
}

// RemoveDayShift tombstones an empty day shift. A shift with assigned
// members must be emptied first.
func RemoveDayShift(doc *domain.RosterDocument, day int, actor *domain.Identity) Decision {
	if !actor.CanAct() {
		return denied(ReasonNotPermitted)
	}
	rec := doc.Day(day)
	if !rec.HasDayShift() {
		return denied(ReasonDayShiftMissing)
	}
	if len(rec.DayShift) > 0 {
		return denied(ReasonDayShiftOccupied)
	}

	return applied(&domain.DayPatch{ClearDayShift: true})
}

func freeFirefighterSlot(slots map[domain.SlotKey]*domain.Assignment) (domain.SlotKey, bool) {
	for _, key := range domain.FirefighterSlots {
		if slots[key] == nil {
			return key, true
		}
	}
	return "", false
}
