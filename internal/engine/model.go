package engine

import "github.com/sdh-lhota/duty-roster/backend/internal/domain"

// Request is one roster action against a single slot, carried out on behalf
// of the verified actor.
type Request struct {
	Day   int
	Shift domain.ShiftHalf
	Slot  domain.SlotKey
	Actor *domain.Identity
}

type DecisionKind int

const (
	// Applied: the patch can be written immediately.
	Applied DecisionKind = iota
	// NeedsConfirmation: the patch must not be written until the actor
	// confirms; the caller owns the suspension.
	NeedsConfirmation
	// Denied: policy refused the action, no state change.
	Denied
	// Declined: the actor cancelled a proposed action, pure no-op.
	Declined
)

type ConfirmationKind string

const (
	ConfirmSelfRemoval        ConfirmationKind = "self-removal"
	ConfirmBump               ConfirmationKind = "bump"
	ConfirmEviction           ConfirmationKind = "eviction"
	ConfirmUnqualifiedVelitel ConfirmationKind = "unqualified-velitel"
)

// Confirmation describes a proposed action awaiting a human decision.
// OccupantUID pins the counterpart for bump/eviction so a confirmation
// cannot be applied against a different member after a race.
type Confirmation struct {
	Kind        ConfirmationKind `json:"kind"`
	OccupantUID string           `json:"occupantUid,omitempty"`
	Message     string           `json:"message"`
}

// Denial reasons surfaced to the caller. Policy denials are not retryable
// as-is; none of them changes state.
const (
	ReasonNotPermitted          = "your account is not approved for roster actions"
	ReasonSlotOccupied          = "slot already occupied"
	ReasonAlreadyAssigned       = "already assigned to this shift; remove your existing assignment first"
	ReasonQualificationRequired = "the strojník slot requires the Strojník qualification"
	ReasonNoFreeFirefighterSlot = "cannot take over: all firefighter slots are occupied"
	ReasonDayShiftExists        = "a day shift already exists for this date"
	ReasonDayShiftMissing       = "no day shift exists for this date"
	ReasonDayShiftOccupied      = "cannot remove a day shift that has assigned members"
	ReasonHoursNotPermitted     = "hours can only be edited by brigade leadership"
	ReasonStaleConfirmation     = "the roster changed in the meantime; please retry"
)

// Decision is the engine's answer: what to do with the slot action. Patch is
// the single merge-write all mutating branches converge on; for
// NeedsConfirmation it is the write that a positive resolution will issue.
type Decision struct {
	Kind         DecisionKind
	Reason       string
	Confirmation *Confirmation
	Patch        *domain.DayPatch
}

func denied(reason string) Decision {
	return Decision{Kind: Denied, Reason: reason}
}

func applied(patch *domain.DayPatch) Decision {
	return Decision{Kind: Applied, Patch: patch}
}

func pending(c *Confirmation, patch *domain.DayPatch) Decision {
	return Decision{Kind: NeedsConfirmation, Confirmation: c, Patch: patch}
}
