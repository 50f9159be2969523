package domain

import "time"

// EventQueue is the durable queue roster events are published to.
const EventQueue = "roster_events"

type EventType string

const (
	EventSlotAssigned    EventType = "slot-assigned"
	EventSlotReleased    EventType = "slot-released"
	EventSlotBumped      EventType = "slot-bumped"
	EventSlotEvicted     EventType = "slot-evicted"
	EventDayShiftAdded   EventType = "day-shift-added"
	EventDayShiftRemoved EventType = "day-shift-removed"
	EventHoursSet        EventType = "hours-set"
)

// RosterEvent is published after every applied roster write. Downstream
// consumers (audit trail today, notification senders eventually) read the
// queue; the roster service itself never delivers notifications.
type RosterEvent struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Month      string    `json:"month"`
	Day        int       `json:"day"`
	Shift      ShiftHalf `json:"shift,omitempty"`
	Slot       SlotKey   `json:"slot,omitempty"`
	ActorUID   string    `json:"actorUid"`
	ActorName  string    `json:"actorName"`
	SubjectUID string    `json:"subjectUid,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
