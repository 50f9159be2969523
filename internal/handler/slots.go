package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/engine"
)

// pendingConfirmation is the suspended half of a two-phase slot action,
// parked in Redis until the member answers the dialog or the token expires.
type pendingConfirmation struct {
	Month        string              `json:"month"`
	Day          int                 `json:"day"`
	Shift        domain.ShiftHalf    `json:"shift"`
	Slot         domain.SlotKey      `json:"slot"`
	ActorUID     string              `json:"actorUid"`
	Confirmation engine.Confirmation `json:"confirmation"`
}

func confirmationKey(token string) string {
	return fmt.Sprintf("confirmation_%s", token)
}

func (h *Handler) ProposeSlotAction(w http.ResponseWriter, r *http.Request) {
	ident := r.Context().Value(IdentityCtx).(*domain.Identity)
	month := r.Context().Value(MonthCtx).(*monthParam)
	day := r.Context().Value(DayCtx).(int)

	shift := domain.ShiftHalf(chi.URLParam(r, "shift"))
	slot := domain.SlotKey(chi.URLParam(r, "slot"))
	if !domain.IsValidShiftHalf(shift) || !domain.IsValidSlotKey(slot) {
		h.errorResponse(w, r, "unknown shift or slot")
		return
	}

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	req := engine.Request{Day: day, Shift: shift, Slot: slot, Actor: ident}
	decision := engine.Evaluate(doc, req)

	switch decision.Kind {
	case engine.Denied:
		h.errorResponse(w, r, decision.Reason)
	case engine.NeedsConfirmation:
		token := uuid.NewString()
		pc := pendingConfirmation{
			Month:        month.ID,
			Day:          day,
			Shift:        shift,
			Slot:         slot,
			ActorUID:     ident.UID,
			Confirmation: *decision.Confirmation,
		}
		payload, err := json.Marshal(pc)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
		defer cancel()

		if err := h.redisClient.Set(ctx, confirmationKey(token), payload, time.Duration(h.config.Confirmation.Expiration)*time.Second).Err(); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		h.successResponse(w, r, decision.Confirmation.Message, map[string]any{
			"token":   token,
			"kind":    decision.Confirmation.Kind,
			"pending": true,
		})
	case engine.Applied:
		h.applySlotDecision(w, r, month, day, req, nil, decision)
	}
}

func (h *Handler) ResolveConfirmation(w http.ResponseWriter, r *http.Request) {
	ident := r.Context().Value(IdentityCtx).(*domain.Identity)
	token := chi.URLParam(r, "token")

	var req struct {
		Accepted *bool `json:"accepted" validate:"required"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	raw, err := h.redisClient.Get(ctx, confirmationKey(token)).Result()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			h.errorResponse(w, r, "confirmation expired or already resolved")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	pc := pendingConfirmation{}
	if err := json.Unmarshal([]byte(raw), &pc); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if pc.ActorUID != ident.UID {
		h.errorResponse(w, r, "this confirmation belongs to a different member")
		return
	}

	// single use: burn the token before acting on it
	if err := h.redisClient.Del(ctx, confirmationKey(token)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	year, month, err := domain.ParseMonthID(pc.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	mp := &monthParam{ID: pc.Month, Year: year, Month: month}

	doc, err := h.repository.GetRoster(pc.Month)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	actionReq := engine.Request{Day: pc.Day, Shift: pc.Shift, Slot: pc.Slot, Actor: ident}
	decision := engine.Resolve(doc, actionReq, &pc.Confirmation, *req.Accepted)

	switch decision.Kind {
	case engine.Declined:
		h.successResponse(w, r, "action cancelled", nil)
	case engine.Denied:
		h.errorResponse(w, r, decision.Reason)
	case engine.Applied:
		h.applySlotDecision(w, r, mp, pc.Day, actionReq, &pc.Confirmation, decision)
	}
}

// applySlotDecision issues the single merge-write all mutating branches
// converge on, then fans out the change tick and the audit event.
func (h *Handler) applySlotDecision(w http.ResponseWriter, r *http.Request, month *monthParam, day int, req engine.Request, confirmed *engine.Confirmation, decision engine.Decision) {
	if err := h.repository.MergeDayPatch(month.ID, day, decision.Patch); err != nil {
		h.storeWriteFailure(w, r, err)
		return
	}
	h.notifyChanged(r, month.ID)

	eventType, subjectUID, msg := slotOutcome(confirmed, req)
	h.publishEvent(r, &domain.RosterEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Month:      month.ID,
		Day:        day,
		Shift:      req.Shift,
		Slot:       req.Slot,
		ActorUID:   req.Actor.UID,
		ActorName:  req.Actor.Name,
		SubjectUID: subjectUID,
		OccurredAt: time.Now(),
	})

	h.successResponse(w, r, msg, nil)
}

func slotOutcome(confirmed *engine.Confirmation, req engine.Request) (domain.EventType, string, string) {
	if confirmed == nil {
		return domain.EventSlotAssigned, req.Actor.UID, "duty saved"
	}
	switch confirmed.Kind {
	case engine.ConfirmSelfRemoval:
		return domain.EventSlotReleased, req.Actor.UID, "duty cancelled"
	case engine.ConfirmBump:
		return domain.EventSlotBumped, confirmed.OccupantUID, "position taken over"
	case engine.ConfirmEviction:
		return domain.EventSlotEvicted, confirmed.OccupantUID, "member removed from the slot"
	default:
		return domain.EventSlotAssigned, req.Actor.UID, "duty saved"
	}
}

func (h *Handler) notifyChanged(r *http.Request, docID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	if err := h.hub.Publish(ctx, docID); err != nil {
		slog.Error("failed to publish roster change tick", "doc", docID, "error", err)
	}
}

// publishEvent hands the applied change to the roster_events queue. The
// write already committed, so a queue hiccup is logged instead of failing
// the request.
func (h *Handler) publishEvent(r *http.Request, ev *domain.RosterEvent) {
	body, err := json.Marshal(ev)
	if err != nil {
		slog.Error("failed to marshal roster event", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	err = h.eventChannel.PublishWithContext(
		ctx,
		"",
		domain.EventQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		slog.Error("failed to publish roster event", "type", ev.Type, "error", err)
	}
}
