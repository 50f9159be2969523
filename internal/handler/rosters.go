package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/engine"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	month := r.Context().Value(MonthCtx).(*monthParam)

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "roster loaded", doc)
}

// LiveRoster streams the full document over SSE: once on connect, then again
// on every committed change. The client never polls.
func (h *Handler) LiveRoster(w http.ResponseWriter, r *http.Request) {
	month := r.Context().Value(MonthCtx).(*monthParam)

	flusher, ok := w.(http.Flusher)
	if !ok {
		h.errorResponse(w, r, "streaming is not supported by this connection")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ticks, stop := h.hub.Watch(r.Context(), month.ID)
	defer stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, open := <-ticks:
			if !open {
				return
			}
			doc, err := h.repository.GetRoster(month.ID)
			if err != nil {
				h.logInternalServerError(r, err)
				return
			}
			data, err := json.Marshal(doc)
			if err != nil {
				h.logInternalServerError(r, err)
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

func (h *Handler) AddDayShift(w http.ResponseWriter, r *http.Request) {
	ident := r.Context().Value(IdentityCtx).(*domain.Identity)
	month := r.Context().Value(MonthCtx).(*monthParam)
	day := r.Context().Value(DayCtx).(int)

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	decision := engine.AddDayShift(doc, day, ident)
	if decision.Kind == engine.Denied {
		h.errorResponse(w, r, decision.Reason)
		return
	}

	if err := h.repository.MergeDayPatch(month.ID, day, decision.Patch); err != nil {
		h.storeWriteFailure(w, r, err)
		return
	}
	h.notifyChanged(r, month.ID)
	h.publishEvent(r, &domain.RosterEvent{
		ID:         uuid.NewString(),
		Type:       domain.EventDayShiftAdded,
		Month:      month.ID,
		Day:        day,
		ActorUID:   ident.UID,
		ActorName:  ident.Name,
		OccurredAt: time.Now(),
	})

	h.successResponse(w, r, "day shift created", nil)
}

func (h *Handler) RemoveDayShift(w http.ResponseWriter, r *http.Request) {
	ident := r.Context().Value(IdentityCtx).(*domain.Identity)
	month := r.Context().Value(MonthCtx).(*monthParam)
	day := r.Context().Value(DayCtx).(int)

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	decision := engine.RemoveDayShift(doc, day, ident)
	if decision.Kind == engine.Denied {
		h.errorResponse(w, r, decision.Reason)
		return
	}

	if err := h.repository.MergeDayPatch(month.ID, day, decision.Patch); err != nil {
		h.storeWriteFailure(w, r, err)
		return
	}
	h.notifyChanged(r, month.ID)
	h.publishEvent(r, &domain.RosterEvent{
		ID:         uuid.NewString(),
		Type:       domain.EventDayShiftRemoved,
		Month:      month.ID,
		Day:        day,
		ActorUID:   ident.UID,
		ActorName:  ident.Name,
		OccurredAt: time.Now(),
	})

	h.successResponse(w, r, "day shift removed", nil)
}
