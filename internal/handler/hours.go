package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
	"github.com/sdh-lhota/duty-roster/backend/internal/engine"
)

// SetHours is the administrative override edit: one shift half of one member
// on one day gets an explicit value, the other half stays at its current
// effective value.
func (h *Handler) SetHours(w http.ResponseWriter, r *http.Request) {
	ident := r.Context().Value(IdentityCtx).(*domain.Identity)
	month := r.Context().Value(MonthCtx).(*monthParam)
	day := r.Context().Value(DayCtx).(int)
	uid := chi.URLParam(r, "uid")

	var req struct {
		Half  string `json:"half" validate:"required,oneof=day night"`
		Value *int   `json:"value" validate:"required,gte=0"`
	}
	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	decision := engine.SetHours(doc, day, uid, domain.ShiftHalf(req.Half), *req.Value, ident)
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
		Type:       domain.EventHoursSet,
		Month:      month.ID,
		Day:        day,
		Shift:      domain.ShiftHalf(req.Half),
		ActorUID:   ident.UID,
		ActorName:  ident.Name,
		SubjectUID: uid,
		OccurredAt: time.Now(),
	})

	h.successResponse(w, r, "hours updated", nil)
}
