package handler

import (
	"net/http"
	"time"

	"github.com/sdh-lhota/duty-roster/backend/internal/stats"
)

func (h *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	month := r.Context().Value(MonthCtx).(*monthParam)

	doc, err := h.repository.GetRoster(month.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	result := stats.Aggregate(doc, month.Year, month.Month, time.Now())

	h.successResponse(w, r, "statistics computed", result)
}
