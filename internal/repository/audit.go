package repository

import (
	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

func (r *Repository) InsertAuditEvent(ev *domain.RosterEvent) error {
	query := `
		INSERT INTO audit_events (
			id,
			event_type,
			month_id,
			day,
			shift,
			slot,
			actor_uid,
			actor_name,
			subject_uid,
			occurred_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	params := []any{
		ev.ID,
		ev.Type,
		ev.Month,
		ev.Day,
		ev.Shift,
		ev.Slot,
		ev.ActorUID,
		ev.ActorName,
		ev.SubjectUID,
		ev.OccurredAt,
	}
	if _, err := r.dbpool.ExecContext(ctx, query, params...); err != nil {
		return err
	}

	return nil
}
