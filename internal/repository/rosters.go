package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

// GetRoster reads one month document. A month that has never been written
// reads as an empty document, matching the document-store contract.
func (r *Repository) GetRoster(id string) (*domain.RosterDocument, error) {
	query := `
		SELECT data FROM rosters WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	var raw []byte
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NewRosterDocument(), nil
		}
		return nil, err
	}

	doc := &domain.RosterDocument{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, err
	}
	if doc.Days == nil {
		doc.Days = make(map[int]*domain.DayRecord)
	}

	return doc, nil
}

// MergeDayPatch applies one merge-write to a single day record. The row is
// locked for the duration, so a single write is atomic and partial writes are
// never visible; concurrent writers to the same slot still resolve
// last-writer-wins at the field level, as the source system does.
func (r *Repository) MergeDayPatch(id string, day int, patch *domain.DayPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `INSERT INTO rosters (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`, id); err != nil {
		return err
	}

	var raw []byte
	if err := tx.QueryRowContext(ctx, `SELECT data FROM rosters WHERE id = $1 FOR UPDATE`, id).Scan(&raw); err != nil {
		return err
	}

	doc := &domain.RosterDocument{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return err
	}
	if doc.Days == nil {
		doc.Days = make(map[int]*domain.DayRecord)
	}

	doc.Days[day] = domain.ApplyDayPatch(doc.Days[day], patch)

	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE rosters SET data = $2, version = version + 1, updated_at = NOW() WHERE id = $1`, id, data); err != nil {
		return err
	}

	return tx.Commit()
}
