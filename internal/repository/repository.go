package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sdh-lhota/duty-roster/backend/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

// EnsureSchema creates the two tables the service owns. Roster months live
// as one jsonb document per row; the version column only tracks write counts
// for observability, it is not used for optimistic locking.
func (r *Repository) EnsureSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS rosters (
			id         TEXT PRIMARY KEY,
			data       JSONB NOT NULL DEFAULT '{"days":{}}',
			version    BIGINT NOT NULL DEFAULT 0,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE TABLE IF NOT EXISTS audit_events (
			id          UUID PRIMARY KEY,
			event_type  TEXT NOT NULL,
			month_id    TEXT NOT NULL,
			day         INT NOT NULL,
			shift       TEXT NOT NULL DEFAULT '',
			slot        TEXT NOT NULL DEFAULT '',
			actor_uid   TEXT NOT NULL,
			actor_name  TEXT NOT NULL DEFAULT '',
			subject_uid TEXT NOT NULL DEFAULT '',
			occurred_at TIMESTAMPTZ NOT NULL
		);
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query); err != nil {
		return err
	}

	return nil
}
