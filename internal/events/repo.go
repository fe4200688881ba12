package events

import (
	"context"
	"database/sql"
)

// Stored is an event with its log position.
type Stored struct {
	Seq    int64
	SiteID string
	Event
}

type EventRepo struct {
	db     *sql.DB
	siteID string
}

func NewEventRepo(db *sql.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID}
}

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (event_id, site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		e.ID, r.siteID, e.Type, e.Key, string(e.Data), e.CreatedAt)
	return err
}

func (r *EventRepo) Emit(ctx context.Context, e Event) error { return r.Append(ctx, e) }

// Since lists events after seq in log order.
func (r *EventRepo) Since(ctx context.Context, seq int64, limit int) ([]Stored, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT seq, event_id, site_id, typ, key, data, created_at
		 FROM event_log WHERE seq > $1 ORDER BY seq LIMIT $2`, seq, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stored
	for rows.Next() {
		var s Stored
		var data string
		if err := rows.Scan(&s.Seq, &s.ID, &s.SiteID, &s.Type, &s.Key, &data, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.Data = []byte(data)
		out = append(out, s)
	}
	return out, rows.Err()
}
