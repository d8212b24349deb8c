package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is a persisted audit log row.
type Record struct {
	ID         uuid.UUID       `json:"id"`
	ActorID    *uuid.UUID      `json:"actor_id,omitempty"`
	ActorEmail string          `json:"actor_email"`
	Action     string          `json:"action"`
	Resource   string          `json:"resource"`
	ResourceID string          `json:"resource_id"`
	Detail     json.RawMessage `json:"detail,omitempty"`
	IPAddress  *string         `json:"ip_address,omitempty"`
	UserAgent  *string         `json:"user_agent,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Store reads and writes the audit_log table.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates an audit Store.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const insertEntrySQL = `INSERT INTO audit_log
	(actor_id, actor_email, action, resource, resource_id, detail, ip_address, user_agent)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Insert writes entries in a single pgx batch.
func (s *Store) Insert(ctx context.Context, entries []Entry) error {
	batch := &pgx.Batch{}
	for _, e := range entries {
		actor := pgtype.UUID{Bytes: e.ActorID, Valid: e.ActorID != uuid.Nil}
		batch.Queue(insertEntrySQL,
			actor, e.ActorEmail, e.Action, e.Resource, e.ResourceID, nullJSON(e.Detail), e.IPAddress, e.UserAgent)
	}

	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting audit entries: %w", err)
	}
	return nil
}

// List returns entries newest first, starting after the cursor position.
// It fetches limit+1 rows so the caller can detect another page.
func (s *Store) List(ctx context.Context, q Query) ([]Record, error) {
	var (
		rows pgx.Rows
		err  error
	)
	const cols = `id, actor_id, actor_email, action, resource, resource_id, detail, host(ip_address), user_agent, created_at`

	if q.Before != nil {
		rows, err = s.pool.Query(ctx,
			`SELECT `+cols+` FROM audit_log
			WHERE (created_at, id) < ($1, $2)
			ORDER BY created_at DESC, id DESC
			LIMIT $3`,
			q.Before.CreatedAt, q.Before.ID, q.Limit+1)
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT `+cols+` FROM audit_log
			ORDER BY created_at DESC, id DESC
			LIMIT $1`,
			q.Limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("listing audit log: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec   Record
			actor pgtype.UUID
		)
		if err := rows.Scan(&rec.ID, &actor, &rec.ActorEmail, &rec.Action, &rec.Resource,
			&rec.ResourceID, &rec.Detail, &rec.IPAddress, &rec.UserAgent, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning audit log row: %w", err)
		}
		if actor.Valid {
			id := uuid.UUID(actor.Bytes)
			rec.ActorID = &id
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func nullJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

