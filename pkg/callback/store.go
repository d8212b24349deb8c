package callback

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/db"
)

const requestColumns = `id, name, phone, preferred_time, reason, notes, status, admin_notes,
	called_at, completed_at, created_at, updated_at`

// Store provides database operations for callback requests.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a callback Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

func scanRequest(row pgx.Row) (Request, error) {
	var r Request
	err := row.Scan(
		&r.ID, &r.Name, &r.Phone, &r.PreferredTime, &r.Reason, &r.Notes, &r.Status,
		&r.AdminNotes, &r.CalledAt, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

// Create inserts a new pending request.
func (s *Store) Create(ctx context.Context, req CreateRequest) (Request, error) {
	row := s.dbtx.QueryRow(ctx,
		`INSERT INTO callback_requests (name, phone, preferred_time, reason, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+requestColumns,
		req.Name, req.Phone, req.PreferredTime, req.Reason, req.Notes,
	)
	return scanRequest(row)
}

// Get returns a request by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Request, error) {
	row := s.dbtx.QueryRow(ctx, `SELECT `+requestColumns+` FROM callback_requests WHERE id = $1`, id)
	return scanRequest(row)
}

// List returns every request, newest first.
func (s *Store) List(ctx context.Context) ([]Request, error) {
	rows, err := s.dbtx.Query(ctx,
		`SELECT `+requestColumns+` FROM callback_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing callback requests: %w", err)
	}
	defer rows.Close()

	var items []Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning callback request row: %w", err)
		}
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating callback request rows: %w", err)
	}
	return items, nil
}

// UpdateStatus sets the status and, when given, the admin notes. called_at
// and completed_at are stamped the first time the request enters that status.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes *string) (Request, error) {
	row := s.dbtx.QueryRow(ctx,
		`UPDATE callback_requests SET
			status = $2,
			admin_notes = COALESCE($3, admin_notes),
			called_at = CASE WHEN $2 = 'called' AND called_at IS NULL THEN now() ELSE called_at END,
			completed_at = CASE WHEN $2 = 'completed' AND completed_at IS NULL THEN now() ELSE completed_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+requestColumns,
		id, string(status), adminNotes,
	)
	return scanRequest(row)
}

// Delete removes a request. It returns pgx.ErrNoRows when none matched.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.dbtx.Exec(ctx, `DELETE FROM callback_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting callback request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
