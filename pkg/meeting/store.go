package meeting

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/db"
)

// meetingColumns renders date and time as text so they round-trip as the
// strings the API exchanges.
const meetingColumns = `id, name, email, phone, meeting_type, purpose, notes,
	to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI'), status, admin_notes,
	confirmed_at, completed_at, cancelled_at, created_at, updated_at`

// Store provides database operations for meetings.
type Store struct {
	dbtx db.DBTX
}

// NewStore creates a meeting Store.
func NewStore(dbtx db.DBTX) *Store {
	return &Store{dbtx: dbtx}
}

func scanMeeting(row pgx.Row) (Meeting, error) {
	var m Meeting
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.MeetingType, &m.Purpose, &m.Notes,
		&m.Date, &m.Time, &m.Status, &m.AdminNotes,
		&m.ConfirmedAt, &m.CompletedAt, &m.CancelledAt, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func scanMeetings(rows pgx.Rows) ([]Meeting, error) {
	defer rows.Close()
	var items []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning meeting row: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating meeting rows: %w", err)
	}
	return items, nil
}

// Create inserts a new pending meeting.
func (s *Store) Create(ctx context.Context, req CreateRequest) (Meeting, error) {
	row := s.dbtx.QueryRow(ctx,
		`INSERT INTO meetings (name, email, phone, meeting_type, purpose, notes, date, time)
		VALUES ($1, $2, $3, $4, $5, $6, $7::text::date, $8::text::time)
		RETURNING `+meetingColumns,
		req.Name, req.Email, req.Phone, req.MeetingType, req.Purpose, req.Notes, req.Date, req.Time,
	)
	return scanMeeting(row)
}

// Get returns a meeting by ID.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Meeting, error) {
	row := s.dbtx.QueryRow(ctx, `SELECT `+meetingColumns+` FROM meetings WHERE id = $1`, id)
	return scanMeeting(row)
}

// List returns every meeting, soonest date last.
func (s *Store) List(ctx context.Context) ([]Meeting, error) {
	rows, err := s.dbtx.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings ORDER BY date DESC, time DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing meetings: %w", err)
	}
	return scanMeetings(rows)
}

// ListBetween returns meetings dated within [from, to]. An empty bound is open.
func (s *Store) ListBetween(ctx context.Context, from, to string) ([]Meeting, error) {
	rows, err := s.dbtx.Query(ctx,
		`SELECT `+meetingColumns+` FROM meetings
		WHERE ($1::text = '' OR date >= $1::text::date)
		  AND ($2::text = '' OR date <= $2::text::date)
		ORDER BY date, time`,
		from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("listing meetings between %q and %q: %w", from, to, err)
	}
	return scanMeetings(rows)
}

// UpdateStatus sets the status and, when given, the admin notes. The
// timestamp of a status is stamped the first time the meeting enters it.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, adminNotes *string) (Meeting, error) {
	row := s.dbtx.QueryRow(ctx,
		`UPDATE meetings SET
			status = $2,
			admin_notes = COALESCE($3, admin_notes),
			confirmed_at = CASE WHEN $2 = 'confirmed' AND confirmed_at IS NULL THEN now() ELSE confirmed_at END,
			completed_at = CASE WHEN $2 = 'completed' AND completed_at IS NULL THEN now() ELSE completed_at END,
			cancelled_at = CASE WHEN $2 = 'cancelled' AND cancelled_at IS NULL THEN now() ELSE cancelled_at END,
			updated_at = now()
		WHERE id = $1
		RETURNING `+meetingColumns,
		id, string(status), adminNotes,
	)
	return scanMeeting(row)
}

// Delete removes a meeting. It returns pgx.ErrNoRows when none matched.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.dbtx.Exec(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting meeting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
