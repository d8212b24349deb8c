package audit

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

// Position marks where a page of the audit log ends. Entries are ordered by
// (created_at, id) descending, so the next page starts strictly below it.
type Position struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// String encodes p as an opaque URL-safe token.
func (p Position) String() string {
	raw := p.CreatedAt.UTC().Format(time.RFC3339Nano) + "|" + p.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// ParsePosition decodes a token produced by Position.String.
func ParsePosition(token string) (Position, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return Position{}, fmt.Errorf("decoding position: %w", err)
	}

	ts, id, ok := strings.Cut(string(raw), "|")
	if !ok {
		return Position{}, errors.New("position has no id")
	}
	at, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Position{}, fmt.Errorf("position timestamp: %w", err)
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return Position{}, fmt.Errorf("position id: %w", err)
	}
	return Position{CreatedAt: at, ID: uid}, nil
}

// Query selects one page of the audit log. A nil Before starts at the
// newest entry.
type Query struct {
	Before *Position
	Limit  int
}

// parseQuery reads "limit" and the "after" cursor from the request.
func parseQuery(r *http.Request) (Query, error) {
	q := Query{Limit: httpserver.DefaultPageSize}
	values := r.URL.Query()

	if s := values.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return q, errors.New("limit must be a positive integer")
		}
		q.Limit = min(n, httpserver.MaxPageSize)
	}

	if s := values.Get("after"); s != "" {
		pos, err := ParsePosition(s)
		if err != nil {
			return q, fmt.Errorf("invalid cursor: %w", err)
		}
		q.Before = &pos
	}
	return q, nil
}

// Page is one page of audit records, newest first.
type Page struct {
	Items      []Record `json:"items"`
	NextCursor string   `json:"next_cursor,omitempty"`
	HasMore    bool     `json:"has_more"`
}

// newPage trims records fetched with limit+1 rows and points the cursor at
// the last record kept.
func newPage(records []Record, limit int) Page {
	page := Page{Items: records}
	if len(records) > limit {
		page.Items = records[:limit]
		page.HasMore = true
		last := page.Items[limit-1]
		page.NextCursor = Position{CreatedAt: last.CreatedAt, ID: last.ID}.String()
	}
	if page.Items == nil {
		page.Items = []Record{}
	}
	return page
}
