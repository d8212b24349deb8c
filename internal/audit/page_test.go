package audit

import (
	"encoding/base64"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

func TestPositionRoundTrip(t *testing.T) {
	want := Position{
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 589000, time.UTC),
		ID:        uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
	}

	got, err := ParsePosition(want.String())
	if err != nil {
		t.Fatalf("ParsePosition: %v", err)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestParsePositionInvalid(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	tests := map[string]string{
		"empty":         "",
		"not base64":    "!!!",
		"no separator":  enc("2026-03-14T09:26:53Z"),
		"bad timestamp": enc("yesterday|550e8400-e29b-41d4-a716-446655440000"),
		"bad id":        enc("2026-03-14T09:26:53Z|not-a-uuid"),
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParsePosition(token); err == nil {
				t.Errorf("ParsePosition(%q) succeeded", token)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	cursor := Position{CreatedAt: time.Now().UTC(), ID: uuid.New()}.String()

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantBefore bool
		wantErr    bool
	}{
		{name: "defaults", wantLimit: httpserver.DefaultPageSize},
		{name: "custom limit", query: "limit=50", wantLimit: 50},
		{name: "limit capped", query: "limit=500", wantLimit: httpserver.MaxPageSize},
		{name: "with cursor", query: "after=" + cursor, wantLimit: httpserver.DefaultPageSize, wantBefore: true},
		{name: "negative limit", query: "limit=-1", wantErr: true},
		{name: "bad cursor", query: "after=abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseQuery(httptest.NewRequest("GET", "/?"+tt.query, nil))
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseQuery error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if q.Limit != tt.wantLimit || (q.Before != nil) != tt.wantBefore {
				t.Errorf("got limit=%d before=%v", q.Limit, q.Before)
			}
		})
	}
}

func TestNewPageWithoutMore(t *testing.T) {
	page := newPage(nil, 10)
	if page.Items == nil || page.HasMore || page.NextCursor != "" {
		t.Errorf("empty page = %+v", page)
	}
}
