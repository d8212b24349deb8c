package audit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http/httptest"
	"net/netip"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"go.uber.org/goleak"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/auth"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		xff     string
		realIP  string
		remote  string
		want    string
		invalid bool
	}{
		{name: "leftmost forwarded hop", xff: "203.0.113.50, 70.41.3.18", realIP: "198.51.100.23", want: "203.0.113.50"},
		{name: "real ip header", realIP: "198.51.100.23", want: "198.51.100.23"},
		{name: "garbage forwarded falls back", xff: "not-an-ip", realIP: "198.51.100.23", want: "198.51.100.23"},
		{name: "remote addr with port", remote: "192.0.2.1:54321", want: "192.0.2.1"},
		{name: "ipv6 remote addr", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "nothing usable", remote: "pipe", invalid: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				r.Header.Set("X-Real-IP", tt.realIP)
			}

			got := clientIP(r)
			if tt.invalid {
				if got.IsValid() {
					t.Errorf("clientIP = %v, want invalid", got)
				}
				return
			}
			if want := netip.MustParseAddr(tt.want); got != want {
				t.Errorf("clientIP = %v, want %v", got, want)
			}
		})
	}
}

func TestLog_DropsWhenFull(t *testing.T) {
	logger := slog.Default()
	w := NewWriter(nil, logger)
	// Don't start the background goroutine; nothing drains the channel.

	// Fill the buffer.
	for i := 0; i < bufferSize; i++ {
		w.Log(Entry{Action: "test", Resource: "test"})
	}

	// The next log should be dropped (non-blocking).
	w.Log(Entry{Action: "dropped", Resource: "dropped"})

	// Verify buffer is full.
	if len(w.entries) != bufferSize {
		t.Errorf("buffer size = %d, want %d", len(w.entries), bufferSize)
	}
}

func TestLogFromRequest_ExtractsFields(t *testing.T) {
	w := NewWriter(nil, slog.Default())

	r := httptest.NewRequest("PUT", "/api/v1/admin/meetings/abc", nil)
	r.Header.Set("User-Agent", "test-agent/1.0")
	r.Header.Set("X-Real-IP", "198.51.100.23")
	actor := uuid.New()
	r = r.WithContext(auth.NewContext(r.Context(), &auth.Identity{UserID: actor, Email: "admin@example.com", Role: auth.RoleAdmin}))

	w.LogFromRequest(r, "update", "meeting", "abc", map[string]string{"status": "confirmed"})

	entry := <-w.entries

	if entry.Action != "update" {
		t.Errorf("Action = %q, want %q", entry.Action, "update")
	}
	if entry.Resource != "meeting" || entry.ResourceID != "abc" {
		t.Errorf("Resource = %q/%q, want meeting/abc", entry.Resource, entry.ResourceID)
	}
	if entry.ActorID != actor || entry.ActorEmail != "admin@example.com" {
		t.Errorf("actor = %s %q", entry.ActorID, entry.ActorEmail)
	}
	if string(entry.Detail) != `{"status":"confirmed"}` {
		t.Errorf("Detail = %s", entry.Detail)
	}
	if entry.IPAddress == nil {
		t.Fatal("IPAddress should not be nil")
	}
	if *entry.IPAddress != netip.MustParseAddr("198.51.100.23") {
		t.Errorf("IPAddress = %v, want 198.51.100.23", *entry.IPAddress)
	}
	if entry.UserAgent == nil || *entry.UserAgent != "test-agent/1.0" {
		t.Errorf("UserAgent = %v, want test-agent/1.0", entry.UserAgent)
	}
}

func TestNilWriterDiscards(t *testing.T) {
	var w *Writer
	w.LogFromRequest(httptest.NewRequest("DELETE", "/", nil), "delete", "meeting", "x", nil)
	w.Log(Entry{Action: "update_status", Resource: "callback_request"})
}

type memorySink struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *memorySink) Insert(_ context.Context, entries []Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entries...)
	return nil
}

func TestWriter_CloseFlushesPending(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &memorySink{}
	w := NewWriter(sink, slog.Default())
	w.Start(context.Background())

	var want []string
	for i := 0; i < flushBatch+5; i++ {
		id := fmt.Sprintf("s-%d", i)
		want = append(want, id)
		w.Log(Entry{Action: "update", Resource: "settings", ResourceID: id})
	}
	w.Close()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var got []string
	for _, e := range sink.entries {
		got = append(got, e.ResourceID)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("flushed entries mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_StopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &memorySink{}
	w := NewWriter(sink, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	w.Log(Entry{Action: "delete", Resource: "meeting", ResourceID: "m-1"})
	cancel()
	w.wg.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.entries) != 1 {
		t.Errorf("flushed %d entries after cancel, want 1", len(sink.entries))
	}
}

func TestWriter_CloseFlushesEntriesQueuedAfterCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &memorySink{}
	w := NewWriter(sink, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)

	w.Log(Entry{Action: "update", Resource: "meeting", ResourceID: "m-1"})
	cancel()
	w.wg.Wait()

	// Handlers still finishing during shutdown.
	w.Log(Entry{Action: "update", Resource: "meeting", ResourceID: "m-2"})
	w.Log(Entry{Action: "delete", Resource: "callback_request", ResourceID: "c-1"})
	w.Close()
	w.Close()

	// Dropped without panicking once closed.
	w.Log(Entry{Action: "update", Resource: "settings", ResourceID: "late"})

	sink.mu.Lock()
	defer sink.mu.Unlock()
	var got []string
	for _, e := range sink.entries {
		got = append(got, e.ResourceID)
	}
	if diff := cmp.Diff([]string{"m-1", "m-2", "c-1"}, got); diff != "" {
		t.Errorf("flushed entries mismatch (-want +got):\n%s", diff)
	}
}
