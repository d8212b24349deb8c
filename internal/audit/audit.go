package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/auth"
)

// Entry is a single audit log entry to be written.
type Entry struct {
	ActorID    uuid.UUID
	ActorEmail string
	Action     string
	Resource   string
	// ResourceID is a record UUID or a natural key such as a settings section.
	ResourceID string
	Detail     json.RawMessage
	IPAddress  *netip.Addr
	UserAgent  *string
}

// Sink persists batches of audit entries.
type Sink interface {
	Insert(ctx context.Context, entries []Entry) error
}

// Writer batches audit entries on a buffered channel and hands them to a
// Sink from a single background goroutine, so request handlers never wait
// on the database.
type Writer struct {
	sink    Sink
	logger  *slog.Logger
	entries chan Entry
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// Buffering and flush policy.
const (
	bufferSize    = 256
	flushBatch    = 32
	flushInterval = 2 * time.Second
)

// NewWriter returns an idle Writer; entries queue up until Start is called.
func NewWriter(sink Sink, logger *slog.Logger) *Writer {
	return &Writer{sink: sink, logger: logger, entries: make(chan Entry, bufferSize)}
}

// Start launches the flush loop. Cancelling ctx flushes what is buffered and
// stops the loop.
func (w *Writer) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		w.run(ctx)
	}()
}

// Close stops accepting entries and blocks until the last batch is written.
// Entries queued after the flush loop stopped on a cancelled context are
// written here too. Close is idempotent.
func (w *Writer) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	close(w.entries)
	w.mu.Unlock()

	w.wg.Wait()
	w.flush(w.buffered())
}

// Log queues entry without blocking. When the buffer is full the entry is
// dropped with a warning. A nil Writer discards entries.
func (w *Writer) Log(entry Entry) {
	if w == nil {
		return
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.logger.Warn("audit writer closed, dropping entry",
			"action", entry.Action, "resource", entry.Resource)
		return
	}
	select {
	case w.entries <- entry:
	default:
		w.logger.Warn("audit log buffer full, dropping entry",
			"action", entry.Action, "resource", entry.Resource)
	}
}

// LogFromRequest extracts the actor, IP and user agent from the request and
// enqueues the entry. A nil Writer is a no-op.
func (w *Writer) LogFromRequest(r *http.Request, action, resource, resourceID string, detail any) {
	if w == nil {
		return
	}

	entry := Entry{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}

	if detail != nil {
		raw, err := json.Marshal(detail)
		if err != nil {
			w.logger.Warn("encoding audit detail", "error", err, "action", action, "resource", resource)
		} else {
			entry.Detail = raw
		}
	}

	if id := auth.FromContext(r.Context()); id != nil {
		entry.ActorID = id.UserID
		entry.ActorEmail = id.Email
	}

	ip := clientIP(r)
	if ip.IsValid() {
		entry.IPAddress = &ip
	}

	if ua := r.Header.Get("User-Agent"); ua != "" {
		entry.UserAgent = &ua
	}

	w.Log(entry)
}

func (w *Writer) run(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]Entry, 0, flushBatch)
	for {
		select {
		case entry, ok := <-w.entries:
			if !ok {
				w.flush(batch)
				return
			}
			batch = append(batch, entry)
			if len(batch) < flushBatch {
				continue
			}
		case <-ticker.C:
		case <-ctx.Done():
			w.flush(append(batch, w.buffered()...))
			return
		}
		w.flush(batch)
		batch = batch[:0]
	}
}

// buffered drains the channel without blocking.
func (w *Writer) buffered() []Entry {
	var out []Entry
	for {
		select {
		case entry, ok := <-w.entries:
			if !ok {
				return out
			}
			out = append(out, entry)
		default:
			return out
		}
	}
}

func (w *Writer) flush(entries []Entry) {
	if len(entries) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := w.sink.Insert(ctx, slices.Clone(entries)); err != nil {
		w.logger.Error("writing audit log entries", "error", err, "count", len(entries))
	}
}

// clientIP returns the first parseable address from X-Forwarded-For (its
// leftmost hop), X-Real-IP and finally RemoteAddr.
func clientIP(r *http.Request) netip.Addr {
	forwarded, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	for _, candidate := range []string{forwarded, r.Header.Get("X-Real-IP")} {
		if addr, err := netip.ParseAddr(strings.TrimSpace(candidate)); err == nil {
			return addr
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	addr, _ := netip.ParseAddr(host)
	return addr
}
