package notify

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

type fakeMeetings struct {
	updates []meeting.UpdateRequest
	err     error
}

func (f *fakeMeetings) Update(_ context.Context, id uuid.UUID, req meeting.UpdateRequest) (meeting.Meeting, error) {
	f.updates = append(f.updates, req)
	return meeting.Meeting{ID: id, Status: meeting.Status(req.Status)}, f.err
}

type fakeCallbacks struct {
	updates []callback.UpdateRequest
}

func (f *fakeCallbacks) Update(_ context.Context, id uuid.UUID, req callback.UpdateRequest) (callback.Request, error) {
	f.updates = append(f.updates, req)
	return callback.Request{ID: id, Status: callback.Status(req.Status)}, nil
}

func interactionBody(actionID, value string) string {
	payload := fmt.Sprintf(`{"type":"block_actions","user":{"id":"U42"},"channel":{"id":"C123"},`+
		`"container":{"type":"message","message_ts":"1700000000.000100"},`+
		`"actions":[{"type":"button","block_id":"meeting_actions","action_id":%q,"value":%q}]}`, actionID, value)
	return url.Values{"payload": {payload}}.Encode()
}

// newInteractionRouter builds the interactions router. An empty secret runs
// it in dev mode so requests pass unsigned.
func newInteractionRouter(t *testing.T, secret string, m MeetingUpdater, c CallbackUpdater) (http.Handler, *slackAPI) {
	t.Helper()
	return newInteractionRouterMode(t, secret, secret == "", m, c)
}

func newInteractionRouterMode(t *testing.T, secret string, devMode bool, m MeetingUpdater, c CallbackUpdater) (http.Handler, *slackAPI) {
	t.Helper()
	n, api := newTestNotifier(t)
	h := NewHandler(n, m, c, nil, discard(), secret, devMode)
	r := chi.NewRouter()
	r.Mount("/slack", h.Routes())
	return r, api
}

func postForm(router http.Handler, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/slack/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInteractions(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name         string
		actionID     string
		wantMeeting  string
		wantCallback string
	}{
		{"confirm meeting", ActionConfirmMeeting, "confirmed", ""},
		{"cancel meeting", ActionCancelMeeting, "cancelled", ""},
		{"mark called", ActionMarkCalled, "", "called"},
		{"mark no answer", ActionMarkNoAnswer, "", "no_answer"},
		{"unknown action", "other", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, c := &fakeMeetings{}, &fakeCallbacks{}
			router, api := newInteractionRouter(t, "", m, c)

			rec := postForm(router, interactionBody(tt.actionID, id.String()), nil)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			if tt.wantMeeting != "" && (len(m.updates) != 1 || m.updates[0].Status != tt.wantMeeting) {
				t.Errorf("meeting updates = %+v", m.updates)
			}
			if tt.wantCallback != "" && (len(c.updates) != 1 || c.updates[0].Status != tt.wantCallback) {
				t.Errorf("callback updates = %+v", c.updates)
			}
			wantReplies := 0
			if tt.wantMeeting != "" || tt.wantCallback != "" {
				wantReplies = 1
			}
			if len(api.calls) != wantReplies {
				t.Fatalf("slack calls = %d, want %d", len(api.calls), wantReplies)
			}
			if wantReplies == 1 && api.calls[0].Get("thread_ts") != "1700000000.000100" {
				t.Errorf("reply not threaded: %v", api.calls[0])
			}
		})
	}
}

func TestInteractionUpdateFailure(t *testing.T) {
	m := &fakeMeetings{err: errors.New("db down")}
	router, api := newInteractionRouter(t, "", m, &fakeCallbacks{})

	rec := postForm(router, interactionBody(ActionConfirmMeeting, uuid.NewString()), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(api.paths) != 1 || api.paths[0] != "/chat.postEphemeral" {
		t.Errorf("calls = %v, want one ephemeral", api.paths)
	}
}

func TestInteractionsBadRequests(t *testing.T) {
	router, _ := newInteractionRouter(t, "", &fakeMeetings{}, &fakeCallbacks{})

	if rec := postForm(router, "", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing payload = %d, want 400", rec.Code)
	}
	if rec := postForm(router, "payload=not-json", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad payload = %d, want 400", rec.Code)
	}
}

func sign(secret, ts, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte("v0:" + ts + ":" + body))
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestInteractionsSignature(t *testing.T) {
	const secret = "signing-secret"
	m := &fakeMeetings{}
	router, _ := newInteractionRouter(t, secret, m, &fakeCallbacks{})
	body := interactionBody(ActionConfirmMeeting, uuid.NewString())
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	rec := postForm(router, body, map[string]string{
		"X-Slack-Request-Timestamp": ts,
		"X-Slack-Signature":         sign("wrong", ts, body),
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad signature = %d, want 401", rec.Code)
	}
	if len(m.updates) != 0 {
		t.Error("update ran for an unsigned request")
	}

	rec = postForm(router, body, map[string]string{
		"X-Slack-Request-Timestamp": ts,
		"X-Slack-Signature":         sign(secret, ts, body),
	})
	if rec.Code != http.StatusOK || len(m.updates) != 1 {
		t.Errorf("signed request = %d, updates = %d", rec.Code, len(m.updates))
	}
}

func TestInteractionsRequireSecretOutsideDevMode(t *testing.T) {
	m, c := &fakeMeetings{}, &fakeCallbacks{}
	router, api := newInteractionRouterMode(t, "", false, m, c)

	for _, action := range []string{ActionConfirmMeeting, ActionMarkCalled} {
		rec := postForm(router, interactionBody(action, uuid.NewString()), nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want 401", action, rec.Code)
		}
	}
	if len(m.updates) != 0 || len(c.updates) != 0 {
		t.Errorf("updates ran without a signing secret: meetings=%d callbacks=%d", len(m.updates), len(c.updates))
	}
	if len(api.calls) != 0 {
		t.Errorf("slack calls = %d, want 0", len(api.calls))
	}
}
