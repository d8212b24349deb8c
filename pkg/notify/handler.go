package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	goslack "github.com/slack-go/slack"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/audit"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

// MeetingUpdater changes meeting status.
type MeetingUpdater interface {
	Update(ctx context.Context, id uuid.UUID, req meeting.UpdateRequest) (meeting.Meeting, error)
}

// CallbackUpdater changes callback request status.
type CallbackUpdater interface {
	Update(ctx context.Context, id uuid.UUID, req callback.UpdateRequest) (callback.Request, error)
}

// Handler receives Slack interaction callbacks for the buttons on staff
// notifications.
type Handler struct {
	notifier      *Notifier
	meetings      MeetingUpdater
	callbacks     CallbackUpdater
	audit         *audit.Writer
	logger        *slog.Logger
	signingSecret string
	devMode       bool
}

// NewHandler creates a Slack interactions Handler. Requests are verified
// against signingSecret; an empty secret is accepted only in devMode.
func NewHandler(notifier *Notifier, meetings MeetingUpdater, callbacks CallbackUpdater, audit *audit.Writer, logger *slog.Logger, signingSecret string, devMode bool) *Handler {
	return &Handler{
		notifier:      notifier,
		meetings:      meetings,
		callbacks:     callbacks,
		audit:         audit,
		logger:        logger,
		signingSecret: signingSecret,
		devMode:       devMode,
	}
}

// Routes returns a chi.Router with Slack webhook routes.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(VerifyMiddleware(h.signingSecret, h.devMode))
	r.Post("/interactions", h.handleInteractions)
	return r
}

func (h *Handler) handleInteractions(w http.ResponseWriter, r *http.Request) {
	payload := r.FormValue("payload")
	if payload == "" {
		http.Error(w, "missing payload", http.StatusBadRequest)
		return
	}

	var ic goslack.InteractionCallback
	if err := json.Unmarshal([]byte(payload), &ic); err != nil {
		h.logger.Error("parsing interaction callback", "error", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	if ic.Type != goslack.InteractionTypeBlockActions {
		h.logger.Debug("unhandled interaction type", "type", ic.Type)
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, action := range ic.ActionCallback.BlockActions {
		h.handleAction(r.Context(), ic, action.ActionID, action.Value)
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) handleAction(ctx context.Context, ic goslack.InteractionCallback, actionID, value string) {
	id, err := uuid.Parse(value)
	if err != nil {
		h.logger.Error("invalid record id in slack action", "action", actionID, "value", value)
		return
	}

	var (
		resource, status, label string
		updateErr               error
	)
	switch actionID {
	case ActionConfirmMeeting, ActionCancelMeeting:
		resource = "meeting"
		status, label = string(meeting.StatusConfirmed), "confirmed"
		if actionID == ActionCancelMeeting {
			status, label = string(meeting.StatusCancelled), "cancelled"
		}
		_, updateErr = h.meetings.Update(ctx, id, meeting.UpdateRequest{Status: status})
	case ActionMarkCalled, ActionMarkNoAnswer:
		resource = "callback_request"
		status, label = string(callback.StatusCalled), "marked as called"
		if actionID == ActionMarkNoAnswer {
			status, label = string(callback.StatusNoAnswer), "marked as no answer"
		}
		_, updateErr = h.callbacks.Update(ctx, id, callback.UpdateRequest{Status: status})
	default:
		h.logger.Debug("unhandled slack action", "action", actionID)
		return
	}

	if updateErr != nil {
		h.logger.Error("updating status from slack", "error", updateErr, "resource", resource, "id", id)
		_ = h.notifier.PostEphemeral(ctx, ic.Channel.ID, ic.User.ID, "Could not update the "+resourceNoun(resource)+".")
		return
	}

	if h.audit != nil {
		detail, _ := json.Marshal(map[string]string{"status": status, "via": "slack"})
		h.audit.Log(audit.Entry{
			ActorEmail: "slack:" + ic.User.ID,
			Action:     "update_status",
			Resource:   resource,
			ResourceID: id.String(),
			Detail:     detail,
		})
	}

	if ic.Container.MessageTs != "" {
		_ = h.notifier.PostThreadReply(ctx, ic.Channel.ID, ic.Container.MessageTs,
			fmt.Sprintf("✅ %s %s by <@%s>", capitalize(resourceNoun(resource)), label, ic.User.ID))
	}

	h.logger.Info("status updated via slack", "resource", resource, "id", id, "status", status, "user", ic.User.ID)
}

func resourceNoun(resource string) string {
	if resource == "callback_request" {
		return "callback request"
	}
	return resource
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
