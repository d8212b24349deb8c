// Package notify posts new meeting bookings and callback requests to a staff
// Slack channel and handles the status buttons on those messages.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	goslack "github.com/slack-go/slack"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

// Notifier sends staff notifications to Slack.
type Notifier struct {
	client  *goslack.Client
	channel string
	logger  *slog.Logger
}

// NewNotifier creates a Slack Notifier. If botToken is empty, the notifier
// will be a noop (logging only).
func NewNotifier(botToken, channel string, logger *slog.Logger, opts ...goslack.Option) *Notifier {
	var client *goslack.Client
	if botToken != "" {
		client = goslack.New(botToken, opts...)
	}
	return &Notifier{
		client:  client,
		channel: channel,
		logger:  logger,
	}
}

// IsEnabled returns true if the notifier has a valid Slack client.
func (n *Notifier) IsEnabled() bool {
	return n.client != nil && n.channel != ""
}

func (n *Notifier) post(ctx context.Context, kind, fallback string, blocks []goslack.Block) error {
	if !n.IsEnabled() {
		telemetry.NotificationsSentTotal.WithLabelValues("skipped").Inc()
		n.logger.Debug("slack notifier disabled, skipping", "kind", kind)
		return nil
	}

	channelID, ts, err := n.client.PostMessageContext(ctx, n.channel,
		goslack.MsgOptionBlocks(blocks...),
		goslack.MsgOptionText(fallback, false),
	)
	if err != nil {
		telemetry.NotificationsSentTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("posting %s to slack: %w", kind, err)
	}

	telemetry.NotificationsSentTotal.WithLabelValues("sent").Inc()
	n.logger.Info("posted to slack", "kind", kind, "channel", channelID, "ts", ts)
	return nil
}

// MeetingBooked announces a new meeting.
func (n *Notifier) MeetingBooked(ctx context.Context, m meeting.Meeting) error {
	return n.post(ctx, "meeting", fmt.Sprintf("New %s meeting with %s on %s %s", m.MeetingType, m.Name, m.Date, m.Time),
		MeetingBookedBlocks(m))
}

// CallbackRequested announces a new callback request.
func (n *Notifier) CallbackRequested(ctx context.Context, r callback.Request) error {
	return n.post(ctx, "callback", fmt.Sprintf("Callback requested by %s (%s)", r.Name, r.Phone),
		CallbackRequestedBlocks(r))
}

// PostThreadReply posts a reply in a thread.
func (n *Notifier) PostThreadReply(ctx context.Context, channelID, threadTS, text string) error {
	if !n.IsEnabled() {
		return nil
	}

	_, _, err := n.client.PostMessageContext(ctx, channelID,
		goslack.MsgOptionText(text, false),
		goslack.MsgOptionTS(threadTS),
	)
	if err != nil {
		return fmt.Errorf("posting thread reply to slack: %w", err)
	}
	return nil
}

// PostEphemeral posts a message visible only to userID.
func (n *Notifier) PostEphemeral(ctx context.Context, channelID, userID, text string) error {
	if !n.IsEnabled() {
		return nil
	}

	_, err := n.client.PostEphemeralContext(ctx, channelID, userID, goslack.MsgOptionText(text, false))
	if err != nil {
		return fmt.Errorf("posting ephemeral message: %w", err)
	}
	return nil
}
