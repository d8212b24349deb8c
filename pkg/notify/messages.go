package notify

import (
	"fmt"

	goslack "github.com/slack-go/slack"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/callback"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/meeting"
)

// Block action IDs handled by the interactions endpoint.
const (
	ActionConfirmMeeting = "confirm_meeting"
	ActionCancelMeeting  = "cancel_meeting"
	ActionMarkCalled     = "mark_called"
	ActionMarkNoAnswer   = "mark_no_answer"
)

// MeetingTypeEmoji returns the emoji prefix for a meeting type.
func MeetingTypeEmoji(t meeting.Type) string {
	switch t {
	case meeting.TypeShowroom:
		return "🏬"
	case meeting.TypeVideo:
		return "🎥"
	default:
		return "📅"
	}
}

func field(label, value string) *goslack.TextBlockObject {
	return goslack.NewTextBlockObject(goslack.MarkdownType, fmt.Sprintf("*%s:* %s", label, value), false, false)
}

func button(actionID, value, label string) *goslack.ButtonBlockElement {
	return goslack.NewButtonBlockElement(actionID, value,
		goslack.NewTextBlockObject(goslack.PlainTextType, label, true, false))
}

// MeetingBookedBlocks builds Block Kit blocks announcing a new booking.
func MeetingBookedBlocks(m meeting.Meeting) []goslack.Block {
	header := goslack.NewHeaderBlock(
		goslack.NewTextBlockObject(goslack.PlainTextType,
			fmt.Sprintf("%s New %s meeting: %s", MeetingTypeEmoji(m.MeetingType), m.MeetingType, truncate(m.Name, 80)), true, false),
	)

	fields := []*goslack.TextBlockObject{
		field("When", m.Date+" "+m.Time),
		field("Purpose", truncate(m.Purpose, 200)),
		field("Phone", m.Phone),
		field("Email", m.Email),
	}
	blocks := []goslack.Block{header, goslack.NewSectionBlock(nil, fields, nil)}

	if m.Notes != nil && *m.Notes != "" {
		blocks = append(blocks, goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, "📝 "+truncate(*m.Notes, 500), false, false),
			nil, nil,
		))
	}

	confirm := button(ActionConfirmMeeting, m.ID.String(), "✅ Confirm")
	confirm.Style = goslack.StylePrimary
	cancel := button(ActionCancelMeeting, m.ID.String(), "Cancel")
	cancel.Style = goslack.StyleDanger
	blocks = append(blocks, goslack.NewActionBlock("meeting_actions", confirm, cancel))

	return blocks
}

// CallbackRequestedBlocks builds Block Kit blocks announcing a callback request.
func CallbackRequestedBlocks(r callback.Request) []goslack.Block {
	header := goslack.NewHeaderBlock(
		goslack.NewTextBlockObject(goslack.PlainTextType,
			fmt.Sprintf("📞 Callback requested: %s", truncate(r.Name, 80)), true, false),
	)

	fields := []*goslack.TextBlockObject{
		field("Phone", r.Phone),
		field("Preferred time", r.PreferredTime),
		field("Reason", truncate(r.Reason, 200)),
	}
	blocks := []goslack.Block{header, goslack.NewSectionBlock(nil, fields, nil)}

	if r.Notes != nil && *r.Notes != "" {
		blocks = append(blocks, goslack.NewSectionBlock(
			goslack.NewTextBlockObject(goslack.MarkdownType, "📝 "+truncate(*r.Notes, 500), false, false),
			nil, nil,
		))
	}

	called := button(ActionMarkCalled, r.ID.String(), "☎️ Called")
	called.Style = goslack.StylePrimary
	blocks = append(blocks, goslack.NewActionBlock("callback_actions",
		called, button(ActionMarkNoAnswer, r.ID.String(), "No answer")))

	return blocks
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
