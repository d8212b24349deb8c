package meeting

import (
	"fmt"
	"strings"
	"time"
)

// eventDuration is how long a meeting block is drawn on the calendar.
const eventDuration = time.Hour

const floatingLayout = "2006-01-02T15:04:05"

// Event is one meeting on the admin calendar. Start and End are wall-clock
// times without a zone.
type Event struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Color  string  `json:"color"`
	Status Status  `json:"status"`
	Record Meeting `json:"meeting"`
}

// Events builds one calendar event per meeting. Meetings whose date or time
// cannot be parsed are skipped.
func Events(meetings []Meeting) []Event {
	events := make([]Event, 0, len(meetings))
	for _, m := range meetings {
		start, err := m.StartsAt()
		if err != nil {
			continue
		}
		events = append(events, Event{
			ID:     m.ID.String(),
			Title:  fmt.Sprintf("%s (%s)", m.Name, m.MeetingType),
			Start:  start.Format(floatingLayout),
			End:    start.Add(eventDuration).Format(floatingLayout),
			Color:  m.Status.Color(),
			Status: m.Status,
			Record: m,
		})
	}
	return events
}

// generateICS renders meetings as an iCalendar feed with floating local times.
func generateICS(meetings []Meeting, now time.Time) string {
	var b strings.Builder

	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//E-Club//Meetings//EN\r\n")
	b.WriteString("X-WR-CALNAME:E-Club Meetings\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")
	b.WriteString("METHOD:PUBLISH\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, m := range meetings {
		start, err := m.StartsAt()
		if err != nil {
			continue
		}
		b.WriteString("BEGIN:VEVENT\r\n")
		b.WriteString(fmt.Sprintf("UID:%s@eclub\r\n", m.ID))
		b.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))
		b.WriteString(fmt.Sprintf("DTSTART:%s\r\n", start.Format("20060102T150405")))
		b.WriteString(fmt.Sprintf("DTEND:%s\r\n", start.Add(eventDuration).Format("20060102T150405")))
		b.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeText(fmt.Sprintf("%s meeting: %s", m.MeetingType, m.Name))))
		b.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeText(fmt.Sprintf("Purpose: %s\nPhone: %s\nEmail: %s", m.Purpose, m.Phone, m.Email))))
		b.WriteString(fmt.Sprintf("STATUS:%s\r\n", icsStatus(m.Status)))
		b.WriteString("END:VEVENT\r\n")
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String()
}

func icsStatus(s Status) string {
	switch s {
	case StatusConfirmed, StatusCompleted:
		return "CONFIRMED"
	case StatusCancelled:
		return "CANCELLED"
	default:
		return "TENTATIVE"
	}
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)

func escapeText(s string) string {
	return icsEscaper.Replace(s)
}
