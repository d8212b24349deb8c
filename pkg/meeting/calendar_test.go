package meeting

import (
	"strings"
	"testing"
	"time"
)

func TestEvents(t *testing.T) {
	meetings := sampleMeetings(4)
	meetings[1].Time = "25:99"

	events := Events(meetings)
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	e := events[0]
	if e.Start != "2026-11-02T10:30:00" || e.End != "2026-11-02T11:30:00" {
		t.Errorf("start/end = %s/%s", e.Start, e.End)
	}
	if e.Color != StatusPending.Color() || e.ID != meetings[0].ID.String() {
		t.Errorf("event = %+v", e)
	}
	if events[1].Color != StatusCompleted.Color() {
		t.Errorf("second colour = %s", events[1].Color)
	}
}

func TestGenerateICS(t *testing.T) {
	meetings := sampleMeetings(3)
	meetings[0].Purpose = "Sofa, dining set; delivery"
	now := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

	ics := generateICS(meetings, now)

	if n := strings.Count(ics, "BEGIN:VEVENT"); n != 3 {
		t.Errorf("VEVENT count = %d, want 3", n)
	}
	for _, want := range []string{
		"BEGIN:VCALENDAR\r\n",
		"DTSTART:20261102T103000\r\n",
		"DTEND:20261102T113000\r\n",
		"DTSTAMP:20261001T080000Z\r\n",
		`Purpose: Sofa\, dining set\; delivery\nPhone:`,
		"STATUS:TENTATIVE\r\n",
		"STATUS:CONFIRMED\r\n",
		"END:VCALENDAR\r\n",
	} {
		if !strings.Contains(ics, want) {
			t.Errorf("ics missing %q", want)
		}
	}
}

func TestGenerateICSEmpty(t *testing.T) {
	ics := generateICS(nil, time.Now())
	if strings.Contains(ics, "VEVENT") {
		t.Error("empty feed contains events")
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("feed not terminated")
	}
}
