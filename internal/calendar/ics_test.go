package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

func TestGenerateICS(t *testing.T) {
	s := &session.Session{
		Date:        time.Date(2026, 2, 21, 0, 0, 0, 0, time.UTC),
		Number:      59,
		Description: "Sat 21 Feb - PlayFit Basketball, Main Hall - BOOKINGS: 13 / 20",
		Signups:     13,
		MaxSignups:  20,
		SignupLink:  "https://playfit.example.com/signup/session-59/",
	}

	ics := GenerateICS(s)

	wantFragments := []string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:playfit-session-59-2026-02-21@playfit",
		"DTSTART:20260221T143000Z",
		"DTEND:20260221T163000Z",
		"SUMMARY:PlayFit Session 59",
		"URL:https://playfit.example.com/signup/session-59/",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	for _, frag := range wantFragments {
		if !strings.Contains(ics, frag) {
			t.Errorf("ICS output missing %q", frag)
		}
	}

	// Commas in the description must be escaped per RFC 5545.
	if !strings.Contains(ics, "PlayFit Basketball\\, Main Hall") {
		t.Error("ICS description commas are not escaped")
	}

	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("ICS output should end with CRLF-terminated END:VCALENDAR")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a,b", "a\\,b"},
		{"a;b", "a\\;b"},
		{"a\nb", "a\\nb"},
		{"a\\b", "a\\\\b"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		if got := escapeICS(tt.in); got != tt.want {
			t.Errorf("escapeICS(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
