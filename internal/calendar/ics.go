package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

// Sessions tip off at 14:30 and run for two hours.
const (
	sessionStartHour   = 14
	sessionStartMinute = 30
	sessionDuration    = 2 * time.Hour
)

// GenerateICS generates an iCalendar (.ics) entry for a Saturday session,
// suitable for attaching to the alert email.
func GenerateICS(s *session.Session) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//PlayFit Monitor//playfit-monitor//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:playfit-session-%d-%s@playfit\r\n", s.Number, s.DateKey()))

	now := time.Now().UTC()
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	start := time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		sessionStartHour, sessionStartMinute, 0, 0, time.UTC)
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(sessionDuration))))

	summary := fmt.Sprintf("PlayFit Session %d", s.Number)
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	description := s.Description
	if s.SignupLink != "" {
		description = fmt.Sprintf("%s\n\nSign up: %s", description, s.SignupLink)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if s.SignupLink != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", s.SignupLink))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
