package session

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Signups close at 14:30 on the day of the session; after that the
// following Saturday becomes the target.
const (
	cutoffHour   = 14
	cutoffMinute = 30
)

// Session represents one Saturday session slot on the organiser page.
type Session struct {
	Date        time.Time `json:"date"`
	Number      int       `json:"number,omitempty"`
	Description string    `json:"description"`
	Signups     int       `json:"signups"`
	MaxSignups  int       `json:"max_signups"`
	SignupLink  string    `json:"signup_link,omitempty"`
}

// DateKey returns the session date formatted as YYYY-MM-DD, used as the
// alert-state key.
func (s *Session) DateKey() string {
	return s.Date.Format("2006-01-02")
}

// TargetSaturday returns the Saturday whose session should be checked.
// On a Saturday before the signup cutoff the target is that same day;
// after the cutoff it rolls over to the following week. On any other
// weekday it is the next upcoming Saturday.
func TargetSaturday(now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	if now.Weekday() == time.Saturday {
		if now.Hour() < cutoffHour || (now.Hour() == cutoffHour && now.Minute() < cutoffMinute) {
			return today
		}
		return today.AddDate(0, 0, 7)
	}

	days := int(time.Saturday - now.Weekday())
	if days <= 0 {
		days += 7
	}
	return today.AddDate(0, 0, days)
}

// Number derives the sequential session number for a target date from a
// known reference date/number pair. Sessions run weekly, so the number
// advances by one per elapsed week.
func Number(target, referenceDate time.Time, referenceNumber int) int {
	weeks := int(target.Sub(referenceDate).Hours()/24) / 7
	return referenceNumber + weeks
}

// SignupLink builds the signup URL for a session number.
func SignupLink(baseURL string, number int) string {
	return fmt.Sprintf("%s%d/", baseURL, number)
}

var headingDatePattern = regexp.MustCompile(`(?i)Sat\s+(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// ParseHeadingDate extracts a session date from heading text like
// "Sat 21 Feb". The page never prints a year, so the current year is
// assumed. Returns time.Time{} (zero value) if no valid date is found.
func ParseHeadingDate(text string, now time.Time) time.Time {
	matches := headingDatePattern.FindStringSubmatch(text)
	if matches == nil {
		return time.Time{}
	}

	day, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}
	}
	month := months[strings.ToLower(matches[2])]

	t := time.Date(now.Year(), month, day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Feb 30 becomes Mar 2);
	// treat those as unparseable.
	if t.Day() != day || t.Month() != month {
		return time.Time{}
	}
	return t
}
