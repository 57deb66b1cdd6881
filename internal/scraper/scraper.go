package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

const (
	// UserAgent mimics a desktop browser; the WordPress post-password
	// endpoint rejects obviously non-browser clients.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	Timeout   = 30 * time.Second
)

var (
	saturdayPattern = regexp.MustCompile(`(?i)\bSat(?:urday)?\b`)
	bookingsPattern = regexp.MustCompile(`BOOKINGS:\s*(\d+)\s*/\s*(\d+)`)
)

// Scraper fetches the password-protected organiser page and parses the
// Saturday session headings from it.
type Scraper struct {
	client   *http.Client
	url      string
	password string
}

// New creates a Scraper for the given organiser page URL and page password.
func New(organiserURL, password string) (*Scraper, error) {
	// The postpass flow sets an auth cookie that the page fetch must
	// carry, so the client needs a jar.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
			Jar:     jar,
		},
		url:      organiserURL,
		password: password,
	}, nil
}

// FetchSessions authenticates against the organiser page, fetches it, and
// returns the Saturday sessions listed on it. now is used to resolve
// year-less heading dates.
func (s *Scraper) FetchSessions(now time.Time) ([]*session.Session, error) {
	if err := s.authenticate(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching organiser page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return s.parseSessions(resp.Body, now)
}

// authenticate submits the WordPress post-password form. WordPress answers
// with a postpass cookie; whether the password was actually correct only
// shows up when the page itself is fetched.
func (s *Scraper) authenticate() error {
	form := url.Values{
		"post_password": {s.password},
		"Submit":        {"Enter"},
	}

	req, err := http.NewRequest(http.MethodPost, s.postpassURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating auth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", s.url)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submitting page password: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return nil
}

// postpassURL derives the wp-login postpass endpoint from the organiser
// page URL. The site root is everything before the /w/ path segment.
func (s *Scraper) postpassURL() string {
	site := s.url
	if idx := strings.LastIndex(s.url, "/w/"); idx >= 0 {
		site = s.url[:idx]
	}
	return site + "/w/wp-login.php?action=postpass"
}

// parseSessions extracts Saturday sessions from organiser page HTML.
// Session headings live in spoiler title divs and look like:
//
//	Sat 21 Feb - PlayFit Basketball - BOOKINGS: 13 / 20
func (s *Scraper) parseSessions(r io.Reader, now time.Time) ([]*session.Session, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	// A password form in the response means the postpass submission was
	// rejected and we are looking at the login gate, not the page.
	if doc.Find("form.post-password-form").Length() > 0 {
		return nil, fmt.Errorf("authentication failed: page password may be incorrect")
	}

	sessions := make([]*session.Session, 0)

	doc.Find("div.su-spoiler-title").Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())

		if !saturdayPattern.MatchString(text) {
			return
		}

		matches := bookingsPattern.FindStringSubmatch(text)
		if matches == nil {
			return
		}

		// Regex guarantees digits; errors here are unreachable.
		current, _ := strconv.Atoi(matches[1])
		max, _ := strconv.Atoi(matches[2])

		sessions = append(sessions, &session.Session{
			Date:        session.ParseHeadingDate(text, now),
			Description: text,
			Signups:     current,
			MaxSignups:  max,
		})
	})

	return sessions, nil
}
