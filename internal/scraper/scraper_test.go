package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2026, 2, 18, 12, 0, 0, 0, time.UTC)

func newTestScraper(t *testing.T, url, password string) *Scraper {
	t.Helper()
	s, err := New(url, password)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestParseSessions(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/organiser_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := newTestScraper(t, "https://playfit.example.com/w/organiser/", "secret")
	sessions, err := s.parseSessions(strings.NewReader(string(data)), testNow)
	if err != nil {
		t.Fatalf("parseSessions failed: %v", err)
	}

	// Fixture has two Saturday sessions with bookings, one Sunday
	// session, and one Saturday heading without a bookings marker.
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}

	first := sessions[0]
	if got, want := first.Date.Format("2006-01-02"), "2026-02-21"; got != want {
		t.Errorf("first session date = %s, want %s", got, want)
	}
	if first.Signups != 13 {
		t.Errorf("first session signups = %d, want 13", first.Signups)
	}
	if first.MaxSignups != 20 {
		t.Errorf("first session max signups = %d, want 20", first.MaxSignups)
	}
	if !strings.Contains(first.Description, "PlayFit Basketball") {
		t.Errorf("first session description = %q, missing title", first.Description)
	}

	second := sessions[1]
	if got, want := second.Date.Format("2006-01-02"), "2026-02-28"; got != want {
		t.Errorf("second session date = %s, want %s", got, want)
	}
	if second.Signups != 4 || second.MaxSignups != 20 {
		t.Errorf("second session bookings = %d/%d, want 4/20", second.Signups, second.MaxSignups)
	}
}

func TestParseSessionsPasswordForm(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/password_form.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	s := newTestScraper(t, "https://playfit.example.com/w/organiser/", "wrong")
	_, err = s.parseSessions(strings.NewReader(string(data)), testNow)
	if err == nil {
		t.Fatal("expected authentication error, got nil")
	}
	if !strings.Contains(err.Error(), "authentication failed") {
		t.Errorf("error = %v, want authentication failure", err)
	}
}

func TestParseSessionsNoMarkers(t *testing.T) {
	html := `<html><body><div class="entry-content"><p>Nothing here yet.</p></div></body></html>`

	s := newTestScraper(t, "https://playfit.example.com/w/organiser/", "secret")
	sessions, err := s.parseSessions(strings.NewReader(html), testNow)
	if err != nil {
		t.Fatalf("parseSessions failed: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected 0 sessions, got %d", len(sessions))
	}
}

func TestPostpassURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{
			url:  "https://playfit.example.com/w/organiser/",
			want: "https://playfit.example.com/w/wp-login.php?action=postpass",
		},
		{
			url:  "https://playfit.example.com/organiser/",
			want: "https://playfit.example.com/organiser//w/wp-login.php?action=postpass",
		},
	}

	for _, tt := range tests {
		s := newTestScraper(t, tt.url, "secret")
		if got := s.postpassURL(); got != tt.want {
			t.Errorf("postpassURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestFetchSessions(t *testing.T) {
	const password = "hoops"

	page, err := os.ReadFile("../../testdata/fixtures/organiser_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	gate, err := os.ReadFile("../../testdata/fixtures/password_form.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	var authenticated bool
	mux := http.NewServeMux()
	mux.HandleFunc("/w/wp-login.php", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if r.FormValue("post_password") == password {
			authenticated = true
			http.SetCookie(w, &http.Cookie{Name: "wp-postpass", Value: "token"})
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/w/organiser/", func(w http.ResponseWriter, r *http.Request) {
		if !authenticated {
			w.Write(gate)
			return
		}
		if _, err := r.Cookie("wp-postpass"); err != nil {
			w.Write(gate)
			return
		}
		w.Write(page)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("correct password fetches sessions", func(t *testing.T) {
		authenticated = false
		s := newTestScraper(t, fmt.Sprintf("%s/w/organiser/", srv.URL), password)

		sessions, err := s.FetchSessions(testNow)
		if err != nil {
			t.Fatalf("FetchSessions failed: %v", err)
		}
		if len(sessions) != 2 {
			t.Errorf("expected 2 sessions, got %d", len(sessions))
		}
	})

	t.Run("wrong password surfaces auth failure", func(t *testing.T) {
		authenticated = false
		s := newTestScraper(t, fmt.Sprintf("%s/w/organiser/", srv.URL), "wrong")

		_, err := s.FetchSessions(testNow)
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "authentication failed") {
			t.Errorf("error = %v, want authentication failure", err)
		}
	})
}
