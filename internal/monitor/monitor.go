package monitor

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/playfit-monitor/internal/config"
	"github.com/pfrederiksen/playfit-monitor/internal/logger"
	"github.com/pfrederiksen/playfit-monitor/internal/notifier"
	"github.com/pfrederiksen/playfit-monitor/internal/session"
	"github.com/pfrederiksen/playfit-monitor/internal/storage"
	"github.com/sirupsen/logrus"
)

// SessionFetcher fetches the Saturday sessions currently listed on the
// organiser page.
type SessionFetcher interface {
	FetchSessions(now time.Time) ([]*session.Session, error)
}

// Monitor runs one fetch-parse-compare-notify cycle.
type Monitor struct {
	cfg      *config.Config
	fetcher  SessionFetcher
	store    *storage.Storage
	notifier notifier.Notifier

	// DryRun disables all writes to the alert state, so a manual dry run
	// never suppresses the real alert of a later scheduled run.
	DryRun bool
}

// Result describes the outcome of a check cycle.
type Result struct {
	CheckedAt      time.Time        `json:"checked_at"`
	Target         *session.Session `json:"target"`
	Threshold      int              `json:"threshold"`
	Notified       bool             `json:"notified"`
	AlreadyAlerted bool             `json:"already_alerted"`
}

// New creates a Monitor.
func New(cfg *config.Config, fetcher SessionFetcher, store *storage.Storage, n notifier.Notifier) *Monitor {
	return &Monitor{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		notifier: n,
	}
}

// Run performs one check cycle: compute the target session, fetch and
// parse the organiser page, compare signups against the threshold, and
// alert at most once per session.
func (m *Monitor) Run(now time.Time) (*Result, error) {
	targetDate := session.TargetSaturday(now)
	number := session.Number(targetDate, m.cfg.ReferenceDate, m.cfg.ReferenceNumber)

	log := logger.Log.WithFields(logrus.Fields{
		"target_date":    targetDate.Format("2006-01-02"),
		"session_number": number,
	})
	log.Info("Checking organiser page")

	sessions, err := m.fetcher.FetchSessions(now)
	if err != nil {
		return nil, fmt.Errorf("fetching sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("no Saturday sessions found on the page")
	}

	target := findTarget(sessions, targetDate)
	if target == nil {
		return nil, fmt.Errorf("no session found for %s", targetDate.Format("Mon 2 Jan 2006"))
	}
	target.Number = number
	target.SignupLink = session.SignupLink(m.cfg.SignupBaseURL, number)

	log = log.WithFields(logrus.Fields{
		"signups":     target.Signups,
		"max_signups": target.MaxSignups,
		"threshold":   m.cfg.Threshold,
	})

	state, err := m.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading alert state: %w", err)
	}
	state.Prune(targetDate)

	result := &Result{
		CheckedAt:      now.UTC(),
		Target:         target,
		Threshold:      m.cfg.Threshold,
		AlreadyAlerted: state.IsAlerted(target),
	}

	if target.Signups < m.cfg.Threshold {
		log.Info("Below threshold")
		if err := m.saveState(state); err != nil {
			return nil, err
		}
		return result, nil
	}

	if result.AlreadyAlerted {
		log.Info("Threshold reached but already alerted for this session")
		if err := m.saveState(state); err != nil {
			return nil, err
		}
		return result, nil
	}

	log.Info("Threshold reached, sending alert")
	if err := m.notifier.Notify(target); err != nil {
		return nil, fmt.Errorf("sending alert: %w", err)
	}

	// Mark only after a successful send, so a failed send is retried on
	// the next scheduler run.
	state.MarkAlerted(target)
	if err := m.saveState(state); err != nil {
		return nil, err
	}

	result.Notified = true
	log.Info("Alert sent")
	return result, nil
}

// saveState persists the alert state unless this is a dry run.
func (m *Monitor) saveState(state *storage.AlertState) error {
	if m.DryRun {
		return nil
	}
	if err := m.store.Save(state); err != nil {
		return fmt.Errorf("saving alert state: %w", err)
	}
	return nil
}

// findTarget returns the first session matching the target date.
func findTarget(sessions []*session.Session, targetDate time.Time) *session.Session {
	for _, s := range sessions {
		if !s.Date.IsZero() && s.Date.Equal(targetDate) {
			return s
		}
	}
	return nil
}
