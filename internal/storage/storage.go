package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

const stateFile = "alerted.json"

// AlertState records which session dates have already triggered an alert,
// so repeated scheduler runs before the session passes do not re-notify.
type AlertState struct {
	AlertedDates map[string]time.Time `json:"alerted_dates"`
	UpdatedAt    string               `json:"updated_at,omitempty"`
}

// NewAlertState creates an empty alert state.
func NewAlertState() *AlertState {
	return &AlertState{
		AlertedDates: make(map[string]time.Time),
	}
}

// IsAlerted reports whether an alert was already sent for the session.
func (a *AlertState) IsAlerted(s *session.Session) bool {
	_, ok := a.AlertedDates[s.DateKey()]
	return ok
}

// MarkAlerted records that an alert was sent for the session.
func (a *AlertState) MarkAlerted(s *session.Session) {
	a.AlertedDates[s.DateKey()] = time.Now().UTC()
}

// Prune drops entries for sessions before the given target date. Once the
// target session moves on, old markers have no further use.
func (a *AlertState) Prune(target time.Time) {
	for key := range a.AlertedDates {
		d, err := time.Parse("2006-01-02", key)
		if err != nil || d.Before(target) {
			delete(a.AlertedDates, key)
		}
	}
}

// Storage handles persistence of the alert state
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

func (s *Storage) statePath() string {
	return filepath.Join(s.dataDir, stateFile)
}

// Load reads the alert state from disk. A missing file yields an empty state.
func (s *Storage) Load() (*AlertState, error) {
	data, err := os.ReadFile(s.statePath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewAlertState(), nil
		}
		return nil, fmt.Errorf("reading alert state: %w", err)
	}

	var state AlertState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing alert state: %w", err)
	}

	if state.AlertedDates == nil {
		state.AlertedDates = make(map[string]time.Time)
	}

	return &state, nil
}

// Save writes the alert state to disk.
func (s *Storage) Save(state *AlertState) error {
	state.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding alert state: %w", err)
	}

	if err := os.WriteFile(s.statePath(), data, 0644); err != nil {
		return fmt.Errorf("writing alert state: %w", err)
	}

	return nil
}
