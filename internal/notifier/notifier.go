package notifier

import (
	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

// Notifier defines the interface for sending session alerts
type Notifier interface {
	// Notify sends an alert for the given session
	Notify(s *session.Session) error
}
