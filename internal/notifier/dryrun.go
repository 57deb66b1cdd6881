package notifier

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

// DryRunNotifier prints the alert that would be emailed without sending it
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to stdout
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// Notify prints the alert email that would be sent
func (n *DryRunNotifier) Notify(s *session.Session) error {
	fmt.Fprintln(n.out, "--- Alert email (dry run) ---")
	fmt.Fprintf(n.out, "Subject: %s\n\n", FormatSubject(s))
	fmt.Fprintln(n.out, FormatBody(s, time.Now()))
	return nil
}
