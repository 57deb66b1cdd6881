package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/pfrederiksen/playfit-monitor/internal/calendar"
	"github.com/pfrederiksen/playfit-monitor/internal/config"
	"github.com/pfrederiksen/playfit-monitor/internal/session"
)

// EmailNotifier sends session alerts over SMTP with implicit TLS,
// authenticating with the sender address and an app password.
type EmailNotifier struct {
	host       string
	port       int
	from       string
	password   string
	recipients []string
}

// NewEmailNotifier creates an email notifier from configuration.
func NewEmailNotifier(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		from:       cfg.GmailAddress,
		password:   cfg.GmailAppPassword,
		recipients: cfg.NotifyEmails,
	}
}

// Notify sends one alert email to all recipients, with the session's
// calendar entry attached.
func (n *EmailNotifier) Notify(s *session.Session) error {
	msg, err := n.buildMessage(s)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(n.host,
		mail.WithPort(n.port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.from),
		mail.WithPassword(n.password),
	)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}

	return nil
}

func (n *EmailNotifier) buildMessage(s *session.Session) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return nil, fmt.Errorf("setting sender: %w", err)
	}
	if err := msg.To(n.recipients...); err != nil {
		return nil, fmt.Errorf("setting recipients: %w", err)
	}

	msg.Subject(FormatSubject(s))
	msg.SetBodyString(mail.TypeTextPlain, FormatBody(s, time.Now()))

	ics := calendar.GenerateICS(s)
	if err := msg.AttachReader("session.ics", strings.NewReader(ics)); err != nil {
		return nil, fmt.Errorf("attaching calendar entry: %w", err)
	}

	return msg, nil
}

// FormatSubject formats the alert email subject for a session.
func FormatSubject(s *session.Session) string {
	return fmt.Sprintf("PlayFit Alert: %d/%d signups!", s.Signups, s.MaxSignups)
}

// FormatBody formats the plain-text alert email body for a session.
func FormatBody(s *session.Session, now time.Time) string {
	var b strings.Builder

	b.WriteString("Hi,\n\n")
	fmt.Fprintf(&b, "A Saturday session on PlayFit has reached %d/%d signups:\n\n", s.Signups, s.MaxSignups)
	fmt.Fprintf(&b, "%s\n\n", s.Description)
	fmt.Fprintf(&b, "Signups: %d / %d\n\n", s.Signups, s.MaxSignups)
	if s.SignupLink != "" {
		fmt.Fprintf(&b, "Sign up here: %s\n\n", s.SignupLink)
	}
	b.WriteString("- PlayFit Monitor\n")
	fmt.Fprintf(&b, "(Checked at %s)\n", now.Format("2006-01-02 15:04:05"))

	return b.String()
}
