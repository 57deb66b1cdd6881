package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the optional settings.
const (
	DefaultThreshold       = 12
	DefaultReferenceDate   = "2026-02-21"
	DefaultReferenceNumber = 59
	DefaultSMTPHost        = "smtp.gmail.com"
	DefaultSMTPPort        = 465
)

// Config holds all configuration for a monitor run.
type Config struct {
	OrganiserURL     string
	PagePassword     string
	GmailAddress     string
	GmailAppPassword string
	NotifyEmails     []string
	SignupBaseURL    string

	Threshold       int
	ReferenceDate   time.Time
	ReferenceNumber int

	SMTPHost string
	SMTPPort int

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables, optionally seeded
// from an env file. godotenv never overrides variables already set in the
// real environment, and a missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		_ = godotenv.Load(envFile)
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{}

	var err error
	if cfg.OrganiserURL, err = required("ORGANISER_URL"); err != nil {
		return nil, err
	}
	if cfg.PagePassword, err = required("PAGE_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.GmailAddress, err = required("GMAIL_ADDRESS"); err != nil {
		return nil, err
	}
	if cfg.GmailAppPassword, err = required("GMAIL_APP_PASSWORD"); err != nil {
		return nil, err
	}
	if cfg.SignupBaseURL, err = required("SIGNUP_BASE_URL"); err != nil {
		return nil, err
	}

	emails, err := required("NOTIFY_EMAILS")
	if err != nil {
		return nil, err
	}
	cfg.NotifyEmails = splitEmails(emails)
	if len(cfg.NotifyEmails) == 0 {
		return nil, fmt.Errorf("NOTIFY_EMAILS contains no addresses")
	}

	cfg.Threshold, err = intOrDefault("SIGNUP_THRESHOLD", DefaultThreshold)
	if err != nil {
		return nil, err
	}

	refDate := os.Getenv("SIGNUP_REFERENCE_DATE")
	if refDate == "" {
		refDate = DefaultReferenceDate
	}
	cfg.ReferenceDate, err = time.Parse("2006-01-02", refDate)
	if err != nil {
		return nil, fmt.Errorf("invalid SIGNUP_REFERENCE_DATE: %w", err)
	}

	cfg.ReferenceNumber, err = intOrDefault("SIGNUP_REFERENCE_NUMBER", DefaultReferenceNumber)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if cfg.SMTPHost == "" {
		cfg.SMTPHost = DefaultSMTPHost
	}
	cfg.SMTPPort, err = intOrDefault("SMTP_PORT", DefaultSMTPPort)
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

func required(name string) (string, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return "", fmt.Errorf("%s is not set", name)
	}
	return v, nil
}

func intOrDefault(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return n, nil
}

func splitEmails(raw string) []string {
	parts := strings.Split(raw, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}
