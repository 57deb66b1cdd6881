// Package notifier delivers session alerts. The production implementation
// emails all configured recipients over SMTP; a dry-run implementation
// prints the message instead, for manual runs.
package notifier
