// Package storage persists the alert state between scheduler runs.
//
// State is a small JSON file in the data directory mapping session dates to
// the time an alert was sent for them. It exists purely for idempotency:
// the external scheduler may invoke the monitor many times before a session
// passes, and only the first run at or above the threshold should email.
package storage
