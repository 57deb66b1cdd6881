package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/playfit-monitor/internal/monitor"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the check result in the specified format
func WriteOutput(w io.Writer, result *monitor.Result, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the result as JSON
func writeJSON(w io.Writer, result *monitor.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the result as human-readable text
func writeText(w io.Writer, result *monitor.Result, verbose bool) error {
	target := result.Target

	fmt.Fprintf(w, "Target session: %s (session %d)\n",
		target.Date.Format("Mon 2 Jan 2006"), target.Number)
	fmt.Fprintf(w, "Signups: %d/%d (threshold %d)\n",
		target.Signups, target.MaxSignups, result.Threshold)

	switch {
	case result.Notified:
		fmt.Fprintln(w, "Threshold reached: alert sent.")
	case result.AlreadyAlerted:
		fmt.Fprintln(w, "Threshold reached: already alerted for this session.")
	default:
		fmt.Fprintln(w, "Below threshold: no alert sent.")
	}

	if verbose {
		fmt.Fprintf(w, "\nChecked at: %s\n", result.CheckedAt.Format("2006-01-02 15:04:05 MST"))
		if target.SignupLink != "" {
			fmt.Fprintf(w, "Signup link: %s\n", target.SignupLink)
		}
		fmt.Fprintf(w, "Description: %s\n", target.Description)
	}

	return nil
}
