// Package scraper provides HTTP fetching and HTML parsing for the organiser page.
//
// The organiser page is a WordPress page behind a post password. The scraper
// first submits the password to the wp-login postpass endpoint to obtain the
// auth cookie, then fetches the page and extracts per-session signup counts
// from the spoiler title headings ("BOOKINGS: current / max").
package scraper
