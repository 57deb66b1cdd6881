// Package monitor orchestrates one check cycle: compute the target Saturday
// session, scrape its signup count, compare against the threshold, and send
// at most one alert per session. The external scheduler supplies the cadence;
// each cycle is independent apart from the persisted alert state.
package monitor
