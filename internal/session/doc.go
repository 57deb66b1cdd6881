// Package session models the weekly Saturday session slot: which Saturday
// is the current target, what sequential number it carries, and where its
// signup page lives.
//
// Session numbers are not printed on the organiser page. They are derived
// from a reference pair (a known date and its session number) by counting
// elapsed weeks, which is stable as long as sessions run every Saturday.
package session
