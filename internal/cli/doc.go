// Package cli implements the playfit-monitor command line interface.
//
// Running the binary performs a single check cycle and exits: 0 on a
// successful check regardless of whether the threshold was met, 1 on any
// fetch, parse, configuration, or send failure. The external scheduler is
// expected to provide the retry cadence.
package cli
