// Package cli implements the golazo command-line interface.
//
// The cli package provides the Cobra-based CLI: the long-running track
// command plus one-shot queries for the league table and top scorers, and a
// send-test command for verifying notifier credentials. It wires the
// config, feed, tracker and notify packages together.
package cli
