// Package match provides the snapshot model and event detection for live
// Liga MX matches.
//
// A Snapshot is one poll's observed state of a single match. Detect compares
// two consecutive snapshots of the same fixture and produces the ordered
// events that happened between them (kickoff, goals, cards, substitutions,
// half-time, full-time, corrections). Each event carries a deterministic
// SHA1-based fingerprint so the tracker can report every real-world event
// exactly once, no matter how often the same snapshot is observed.
package match
