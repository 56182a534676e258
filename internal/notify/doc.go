// Package notify delivers detected match events to a messaging channel.
//
// The Dispatcher formats an event into a Spanish-language HTML message and
// submits it through a Sender (Telegram, Twitter or dry-run). Transient
// delivery failures are retried with bounded exponential backoff; permanent
// failures (bad chat target, malformed content) are not. Delivery is
// at-most-once: once the tracker hands an event over, it is never sent
// twice, even if every attempt failed.
package notify
