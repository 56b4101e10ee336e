// Package notifier delivers a single message to a Telegram channel and reports the outcome.
//
// A Notifier never returns an error. Every failure (transport, provider rejection, or an
// undecodable response) is folded into a Result with Delivered set to false and a
// human-readable Reason. The Telegram notifier also writes a one-line status to stdout on
// success or stderr on failure. No retries are attempted.
package notifier
