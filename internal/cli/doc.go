// Package cli implements the command-line interface for tg-notify.
//
// The cli package provides the Cobra-based command that resolves configuration from flags,
// the environment and an optional .env file, sends one message through the notifier package,
// and maps the outcome to the process exit code. Output is either the notifier's plain status
// lines or a JSON report.
package cli
