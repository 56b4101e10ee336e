package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/tg-notify/internal/logger"
	"github.com/pfrederiksen/tg-notify/internal/notifier"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult is the JSON report for one run
type OutputResult struct {
	notifier.Result
	Metrics logger.Snapshot `json:"metrics"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}

// writeText is a one-line summary; the notifier has already printed the details
func writeText(w io.Writer, result *OutputResult) error {
	if result.Delivered {
		_, err := fmt.Fprintf(w, "delivered %s to %s\n", result.DeliveryID, result.ChatID)
		return err
	}
	_, err := fmt.Fprintf(w, "failed %s to %s: %s\n", result.DeliveryID, result.ChatID, result.Reason)
	return err
}
