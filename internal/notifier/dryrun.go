package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pfrederiksen/tg-notify/internal/telegram"
)

// DryRunNotifier prints what would be sent without calling the Bot API
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to os.Stdout
func NewDryRunNotifier() *DryRunNotifier {
	return &DryRunNotifier{out: os.Stdout}
}

// WithOutput redirects the preview
func (n *DryRunNotifier) WithOutput(out io.Writer) *DryRunNotifier {
	n.out = out
	return n
}

// Notify prints the message that would be posted and reports it as delivered
func (n *DryRunNotifier) Notify(_ context.Context, msg Message) Result {
	fmt.Fprintln(n.out, "DRY RUN MODE - Would send 1 message:")
	fmt.Fprintf(n.out, "Chat: %s\n", msg.ChatID)
	fmt.Fprintf(n.out, "Parse mode: %s\n", telegram.ParseModeHTML)
	fmt.Fprintln(n.out, "--- Message ---")
	fmt.Fprintln(n.out, msg.Text)
	fmt.Fprintf(n.out, "\n(Length: %d characters)\n", utf8.RuneCountInString(msg.Text))

	return Result{
		DeliveryID: uuid.NewString(),
		ChatID:     msg.ChatID,
		Delivered:  true,
		SentAt:     time.Now(),
		DryRun:     true,
	}
}
