package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pfrederiksen/tg-notify/internal/logger"
	"github.com/pfrederiksen/tg-notify/internal/telegram"
)

// Sender is the part of the Telegram client the notifier needs
type Sender interface {
	SendMessage(ctx context.Context, chatID, text string) (*telegram.Message, error)
}

// TelegramNotifier posts messages through the Telegram Bot API
type TelegramNotifier struct {
	sender Sender
	stdout io.Writer
	stderr io.Writer
	now    func() time.Time
	newID  func() string
}

// NewTelegramNotifier creates a notifier that writes status lines to os.Stdout and os.Stderr
func NewTelegramNotifier(sender Sender) *TelegramNotifier {
	return &TelegramNotifier{
		sender: sender,
		stdout: os.Stdout,
		stderr: os.Stderr,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithOutput redirects the status lines
func (n *TelegramNotifier) WithOutput(stdout, stderr io.Writer) *TelegramNotifier {
	n.stdout = stdout
	n.stderr = stderr
	return n
}

// Notify sends msg once and reports the outcome
func (n *TelegramNotifier) Notify(ctx context.Context, msg Message) Result {
	result := Result{
		DeliveryID: n.newID(),
		ChatID:     msg.ChatID,
	}
	fields := logger.Fields{
		"delivery_id": result.DeliveryID,
		"chat_id":     msg.ChatID,
		"length":      len(msg.Text),
	}

	logger.Debug("Sending message", fields)

	start := time.Now()
	sent, err := n.sender.SendMessage(ctx, msg.ChatID, msg.Text)
	logger.RecordTiming("telegram.send", time.Since(start))

	if err != nil {
		result.Reason = reason(err)
		logger.IncrCounter("deliveries.failed")
		fields["reason"] = result.Reason
		logger.Info("Delivery failed", fields)
		fmt.Fprintf(n.stderr, "❌ Delivery failed: %s\n", result.Reason)
		return result
	}

	result.Delivered = true
	result.SentAt = n.now()
	if sent != nil {
		result.MessageID = sent.MessageID
	}
	fields["message_id"] = result.MessageID

	logger.IncrCounter("deliveries.sent")
	logger.Info("Message delivered", fields)
	fmt.Fprintf(n.stdout, "✅ Message delivered to %s\n", msg.ChatID)
	fmt.Fprintf(n.stdout, "Sent at: %s\n", result.SentAt.Format(TimestampLayout))

	return result
}

// reason extracts the human-readable cause of a failed send. Provider errors
// carry their own description; anything else is reported by its underlying
// error, without the client's "sending request:" style context.
func reason(err error) string {
	var apiErr *telegram.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	if inner := errors.Unwrap(err); inner != nil {
		return inner.Error()
	}
	return err.Error()
}
