package notifier

import (
	"context"
	"time"
)

// Message is one delivery request
type Message struct {
	ChatID string
	Text   string
}

// Result describes the outcome of one delivery attempt
type Result struct {
	DeliveryID string    `json:"delivery_id"`
	ChatID     string    `json:"chat_id"`
	Delivered  bool      `json:"delivered"`
	Reason     string    `json:"reason,omitempty"`
	MessageID  int64     `json:"message_id,omitempty"`
	SentAt     time.Time `json:"sent_at,omitzero"`
	DryRun     bool      `json:"dry_run,omitempty"`
}

// Notifier defines the interface for delivering a message
type Notifier interface {
	// Notify makes at most one delivery attempt for msg
	Notify(ctx context.Context, msg Message) Result
}

// TimestampLayout renders SentAt the way the status line shows it (DD.MM.YYYY, HH:MM:SS).
const TimestampLayout = "02.01.2006, 15:04:05"
