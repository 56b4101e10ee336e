// Package config resolves tg-notify settings from an optional .env file and the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DefaultMessageText is sent when MESSAGE_TEXT is unset or empty.
const DefaultMessageText = "Hello! This is an automated message from GitHub Actions."

// DefaultEnvFile is loaded when present and no other file is named.
const DefaultEnvFile = ".env"

var (
	// ErrMissingBotToken is returned when neither BOT_TOKEN nor TELEGRAM_BOT_TOKEN is set.
	ErrMissingBotToken = errors.New("BOT_TOKEN is not set")
	// ErrMissingChatID is returned when neither CHAT_ID nor TELEGRAM_CHAT_ID is set.
	ErrMissingChatID = errors.New("CHAT_ID is not set")
)

// Config holds the settings for one delivery
type Config struct {
	BotToken    string
	ChatID      string
	MessageText string
	APIURL      string
	Timeout     time.Duration
}

// environment mirrors the variables tg-notify reads. The TELEGRAM_* names are
// what older workflows export.
type environment struct {
	BotToken       string        `env:"BOT_TOKEN"`
	LegacyBotToken string        `env:"TELEGRAM_BOT_TOKEN"`
	ChatID         string        `env:"CHAT_ID"`
	LegacyChatID   string        `env:"TELEGRAM_CHAT_ID"`
	MessageText    string        `env:"MESSAGE_TEXT"`
	APIURL         string        `env:"TELEGRAM_API_URL"`
	Timeout        time.Duration `env:"TELEGRAM_TIMEOUT" envDefault:"10s"`
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables that are already set, then parses the environment.
// An empty envFile means DefaultEnvFile. A missing default file is not an
// error; a missing file that was named explicitly is.
//
// Load does not check required values; call Validate for that.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", DefaultEnvFile, err)
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	var raw environment
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return &Config{
		BotToken:    firstNonEmpty(raw.BotToken, raw.LegacyBotToken),
		ChatID:      firstNonEmpty(raw.ChatID, raw.LegacyChatID),
		MessageText: raw.MessageText,
		APIURL:      raw.APIURL,
		Timeout:     raw.Timeout,
	}, nil
}

// Validate checks the required settings and fills in the default message.
// Missing values are reported as ErrMissingBotToken or ErrMissingChatID.
func (c *Config) Validate() error {
	if c.BotToken == "" {
		return ErrMissingBotToken
	}
	if c.ChatID == "" {
		return ErrMissingChatID
	}
	if c.MessageText == "" {
		c.MessageText = DefaultMessageText
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative: %s", c.Timeout)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
