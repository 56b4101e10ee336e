// Package telegram provides a minimal Telegram Bot API client for posting messages to a channel.
//
// The client issues a single sendMessage request per call using plain HTTP and JSON.
// Messages are sent with HTML parse mode, so the text may contain the Bot API's HTML subset
// (<b>, <i>, <a href>, ...). The text is passed through without escaping.
//
// Authentication requires a bot token (from @BotFather) and a chat ID, which may be a
// numeric ID (e.g. -1001234567890) or a public channel handle (e.g. @my_channel).
package telegram
