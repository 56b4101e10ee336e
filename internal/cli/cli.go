package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/tg-notify/internal/config"
	"github.com/pfrederiksen/tg-notify/internal/logger"
	"github.com/pfrederiksen/tg-notify/internal/notifier"
	"github.com/pfrederiksen/tg-notify/internal/telegram"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// errNotDelivered signals a failed delivery whose reason has already been printed
var errNotDelivered = errors.New("message not delivered")

type options struct {
	botToken string
	chatID   string
	message  string
	envFile  string
	apiURL   string
	timeout  time.Duration
	format   string
	logLevel string
	dryRun   bool
	verbose  bool
}

// newNotifier is swapped in tests
var newNotifier = func(cfg *config.Config, stdout, stderr io.Writer) (notifier.Notifier, error) {
	client, err := telegram.NewClient(cfg.BotToken,
		telegram.WithBaseURL(cfg.APIURL),
		telegram.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, err
	}
	return notifier.NewTelegramNotifier(client).WithOutput(stdout, stderr), nil
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "tg-notify",
		Short: "Post a message to a Telegram channel",
		Long: `Post a single HTML-formatted message to a Telegram channel via the Bot API.

Configuration is read from the environment (BOT_TOKEN, CHAT_ID, MESSAGE_TEXT),
optionally seeded from a .env file. Flags override the environment.
Exits 0 when the message was delivered and 1 otherwise.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.botToken, "bot-token", "", "Telegram bot token (or env: BOT_TOKEN)")
	cmd.Flags().StringVar(&opts.chatID, "chat-id", "", "Channel ID or @handle (or env: CHAT_ID)")
	cmd.Flags().StringVarP(&opts.message, "message", "m", "", "Message text, HTML allowed (or env: MESSAGE_TEXT)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", "", "Path to a .env file (default: ./.env if present)")
	cmd.Flags().StringVar(&opts.apiURL, "api-url", "", "Bot API base URL (or env: TELEGRAM_API_URL)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (or env: TELEGRAM_TIMEOUT, default 10s)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the message without sending")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "Minimum level for JSON logs on stderr: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging and a summary line on stderr")

	return cmd
}

// runSend is the main command logic
func runSend(cmd *cobra.Command, opts *options) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	level, err := logger.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, stderr))

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("Configuration resolved", logger.Fields{
		"chat_id":  cfg.ChatID,
		"api_url":  cfg.APIURL,
		"timeout":  cfg.Timeout.String(),
		"dry_run":  opts.dryRun,
		"env_file": opts.envFile,
	})

	// Status lines stay off stdout when it carries the JSON report
	statusOut := stdout
	if format == FormatJSON {
		statusOut = stderr
	}

	var n notifier.Notifier
	if opts.dryRun {
		n = notifier.NewDryRunNotifier().WithOutput(statusOut)
	} else {
		n, err = newNotifier(cfg, statusOut, stderr)
		if err != nil {
			return fmt.Errorf("initializing Telegram client: %w", err)
		}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := n.Notify(ctx, notifier.Message{ChatID: cfg.ChatID, Text: cfg.MessageText})

	report := &OutputResult{
		Result:  result,
		Metrics: logger.GetMetricsSnapshot(),
	}
	switch {
	case format == FormatJSON:
		if err := WriteOutput(stdout, report, format); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	case opts.verbose:
		if err := WriteOutput(stderr, report, format); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	if !result.Delivered {
		return errNotDelivered
	}
	return nil
}

// applyFlags lets explicitly set flags override values from the environment
func applyFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("bot-token") {
		cfg.BotToken = opts.botToken
	}
	if flags.Changed("chat-id") {
		cfg.ChatID = opts.chatID
	}
	if flags.Changed("message") {
		cfg.MessageText = opts.message
	}
	if flags.Changed("api-url") {
		cfg.APIURL = opts.apiURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
}

// run executes the root command with args and returns the exit code.
// A panic anywhere below is reported and turned into ExitError.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Unexpected failure", logger.Fields{"panic": fmt.Sprint(r)}, nil)
			fmt.Fprintf(stderr, "❌ Unexpected error: %v\n", r)
			code = ExitError
		}
	}()

	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNotDelivered) {
			fmt.Fprintf(stderr, "❌ Error: %v\n", err)
		}
		return ExitError
	}
	return ExitSuccess
}

// Execute runs the CLI and exits the process
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
