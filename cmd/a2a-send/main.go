// Command a2a-send sends a single A2A message to an Agent Zero instance.
//
// It supports text messages, file attachments, and conversation continuity:
// the context id returned by the server is remembered per endpoint in
// ~/.a2a_sessions.json and attached to the next send unless --no-context
// is given.
//
// Usage:
//
//	a2a-send -t <token> http://localhost:8080 "hello there"
//	a2a-send -t <token> -f report.pdf -f data.csv http://localhost:8080 "summarize these"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spetersoncode/a2actl/a2a"
	"github.com/spetersoncode/a2actl/session"
)

type sendOptions struct {
	files       []string
	token       string
	noContext   bool
	timeout     int
	rawJSON     bool
	sessionFile string
	verbose     bool
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}

	opts := &sendOptions{}

	cmd := &cobra.Command{
		Use:           "a2a-send [flags] URL MESSAGE",
		Short:         "Send an A2A message to an Agent Zero instance",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args[0], args[1])
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.files, "file", "f", nil, "file attachment (repeatable)")
	flags.StringVarP(&opts.token, "token", "t", cfg.Token, "A2A token (env A2A_TOKEN)")
	flags.BoolVar(&opts.noContext, "no-context", false, "start a fresh conversation")
	flags.IntVar(&opts.timeout, "timeout", cfg.Timeout, "request timeout in seconds")
	flags.BoolVar(&opts.rawJSON, "json", false, "output the raw response JSON")
	flags.StringVar(&opts.sessionFile, "session-file", cfg.SessionFile, "session cache file (env A2A_SESSION_FILE)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *sendOptions, url, text string) error {
	if opts.token == "" {
		return fmt.Errorf("a token is required (--token or A2A_TOKEN)")
	}

	logger := zap.NewNop()
	if opts.verbose {
		logger, _ = zap.NewDevelopment()
		defer logger.Sync()
	}

	store := session.Default()
	if opts.sessionFile != "" {
		store = session.New(opts.sessionFile)
	}

	client := a2a.NewClient(url, opts.token,
		a2a.WithTimeout(time.Duration(opts.timeout)*time.Second),
		a2a.WithLogger(logger),
	)

	fmt.Printf("📤 Sending message to %s...\n", url)
	if len(opts.files) > 0 {
		fmt.Printf("   Attachments: %s\n", strings.Join(opts.files, ", "))
	}

	// Attachments are read and encoded up front so a missing file fails
	// the whole send before any network activity.
	parts := []a2a.Part{a2a.NewTextPart(text)}
	for _, path := range opts.files {
		fp, err := a2a.NewFilePartFromPath(path)
		if err != nil {
			return err
		}
		parts = append(parts, fp)
	}

	msg := a2a.NewMessage(a2a.MessageRoleUser, parts...)
	if !opts.noContext {
		if id, ok := store.Load(client.BaseURL()); ok {
			msg.ContextID = id
		}
	}

	resp, err := client.SendMessage(ctx, msg)
	if err != nil {
		return err
	}

	contextID := msg.ContextID
	if resp.Result.ContextID != "" {
		contextID = resp.Result.ContextID
		if err := store.Save(client.BaseURL(), contextID); err != nil {
			logger.Warn("failed to save session", zap.Error(err))
		}
	}

	if opts.rawJSON {
		out, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to render response: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("\n📨 Response:\n%s\n", a2a.ExtractResponseText(resp))
	fmt.Printf("\n📝 Context ID: %s\n", contextID)
	return nil
}
