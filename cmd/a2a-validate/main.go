// Command a2a-validate checks A2A connectivity to an Agent Zero instance.
//
// It fetches the agent card with each of the four token placements the A2A
// surface accepts and reports which of them the server honors. The exit
// code is 0 when at least one placement works.
//
// Usage:
//
//	a2a-validate --token <token> http://localhost:8080
//	a2a-validate http://localhost:8080/a2a/t-<token>   (token auto-detected)
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spetersoncode/a2actl/validate"
)

// probeLabels are the long descriptions printed per probe attempt.
var probeLabels = map[validate.Method]string{
	validate.MethodTokenURL:     "Token URL method",
	validate.MethodBearer:       "Bearer token",
	validate.MethodAPIKeyHeader: "X-API-KEY header",
	validate.MethodQueryParam:   "Query parameter",
}

type config struct {
	Token string `env:"A2A_TOKEN"`
}

func main() {
	godotenv.Load()
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}

	var (
		token   string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "a2a-validate [flags] URL",
		Short:         "Validate A2A connectivity to an Agent Zero instance",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), args[0], token, verbose)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.StringVar(&token, "token", cfg.Token, "A2A token (env A2A_TOKEN)")
	flags.StringVar(&token, "api-key", cfg.Token, "alias for --token")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, url, token string, verbose bool) error {
	logger := zap.NewNop()
	if verbose {
		logger, _ = zap.NewDevelopment()
		defer logger.Sync()
	}

	// Convenience default: pull a path-embedded token out of the URL when
	// no explicit token is given.
	if token == "" {
		if detected, base, ok := validate.DetectToken(url); ok {
			fmt.Printf("🔑 Auto-detected token from URL: %s\n", detected)
			token, url = detected, base
		}
	}

	fmt.Printf("\n🔍 Validating A2A connection to: %s\n", url)
	fmt.Println(strings.Repeat("=", 60))

	v := validate.New(url, token, validate.WithLogger(logger))
	results := v.Run(ctx)

	for _, r := range results {
		if r.OK {
			fmt.Printf("  ✅ %s\n", probeLabels[r.Method])
			fmt.Printf("     Agent: %s\n", r.Card.DisplayName())
			fmt.Printf("     Description: %s...\n", r.Card.ShortDescription(60))
		} else {
			fmt.Printf("  ❌ %s: %s\n", probeLabels[r.Method], r.Detail())
		}
	}

	fmt.Println("\n📊 Results Summary")
	fmt.Println(strings.Repeat("-", 40))
	passed, attempted := validate.Summary(results)
	for _, r := range results {
		status := "❌"
		if r.OK {
			status = "✅"
		}
		fmt.Printf("  %s %s\n", status, r.Method)
	}
	fmt.Printf("\n%d/%d methods working\n", passed, attempted)

	if passed == 0 {
		return fmt.Errorf("no authentication method succeeded")
	}
	return nil
}
