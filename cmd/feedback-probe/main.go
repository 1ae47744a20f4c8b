// Command feedback-probe runs the classification pipeline against one text from the terminal
// useful for checking prompts and provider credentials without the HTTP server
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/platform/config"
	"feedbackd/internal/platform/logger"

	"github.com/spf13/cobra"
)

// newEngine is swapped in tests
var newEngine = func(ctx context.Context) (inference.Engine, error) {
	return inference.New(ctx, inference.ConfigFromEnv(config.New()))
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "feedback-probe",
		Short:         "Try the sentiment prompt and parser from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var paths []string
			if envFile != "" {
				paths = append(paths, envFile)
			}
			if _, err := config.LoadDotenv(paths...); err != nil {
				return err
			}
			opts := logger.FromEnv()
			opts.Component = "probe"
			opts.Writer = cmd.ErrOrStderr()
			logger.Init(opts)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env", "", "dotenv file to load (default ./.env)")
	root.AddCommand(newPromptCmd(), newAnalyzeCmd())
	return root
}

// readText joins args, or reads stdin when the only arg is "-" or there are none
func readText(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && !(len(args) == 1 && args[0] == "-") {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
