package main

import (
	"encoding/json"
	"fmt"

	"feedbackd/internal/adapters/inference"
	"feedbackd/internal/core/normalize"
	"feedbackd/internal/core/sentiment"

	"github.com/spf13/cobra"
)

type analysis struct {
	Provider  string          `json:"provider"`
	Model     string          `json:"model"`
	Sentiment sentiment.Label `json:"sentiment"`
	Summary   string          `json:"summary"`
}

func newAnalyzeCmd() *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "analyze [text|-]",
		Short: "Classify one piece of feedback with the configured provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			if normalize.Blank(text) {
				return fmt.Errorf("feedback is blank")
			}

			engine, err := newEngine(cmd.Context())
			if err != nil {
				return err
			}
			out, err := engine.Classify(cmd.Context(), inference.Prompt(sentiment.BuildPrompt(text), 0))
			if err != nil {
				return err
			}
			if raw {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}

			parsed, err := sentiment.Parse(out)
			if err != nil {
				return fmt.Errorf("%w (raw output: %q)", err, out)
			}
			res := sentiment.Normalize(parsed)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(analysis{
				Provider:  engine.Provider(),
				Model:     engine.Model(),
				Sentiment: res.Sentiment,
				Summary:   res.Summary,
			})
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "print the model output without parsing")
	return cmd
}
