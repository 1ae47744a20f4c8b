package main

import (
	"fmt"

	"feedbackd/internal/core/sentiment"

	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt [text|-]",
		Short: "Print the classification prompt for a piece of feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(cmd, args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), sentiment.BuildPrompt(text))
			return err
		},
	}
}
