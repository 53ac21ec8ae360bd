package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	logcontext "github.com/va6996/travelscout/context"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask the travel assistant a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.Agent == nil {
			return errors.New("no model configured, set AI_PLUGIN to gemini, ollama or compat")
		}

		ctx, _ := logcontext.EnsureRequestID(cmd.Context())
		answer, err := app.Agent.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if answer.NeedsClarification {
			fmt.Fprintln(out, color.New(color.FgYellow).Sprint(answer.Text))
			return nil
		}
		fmt.Fprintln(out, answer.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
}
