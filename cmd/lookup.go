package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	logcontext "github.com/va6996/travelscout/context"
	"github.com/va6996/travelscout/places"
)

var errLookupFailed = errors.New("lookup failed")

var lookupCmd = &cobra.Command{
	Use:   "lookup <category> <place>",
	Short: "Find attractions, restaurants, activities or transportation for a place",
	Long: `Resolve one category for a place through Google Places, falling back to
web search when Places has nothing useful. The rest of the arguments form the place.

  travelscout lookup restaurants Kyoto, Japan`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := places.ParseCategory(args[0])
		if err != nil {
			return err
		}

		ctx, _ := logcontext.EnsureRequestID(cmd.Context())
		outcome := app.Places.Lookup(ctx, category, strings.Join(args[1:], " "))

		out := cmd.OutOrStdout()
		if !outcome.OK() {
			color.New(color.FgRed).Fprintln(out, outcome.Text())
			return errLookupFailed
		}

		header := color.New(color.FgGreen, color.Bold).SprintfFunc()
		if outcome.FellBack() {
			header = color.New(color.FgYellow, color.Bold).SprintfFunc()
		}
		fmt.Fprintln(out, header("[%s] %s", outcome.Source, outcome.Place))
		fmt.Fprintln(out, outcome.Report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}
