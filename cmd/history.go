package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/va6996/travelscout/orm"
)

var (
	historyLimit int
	historyPlace string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lookups from the journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.Journal == nil {
			return errors.New("lookup journal disabled, set DB_DRIVER to enable it")
		}

		var (
			rows []orm.Lookup
			err  error
		)
		if historyPlace != "" {
			rows, err = app.Journal.ForPlace(cmd.Context(), historyPlace)
		} else {
			rows, err = app.Journal.Recent(cmd.Context(), historyLimit)
		}
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		defer w.Flush()

		fmt.Fprintln(w, "TIME\tCATEGORY\tPLACE\tSOURCE\tSTATUS")
		for _, row := range rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				row.CreatedAt.Format("2006-01-02 15:04"), row.Category, row.Place, row.Source, row.Status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of lookups to show")
	historyCmd.Flags().StringVarP(&historyPlace, "place", "p", "", "only show lookups for this place")
	rootCmd.AddCommand(historyCmd)
}
