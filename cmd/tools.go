package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools available to the assistant",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		green := color.New(color.FgGreen).SprintFunc()

		tools := app.Registry.GetTools()
		sort.Slice(tools, func(i, j int) bool { return tools[i].Name() < tools[j].Name() })
		for _, tool := range tools {
			fmt.Fprintf(out, "%s\n    %s\n", green(tool.Name()), tool.Definition().Description)
		}
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}
