package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "List the available chat modes",
	RunE: func(_ *cobra.Command, _ []string) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, mode := range chat.EnabledModes() {
			fmt.Fprintf(w, "%s\t%s %s\t%s\n", mode.ID, mode.Icon, mode.Name, mode.Description)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(modesCmd)
}
