package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"treemap/internal/interact"
	"treemap/internal/trees"
)

var (
	summaryBorough string
	summaryJSON    bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the health summary of the sampled trees",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := initEnv(cmd.Context())
		defer env.Close()

		res, err := env.Pipeline.LoadTrees(cmd.Context())
		if err != nil {
			return err
		}
		s := trees.Summarize(interact.VisibleSubset(res.Sample, summaryBorough))

		w := cmd.OutOrStdout()
		if summaryJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		_, err = fmt.Fprintln(w, strings.Join(s.Lines(), "\n"))
		return err
	},
}

func init() {
	summaryCmd.Flags().StringVar(&summaryBorough, "borough", interact.AllBoroughs, "borough filter")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "print JSON")
	rootCmd.AddCommand(summaryCmd)
}
