package commands

import (
	"threadcache-backend/cmd/threadcache/globals"
	"threadcache-backend/internal/cachefmt"

	"github.com/spf13/cobra"
)

var parseOut string

func init() {
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Write the records to this file instead of stdout.")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <thread.html>... [--out <records.jsonl>]",
	Short: "Parses saved thread pages into cache records, one JSON line per page.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		inputs, err := readInputs(args)
		if err != nil {
			return err
		}
		outcomes, err := newPool(g).ParseThreads(cmd.Context(), inputs)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(parseOut)
		if err != nil {
			return err
		}
		defer closeOut()

		enc := cachefmt.NewEncoder(out)
		for _, o := range outcomes {
			if o.Err != nil {
				continue
			}
			err = enc.Thread(o.Value)
			if err != nil {
				return err
			}
		}
		return settle(g, outcomes)
	},
}
