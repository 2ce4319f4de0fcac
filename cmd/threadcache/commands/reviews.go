package commands

import (
	"threadcache-backend/cmd/threadcache/globals"
	"threadcache-backend/internal/cachefmt"

	"github.com/spf13/cobra"
)

var reviewsOut string

func init() {
	reviewsCmd.Flags().StringVarP(&reviewsOut, "out", "o", "", "Write the records to this file instead of stdout.")
	rootCmd.AddCommand(reviewsCmd)
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews <reviews.html>... [--out <records.jsonl>]",
	Short: "Parses saved review pages into cache records, one JSON line per page.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		inputs, err := readInputs(args)
		if err != nil {
			return err
		}
		outcomes, err := newPool(g).ParseReviews(cmd.Context(), inputs)
		if err != nil {
			return err
		}

		out, closeOut, err := openOutput(reviewsOut)
		if err != nil {
			return err
		}
		defer closeOut()

		enc := cachefmt.NewEncoder(out)
		for _, o := range outcomes {
			if o.Err != nil {
				continue
			}
			err = enc.Reviews(o.Value)
			if err != nil {
				return err
			}
		}
		return settle(g, outcomes)
	},
}
