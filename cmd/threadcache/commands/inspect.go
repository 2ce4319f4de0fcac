package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"threadcache-backend/cmd/threadcache/globals"
	"threadcache-backend/internal/parser"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// nearestTag returns the known tag slug closest to an unknown one.
func nearestTag(slug string) (string, float64) {
	best := ""
	bestScore := 0.0
	for _, known := range parser.KnownTagSlugs() {
		score := matchr.JaroWinkler(slug, known, false)
		if score > bestScore {
			best = known
			bestScore = score
		}
	}
	return best, bestScore
}

func clip(text string, max int) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <thread.html>",
	Short: "Prints the fields parsed from a saved thread page as tables.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := globals.Get(cmd.Context())

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		thread, err := g.Parser.ParseThread(data)
		if err != nil {
			writeDump(g.Config.DumpDir, args[0], err)
			return err
		}

		tags := make([]string, len(thread.Tags))
		for i, tag := range thread.Tags {
			tags[i] = tag.String()
		}

		fields := newTable()
		fields.AppendHeader(table.Row{"Field", "Value"})
		fields.AppendRows([]table.Row{
			{"Name", thread.Name},
			{"Version", thread.Version},
			{"Developer", thread.Developer},
			{"Type", fmt.Sprintf("%s (%s)", thread.Type, thread.Type.Category())},
			{"Status", thread.Status},
			{"Last updated", time.Unix(thread.LastUpdated, 0).UTC().Format(time.DateOnly)},
			{"Score", fmt.Sprintf("%.1f (%d votes)", thread.Score, thread.Votes)},
			{"Tags", strings.Join(tags, ", ")},
			{"Image", thread.ImageUrl},
			{"Previews", len(thread.PreviewUrls)},
			{"Description", clip(thread.Description, 80)},
			{"Changelog", clip(thread.Changelog, 80)},
		})
		fields.Render()

		if len(thread.Downloads) > 0 {
			downloads := newTable()
			downloads.AppendHeader(table.Row{"Group", "Mirror", "Link"})
			for _, group := range thread.Downloads {
				if len(group.Mirrors) == 0 {
					downloads.AppendRow(table.Row{group.Name, "", ""})
					continue
				}
				for _, mirror := range group.Mirrors {
					downloads.AppendRow(table.Row{group.Name, mirror.Name, mirror.Link})
				}
			}
			downloads.Render()
		}

		if len(thread.UnknownTags) > 0 {
			unknown := newTable()
			unknown.AppendHeader(table.Row{"Unknown tag", "Closest known", "Similarity"})
			for _, slug := range thread.UnknownTags {
				closest, score := nearestTag(slug)
				unknown.AppendRow(table.Row{slug, closest, fmt.Sprintf("%.2f", score)})
			}
			unknown.Render()
		}
		return nil
	},
}
