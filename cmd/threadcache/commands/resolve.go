package commands

import (
	"fmt"
	"os"

	"threadcache-backend/internal/parser"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <thread.html> <expression>",
	Short: "Evaluates a redacted download link against a saved page and prints the url it points to.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		href, ok := parser.ResolveLink(data, args[1])
		if !ok {
			return fmt.Errorf("expression does not select any link in %s", args[0])
		}
		fmt.Println(href)
		return nil
	},
}
