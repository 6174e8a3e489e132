package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/create-new/internal/app"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display the paths created recently",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var (
	historyLimit int
	historyJSONL bool
	historyClear bool
)

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of events to show (0 for all)")
	historyCmd.Flags().BoolVar(&historyJSONL, "jsonl", false, "Output events as JSON lines")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the history")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	history := app.Default.History

	if historyClear {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		logSuccess("History cleared")
		return nil
	}

	events, err := history.Events(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No paths created yet")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if historyJSONL {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		switch {
		case e.Path == "":
			fmt.Fprintf(out, "[%s] %-6s %s\n", ts, e.Type, e.Details)
		case e.Details != "":
			fmt.Fprintf(out, "[%s] %-6s %s (%s)\n", ts, e.Type, e.Path, e.Details)
		default:
			fmt.Fprintf(out, "[%s] %-6s %s\n", ts, e.Type, e.Path)
		}
	}

	return nil
}
