package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/create-new/internal/app"
	"github.com/firefly-engineering/create-new/internal/extension"
	"github.com/firefly-engineering/create-new/internal/logging"
)

var fromCurrentCmd = &cobra.Command{
	Use:   "from-current <file>",
	Short: "Create next to a file, skipping the folder menu",
	Long: `Opens the path input relative to the folder of <file>.

Tab and shift+tab are not available here; type the path directly.`,
	Args: cobra.ExactArgs(1),
	RunE: runFromCurrent,
}

func init() {
	rootCmd.AddCommand(fromCurrentCmd)
}

func runFromCurrent(cmd *cobra.Command, args []string) error {
	file, err := filepath.Abs(args[0])
	if err != nil {
		file = args[0]
	}

	// A missing file leaves no active file, which the command reports.
	info, err := app.Default.FS.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		logging.Debug("active file unusable", "file", file, "error", err)
		file = ""
	}

	return runSession(cmd.Context(), extension.CommandCreateNewFromCurrent, file)
}
