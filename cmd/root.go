package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/create-new/internal/errors"
	"github.com/firefly-engineering/create-new/internal/extension"
	"github.com/firefly-engineering/create-new/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	logFile    string
	configPath string
	noOpen     bool
	roots      []string
	activeFile string

	logOut *os.File
)

var rootCmd = &cobra.Command{
	Use:   "create-new",
	Short: "Create files and folders from a workspace folder picker",
	Long: `create-new picks a folder of the workspace and creates the typed path in it.

The menu lists the workspace roots, the folder of the active file and every
folder of the workspace. After picking a folder, type a relative path:
  - a trailing "/" creates a folder
  - braces create several paths at once: {index,util}.ts, page{1..3}.md
  - tab and shift+tab cycle through matching folders

Created files are opened in $VISUAL or $EDITOR afterwards.`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var w *os.File
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			logOut, w = f, f
		}
		if w == nil {
			logging.Setup(verbose, jsonOutput, os.Stderr)
		} else {
			logging.Setup(verbose, jsonOutput, w)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		active := activeFile
		if active != "" {
			abs, err := filepath.Abs(active)
			if err != nil {
				return fmt.Errorf("invalid active file %s: %w", active, err)
			}
			active = abs
		}
		return runSession(cmd.Context(), extension.CommandCreateNew, active)
	},
}

// Execute runs the root command. Errors not already shown to the user are
// printed before returning.
func Execute() error {
	err := rootCmd.ExecuteContext(context.Background())
	if logOut != nil {
		logOut.Close()
		logOut = nil
	}

	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		logError("%s", errors.UserMessage(err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (default: user config directory)")
	rootCmd.PersistentFlags().BoolVar(&noOpen, "no-open", false, "Do not open created files in the editor")
	rootCmd.PersistentFlags().StringArrayVarP(&roots, "root", "r", nil, "Workspace root folder, repeatable (default: current directory)")
	rootCmd.Flags().StringVarP(&activeFile, "active", "a", "", "File being edited; adds its folder to the menu")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
