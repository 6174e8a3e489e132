// Package tui hosts create-new sessions in the terminal.
//
// Host hands the extension a filterable folder Selector and a TextField,
// both rendered by a Bubble Tea Model. Run executes one extension command
// and drives the program until the session it opened ends:
//
//	host := tui.NewHost(activeFile)
//	ext := extension.New(host, ws, creator, editor)
//	if err := tui.Run(ctx, host, ext, extension.CommandCreateNew, tui.Options{Keys: cfg.Keys}); err != nil {
//	    return err
//	}
//
// # Keys
//
//   - Enter accepts the highlighted folder or the typed path
//   - Esc and Ctrl+C close the visible widget, which ends the session
//   - The configured autocompletion keys (tab and shift+tab by default)
//     cycle through matching folders while autocompletion is available
//
// Menu loading runs as a tea.Cmd; its result is handed back to the
// session from Update.
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - text input and key bindings
//   - github.com/charmbracelet/lipgloss - Styling
//
// Folder filtering uses github.com/sahilm/fuzzy.
package tui
