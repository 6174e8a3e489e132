// Package config provides configuration types and loading for create-new.
//
// # Configuration Files
//
// Two layers are read, TOML or YAML by file extension:
//
//   - the user config: <user config dir>/create-new/config.{toml,yaml,yml},
//     or the file passed with --config
//   - per-root overrides: <root>/.create-new.{toml,yaml,yml}
//
// A per-root file is merged over the user config for that root only.
//
//	exclude = { "**/node_modules" = true, "**/.git" = false }
//	respect_gitignore = true
//	open_files = true
//	editor = "code --wait"
//
//	[keys]
//	auto_complete_next = "tab"
//	auto_complete_previous = "shift+tab"
//
// # Validation
//
// Load and ForRoot validate the merged result: exclude globs must be valid
// doublestar patterns and the two autocompletion keys must differ.
package config
