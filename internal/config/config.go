package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the configuration directory under the user config dir.
	AppName = "create-new"

	// UserConfigName is the base name of the user configuration file.
	UserConfigName = "config"

	// RootConfigName is the base name of the per-root override file.
	RootConfigName = ".create-new"

	DefaultNextKey     = "tab"
	DefaultPreviousKey = "shift+tab"
	DefaultEditor      = "vi"
)

// configExtensions lists the recognized config file extensions in lookup order.
var configExtensions = []string{".toml", ".yaml", ".yml"}

// DefaultExclude mirrors the files.exclude defaults of common editors.
func DefaultExclude() map[string]bool {
	return map[string]bool{
		"**/.git":      true,
		"**/.svn":      true,
		"**/.hg":       true,
		"**/CVS":       true,
		"**/.DS_Store": true,
		"**/Thumbs.db": true,
	}
}

// Keys holds the key bindings of the autocompletion commands.
type Keys struct {
	AutoCompleteNext     string `toml:"auto_complete_next" yaml:"auto_complete_next"`
	AutoCompletePrevious string `toml:"auto_complete_previous" yaml:"auto_complete_previous"`
}

// Config is the resolved configuration for one invocation or one workspace root.
type Config struct {
	Exclude          map[string]bool
	RespectGitignore bool
	OpenFiles        bool
	Editor           string
	Keys             Keys
}

// fileConfig is the on-disk shape. Unset scalars keep the value they override.
type fileConfig struct {
	Exclude          map[string]bool `toml:"exclude" yaml:"exclude"`
	RespectGitignore *bool           `toml:"respect_gitignore" yaml:"respect_gitignore"`
	OpenFiles        *bool           `toml:"open_files" yaml:"open_files"`
	Editor           string          `toml:"editor" yaml:"editor"`
	Keys             Keys            `toml:"keys" yaml:"keys"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Exclude:          DefaultExclude(),
		RespectGitignore: true,
		OpenFiles:        true,
		Keys: Keys{
			AutoCompleteNext:     DefaultNextKey,
			AutoCompletePrevious: DefaultPreviousKey,
		},
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Exclude = maps.Clone(c.Exclude)
	return &clone
}

// apply merges f over c. Exclude entries are merged key by key so an override
// file can both add globs and disable inherited ones.
func (c *Config) apply(f *fileConfig) {
	if c.Exclude == nil {
		c.Exclude = make(map[string]bool)
	}
	for glob, enabled := range f.Exclude {
		c.Exclude[glob] = enabled
	}
	if f.RespectGitignore != nil {
		c.RespectGitignore = *f.RespectGitignore
	}
	if f.OpenFiles != nil {
		c.OpenFiles = *f.OpenFiles
	}
	if f.Editor != "" {
		c.Editor = f.Editor
	}
	if f.Keys.AutoCompleteNext != "" {
		c.Keys.AutoCompleteNext = f.Keys.AutoCompleteNext
	}
	if f.Keys.AutoCompletePrevious != "" {
		c.Keys.AutoCompletePrevious = f.Keys.AutoCompletePrevious
	}
}

// ExcludeGlobs returns the enabled exclude globs, sorted.
func (c *Config) ExcludeGlobs() []string {
	var globs []string
	for glob, enabled := range c.Exclude {
		if enabled {
			globs = append(globs, glob)
		}
	}
	slices.Sort(globs)
	return globs
}

// EditorCommand returns the command line used to open files:
// the configured editor, then $VISUAL, then $EDITOR, then vi.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return DefaultEditor
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	for glob := range c.Exclude {
		if !doublestar.ValidatePattern(glob) {
			return fmt.Errorf("invalid exclude glob %q", glob)
		}
	}

	if c.Keys.AutoCompleteNext == "" || c.Keys.AutoCompletePrevious == "" {
		return fmt.Errorf("autocompletion keys cannot be empty")
	}
	if c.Keys.AutoCompleteNext == c.Keys.AutoCompletePrevious {
		return fmt.Errorf("auto_complete_next and auto_complete_previous are both bound to %q", c.Keys.AutoCompleteNext)
	}

	return nil
}

// Paths holds the configured paths
type Paths struct {
	ConfigDir string
	// StateDir holds the creation history.
	StateDir string
}

// DefaultPaths returns the default path configuration
func DefaultPaths() *Paths {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.TempDir(), AppName)
	} else {
		dir = filepath.Join(dir, AppName)
	}
	return &Paths{ConfigDir: dir, StateDir: stateDir()}
}

// stateDir follows $XDG_STATE_HOME, falling back to ~/.local/state.
func stateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppName, "state")
	}
	return filepath.Join(home, ".local", "state", AppName)
}

// Load reads the configuration at path over the defaults. An empty path looks
// up config.toml, config.yaml or config.yml in the user config directory; a
// missing file is not an error in that case.
func Load(paths *Paths, path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile(paths.ConfigDir, UserConfigName)
		if path == "" {
			return cfg, nil
		}
	}

	f, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	cfg.apply(f)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// ForRoot returns the configuration for a workspace root: c with the root's
// .create-new.{toml,yaml,yml} applied, if present.
func (c *Config) ForRoot(root string) (*Config, error) {
	path := findConfigFile(root, RootConfigName)
	if path == "" {
		return c, nil
	}

	f, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	merged := c.Clone()
	merged.apply(f)

	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return merged, nil
}

func findConfigFile(dir, base string) string {
	for _, ext := range configExtensions {
		path := filepath.Join(dir, base+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

func decodeFile(path string) (*fileConfig, error) {
	var f fileConfig

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &f, nil
}
