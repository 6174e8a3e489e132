// Package testutil provides test fixtures and utilities.
//
// # Workspaces
//
// NewWorkspace builds a throwaway tree of workspace roots in t.TempDir():
//
//	ws := testutil.NewWorkspace(t, "project", "src/", "src/main.go", "docs/")
//	ws.AddRoot("other", "lib/")
//	ws.Path("src/main.go") // absolute path below the first root
//
// # Fixtures
//
// Configuration and ignore-file fixtures are embedded using go:embed:
//
//	fixtures/config.toml
//	fixtures/config.yaml
//	fixtures/invalid_config.toml
//	fixtures/gitignore
//
// CopyFixture writes one of them into a test tree:
//
//	testutil.CopyFixture(t, "gitignore", ws.Path(".gitignore"))
package testutil
