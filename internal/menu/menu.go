// Package menu builds the list of destination folders the picker starts with.
package menu

import (
	"context"

	"github.com/firefly-engineering/create-new/internal/workspace"
)

// Descriptions shown next to shortcut entries.
const (
	DescriptionRoot   = "workspace root"
	DescriptionActive = "active folder"
)

// Kind tells folders and separators apart.
type Kind int

const (
	KindFolder Kind = iota
	KindSeparator
)

// Item is one menu entry. Separators carry no label or path.
type Item struct {
	Kind        Kind
	Label       string
	Path        string
	Description string
}

// Folder returns a folder item.
func Folder(label, path, description string) Item {
	return Item{Kind: KindFolder, Label: label, Path: path, Description: description}
}

// Separator returns a separator item.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// IsSeparator reports whether the item is a separator.
func (i Item) IsSeparator() bool {
	return i.Kind == KindSeparator
}

// IsRoot reports whether the item is a workspace root shortcut.
func (i Item) IsRoot() bool {
	return i.Kind == KindFolder && i.Description == DescriptionRoot
}

// Build returns the menu for ws: one shortcut per root, then the active
// folder shortcut when activeFile is set and lies below a root, then a
// separator and every indexed folder. The separator is left out when no
// root has indexed folders.
func Build(ctx context.Context, ws *workspace.Workspace, activeFile string) ([]Item, error) {
	items := make([]Item, 0, len(ws.Roots)+2)
	for _, r := range ws.Roots {
		items = append(items, Folder(ws.RootLabel(r), r.Path, DescriptionRoot))
	}

	if activeFile != "" {
		if f, ok := ws.ActiveFolder(activeFile); ok {
			items = append(items, Folder(f.Label, f.Path, DescriptionActive))
		}
	}

	var folders []Item
	for _, r := range ws.Roots {
		fs, err := ws.Folders(ctx, r)
		if err != nil {
			return nil, err
		}
		for _, f := range fs {
			folders = append(folders, Folder(f.Label, f.Path, ""))
		}
	}

	if len(folders) == 0 {
		return items, nil
	}
	items = append(items, Separator())
	return append(items, folders...), nil
}
