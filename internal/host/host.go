// Package host defines the editor capabilities the word counter depends on.
//
// DESIGN: The counter never reaches into an editor directly. Everything it
// needs (the focused view and its selection, the document collection) is an
// interface here so the poller and submitter can be driven by fakes in tests
// and by the filesystem adapters in the CLI.
//
// FILES:
//   - host.go:           Workspace, View, Vault, Document
//   - vault_fs.go:       FSVault, markdown files under a directory
//   - selection_file.go: SelectionFile, active view published as JSON by an editor hook
package host

import "context"

// View is an editable document view with an optional text selection.
type View interface {
	// Title is the display title of the document shown in the view.
	Title() string
	// Selection returns the selected text, or "" when nothing is selected.
	Selection() string
}

// Workspace exposes the currently focused editable view.
type Workspace interface {
	// ActiveView returns the focused view. ok is false when no editable view is focused.
	ActiveView() (view View, ok bool)
}

// Document identifies one text document in a vault.
type Document struct {
	Path string // Path relative to the vault root
}

// Vault is the user's collection of text documents.
type Vault interface {
	Name() string
	Documents(ctx context.Context) ([]Document, error)
	Read(ctx context.Context, doc Document) (string, error)
}

// StaticView is a fixed View value.
type StaticView struct {
	DisplayTitle string
	Selected     string
}

func (v StaticView) Title() string     { return v.DisplayTitle }
func (v StaticView) Selection() string { return v.Selected }
