package host

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// SelectionFile is a Workspace whose active view is published by an editor
// hook as a small JSON document:
//
//	{"title": "Chapter 3", "selection": "the selected text"}
//
// A missing file, invalid JSON or a missing title means no view is focused.
type SelectionFile struct {
	path string
}

// NewSelectionFile creates a workspace reading the given file on every call.
func NewSelectionFile(path string) *SelectionFile {
	return &SelectionFile{path: path}
}

// Path returns the file location.
func (s *SelectionFile) Path() string { return s.path }

// ActiveView reads the file and returns the view it describes.
func (s *SelectionFile) ActiveView() (View, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil || !gjson.ValidBytes(data) {
		return nil, false
	}

	title := gjson.GetBytes(data, "title")
	if !title.Exists() {
		return nil, false
	}
	return StaticView{
		DisplayTitle: title.String(),
		Selected:     gjson.GetBytes(data, "selection").String(),
	}, true
}

// Publish writes the active view to the file, replacing what was there.
func (s *SelectionFile) Publish(title, selection string) error {
	doc, err := sjson.Set(`{}`, "title", title)
	if err != nil {
		return fmt.Errorf("failed to encode title: %w", err)
	}
	doc, err = sjson.Set(doc, "selection", selection)
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0750); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(doc), 0600); err != nil {
		return fmt.Errorf("failed to write selection file '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace selection file '%s': %w", s.path, err)
	}
	return nil
}

// Clear removes the file so no view is considered active.
func (s *SelectionFile) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

var _ Workspace = (*SelectionFile)(nil)
