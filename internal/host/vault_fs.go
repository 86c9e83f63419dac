package host

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FSVault is a vault backed by the markdown files under a directory.
// Hidden directories (".obsidian", ".git", ...) are skipped.
type FSVault struct {
	root string
	ext  string
}

// NewFSVault creates a vault rooted at dir.
func NewFSVault(dir string) *FSVault {
	return &FSVault{root: dir, ext: ".md"}
}

// Name returns the base name of the vault directory.
func (v *FSVault) Name() string {
	abs, err := filepath.Abs(v.root)
	if err != nil {
		return filepath.Base(v.root)
	}
	return filepath.Base(abs)
}

// Documents lists every markdown file, sorted by path.
func (v *FSVault) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), v.ext) {
			return nil
		}
		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return err
		}
		docs = append(docs, Document{Path: filepath.ToSlash(rel)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault '%s': %w", v.root, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

// Read returns the full text of a document.
func (v *FSVault) Read(ctx context.Context, doc Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(v.root, filepath.FromSlash(doc.Path)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var _ Vault = (*FSVault)(nil)
