package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store persists Settings.
type Store interface {
	// Load returns the stored record merged over Defaults.
	Load() (Settings, error)
	// Save replaces the stored record.
	Save(s Settings) error
}

// FileStore keeps Settings in a YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the settings file location.
func (f *FileStore) Path() string { return f.path }

// Load reads the file. A missing file yields Defaults.
func (f *FileStore) Load() (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read settings file '%s': %w", f.path, err)
	}

	// Unmarshal into the defaults so absent keys keep their default value.
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Defaults(), fmt.Errorf("failed to parse settings file '%s': %w", f.path, err)
	}
	s.normalize()
	return s, nil
}

// Save writes the whole record, replacing the file atomically.
func (f *FileStore) Save(s Settings) error {
	s.normalize()
	data, err := yaml.Marshal(&s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0750); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings file '%s': %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("failed to replace settings file '%s': %w", f.path, err)
	}
	return nil
}

// MemoryStore keeps Settings in memory. Saves counts how often Save was called.
type MemoryStore struct {
	Stored *Settings
	Saves  int
}

// Load returns the stored record or Defaults.
func (m *MemoryStore) Load() (Settings, error) {
	if m.Stored == nil {
		return Defaults(), nil
	}
	return *m.Stored, nil
}

// Save stores a copy of s.
func (m *MemoryStore) Save(s Settings) error {
	s.normalize()
	m.Stored = &s
	m.Saves++
	return nil
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
