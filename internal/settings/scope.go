package settings

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrUnknownScope is returned when a stored scope is neither SELECTION nor VAULT.
var ErrUnknownScope = errors.New("unknown word count scope")

// Scope selects what a datapoint measures.
type Scope uint8

const (
	// ScopeSelection submits the last measured text selection.
	ScopeSelection Scope = iota
	// ScopeVault submits the word count of every document in the vault.
	ScopeVault
)

// Scopes lists every scope in display order.
var Scopes = []Scope{ScopeSelection, ScopeVault}

// MatchScope calls the function for s. It panics on a value outside Scopes.
func MatchScope[T any](s Scope, selection func() T, vault func() T) T {
	switch s {
	case ScopeSelection:
		return selection()
	case ScopeVault:
		return vault()
	}
	panic(fmt.Sprintf("settings: invalid scope %d", s))
}

// String returns the stored name of the scope.
func (s Scope) String() string {
	switch s {
	case ScopeSelection:
		return "SELECTION"
	case ScopeVault:
		return "VAULT"
	}
	return fmt.Sprintf("Scope(%d)", s)
}

// ParseScope parses a stored scope name.
func ParseScope(name string) (Scope, error) {
	switch name {
	case "SELECTION":
		return ScopeSelection, nil
	case "VAULT":
		return ScopeVault, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScope, name)
}

// MarshalYAML implements yaml.Marshaler.
func (s Scope) MarshalYAML() (any, error) {
	if s != ScopeSelection && s != ScopeVault {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScope, s)
	}
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Scope) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseScope(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
