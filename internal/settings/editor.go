package settings

import "fmt"

// Editor applies settings panel edits. Every setter mutates the record in
// place and then saves the whole record.
type Editor struct {
	store    Store
	settings *Settings
}

// NewEditor binds an editor to a record and the store that persists it.
func NewEditor(store Store, s *Settings) *Editor {
	return &Editor{store: store, settings: s}
}

// Settings returns the edited record.
func (e *Editor) Settings() *Settings { return e.settings }

func (e *Editor) SetAuthToken(v string) error { return e.apply(func(s *Settings) { s.AuthToken = v }) }
func (e *Editor) SetUserName(v string) error  { return e.apply(func(s *Settings) { s.UserName = v }) }
func (e *Editor) SetGoalName(v string) error  { return e.apply(func(s *Settings) { s.GoalName = v }) }
func (e *Editor) SetScope(v Scope) error      { return e.apply(func(s *Settings) { s.Scope = v }) }

func (e *Editor) apply(mutate func(*Settings)) error {
	mutate(e.settings)
	if err := e.store.Save(*e.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
