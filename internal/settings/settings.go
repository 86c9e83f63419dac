// Package settings holds the word counter's persisted record.
//
// DESIGN: Settings is a plain value owned by whoever loaded it. It is passed
// explicitly to the submitter and mutated only by the session loop or the
// settings editor; there is no package-level instance.
//
// FILES:
//   - settings.go: Settings record, defaults
//   - scope.go:    closed Scope variant and its YAML form
//   - store.go:    Store interface, YAML FileStore
//   - editor.go:   field setters that persist after every edit
package settings

// Settings is the persisted record.
type Settings struct {
	UserName         string `yaml:"user_name"`          // Beeminder user
	GoalName         string `yaml:"goal_name"`          // Beeminder goal slug
	AuthToken        string `yaml:"auth_token"`         // Beeminder personal auth token
	CurrentWordCount int    `yaml:"current_word_count"` // Last measured selection count
	EditingFileTitle string `yaml:"editing_file_title"` // Title of the last measured document
	Scope            Scope  `yaml:"scope"`              // What a datapoint measures
}

// Defaults returns the record used before anything is stored.
func Defaults() Settings {
	return Settings{
		UserName:         "Alice",
		GoalName:         "weight",
		AuthToken:        "",
		CurrentWordCount: 0,
		EditingFileTitle: "",
		Scope:            ScopeSelection,
	}
}

// normalize enforces CurrentWordCount >= 0.
func (s *Settings) normalize() {
	if s.CurrentWordCount < 0 {
		s.CurrentWordCount = 0
	}
}

// Measure records a selection measurement. It reports whether anything changed.
func (s *Settings) Measure(wordCount int, title string) bool {
	if wordCount < 0 {
		wordCount = 0
	}
	if s.CurrentWordCount == wordCount && s.EditingFileTitle == title {
		return false
	}
	s.CurrentWordCount = wordCount
	s.EditingFileTitle = title
	return true
}

// WithUserFields returns s with the four user-configurable fields taken from o.
// Measurement fields are kept.
func (s Settings) WithUserFields(o Settings) Settings {
	s.UserName = o.UserName
	s.GoalName = o.GoalName
	s.AuthToken = o.AuthToken
	s.Scope = o.Scope
	return s
}
