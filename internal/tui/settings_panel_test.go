package tui

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2h4u/beeminder-wordcount/internal/settings"
)

func TestSettingsMenu_EditsPersistImmediately(t *testing.T) {
	store := settings.NewFileStore(filepath.Join(t.TempDir(), "settings.yaml"))
	st := settings.Defaults()
	st.CurrentWordCount = 7
	items := settingsMenu(settings.NewEditor(store, &st))

	require.NoError(t, items[panelUserName].edit("bob"))

	persisted, err := store.Load()
	require.NoError(t, err)
	want := settings.Defaults()
	want.CurrentWordCount = 7
	want.UserName = "bob"
	assert.Equal(t, want, persisted)
	assert.Equal(t, "bob", items[panelUserName].Description)

	require.NoError(t, items[panelAuthToken].edit("abcdef123"))
	persisted, _ = store.Load()
	assert.Equal(t, "abcdef123", persisted.AuthToken)
	assert.Equal(t, "bob", persisted.UserName)
}

func TestSettingsMenu_Layout(t *testing.T) {
	st := settings.Defaults()
	st.AuthToken = "secret-token"
	items := settingsMenu(settings.NewEditor(&settings.MemoryStore{}, &st))

	require.Len(t, items, 5)
	assert.True(t, items[panelAuthToken].Secret)
	assert.Equal(t, "********oken", items[panelAuthToken].display())
	assert.Equal(t, "Alice", items[panelUserName].display())
	assert.Equal(t, "weight", items[panelGoalName].display())
	assert.False(t, items[panelScope].Editable)
	assert.Equal(t, "SELECTION", items[panelScope].Description)
	assert.Equal(t, "Done", items[panelDone].Label)
}

func TestScopeMenu_MarksCurrent(t *testing.T) {
	items := scopeMenu(settings.ScopeVault)
	require.Len(t, items, len(settings.Scopes))
	assert.Equal(t, "SELECTION", items[0].Label)
	assert.Empty(t, items[0].Description)
	assert.Equal(t, "VAULT", items[1].Label)
	assert.Equal(t, "current", items[1].Description)
}

func TestMenuItem_EditErrorKeepsOldValue(t *testing.T) {
	item := MenuItem{
		Description: "old",
		Editable:    true,
		OnEdit:      func(string) error { return errors.New("disk full") },
	}
	assert.Error(t, item.edit("new"))
	assert.Equal(t, "old", item.Description)
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "****", Mask("abcd"))
	assert.Equal(t, "*bcde", Mask("abcde"))
	assert.Equal(t, "****ль12", Mask("пароль12"))
}
