package tui

import (
	"fmt"

	"github.com/j2h4u/beeminder-wordcount/internal/settings"
)

const (
	panelAuthToken = iota
	panelUserName
	panelGoalName
	panelScope
	panelDone
)

// settingsMenu builds the panel items. Each editable item persists through
// the editor as soon as it changes.
func settingsMenu(e *settings.Editor) []MenuItem {
	st := e.Settings()
	items := make([]MenuItem, panelDone+1)
	items[panelAuthToken] = MenuItem{
		Label:       "Beeminder auth_token",
		Description: st.AuthToken,
		Editable:    true,
		Secret:      true,
		OnEdit:      e.SetAuthToken,
	}
	items[panelUserName] = MenuItem{
		Label:       "Beeminder user name",
		Description: st.UserName,
		Editable:    true,
		OnEdit:      e.SetUserName,
	}
	items[panelGoalName] = MenuItem{
		Label:       "Beeminder goal name",
		Description: st.GoalName,
		Editable:    true,
		OnEdit:      e.SetGoalName,
	}
	items[panelScope] = MenuItem{
		Label:       "Word count scope",
		Description: st.Scope.String(),
	}
	items[panelDone] = MenuItem{Label: "Done"}
	return items
}

// scopeMenu builds the dropdown for the scope setting.
func scopeMenu(current settings.Scope) []MenuItem {
	items := make([]MenuItem, len(settings.Scopes))
	for i, sc := range settings.Scopes {
		items[i] = MenuItem{Label: sc.String()}
		if sc == current {
			items[i].Description = "current"
		}
	}
	return items
}

// EditSettings shows the settings panel until the user picks Done or cancels.
func EditSettings(e *settings.Editor) error {
	PrintHeader("Settings for the Beeminder word count")

	for {
		idx, err := SelectMenu("Select a setting to change", settingsMenu(e))
		if err != nil {
			// Cancelling leaves the panel; every edit is already saved.
			return nil
		}

		switch idx {
		case panelScope:
			choice, err := SelectMenu("Word count scope", scopeMenu(e.Settings().Scope))
			if err != nil {
				continue
			}
			if err := e.SetScope(settings.Scopes[choice]); err != nil {
				return err
			}
			PrintSuccess(fmt.Sprintf("Scope set to %s", settings.Scopes[choice]))
		case panelDone:
			return nil
		}
	}
}
