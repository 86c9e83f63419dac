package tui

// TUI package provides interactive terminal UI components:
//   - Arrow-key menu selection with inline editable items
//   - Interactive prompts
//   - The settings panel

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// =============================================================================
// COLORS
// =============================================================================

const (
	ColorReset  = "\033[0m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
	ColorGreen  = "\033[0;32m"
	ColorBlue   = "\033[0;34m"
	ColorCyan   = "\033[0;36m"
	ColorYellow = "\033[1;33m"
	ColorRed    = "\033[0;31m"
)

// =============================================================================
// PRINT FUNCTIONS
// =============================================================================

// PrintHeader prints a styled section header.
func PrintHeader(title string) {
	fmt.Printf("\n%s%s========================================%s\n", ColorBold, ColorCyan, ColorReset)
	fmt.Printf("%s%s  %s%s\n", ColorBold, ColorCyan, title, ColorReset)
	fmt.Printf("%s%s========================================%s\n\n", ColorBold, ColorCyan, ColorReset)
}

// PrintSuccess prints a success message with green [OK] prefix.
func PrintSuccess(msg string) {
	fmt.Printf("%s[OK]%s %s\n", ColorGreen, ColorReset, msg)
}

// PrintInfo prints an info message with blue [INFO] prefix.
func PrintInfo(msg string) {
	fmt.Printf("%s[INFO]%s %s\n", ColorBlue, ColorReset, msg)
}

// PrintWarn prints a warning message with yellow [WARN] prefix.
func PrintWarn(msg string) {
	fmt.Printf("%s[WARN]%s %s\n", ColorYellow, ColorReset, msg)
}

// PrintError prints an error message with red [ERROR] prefix.
func PrintError(msg string) {
	fmt.Printf("%s[ERROR]%s %s\n", ColorRed, ColorReset, msg)
}

// =============================================================================
// MENU SELECTION
// =============================================================================

// MenuItem represents an item in a menu.
type MenuItem struct {
	Label       string // Display label
	Description string // Optional description (or current value for editable)
	Editable    bool   // If true, Enter prompts for a new value instead of returning
	Secret      bool   // Editable value is read without echo and shown masked

	// OnEdit is called with the new value of an editable item. Its error is
	// shown under the menu and the item keeps its old description.
	OnEdit func(value string) error
}

// display returns the description as rendered in the menu.
func (m MenuItem) display() string {
	if m.Secret && m.Description != "" {
		return Mask(m.Description)
	}
	return m.Description
}

// edit applies a new value to an editable item.
func (m *MenuItem) edit(value string) error {
	if m.OnEdit != nil {
		if err := m.OnEdit(value); err != nil {
			return err
		}
	}
	m.Description = value
	return nil
}

// clearValue typed at an edit prompt sets the item to the empty string.
const clearValue = "-"

// editInput interprets a line typed at an edit prompt. An empty line keeps the
// current value.
func editInput(input string) (string, bool) {
	switch input {
	case "":
		return "", false
	case clearValue:
		return "", true
	}
	return input, true
}

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

// SelectMenu displays an interactive arrow-key menu and returns the selected
// index of a non-editable item. Editable items are edited in place.
// Returns -1 and error if cancelled.
func SelectMenu(prompt string, items []MenuItem) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to select")
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return selectNumberedMenu(prompt, items)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return selectNumberedMenu(prompt, items)
	}
	defer func() { term.Restore(fd, oldState) }()

	selected := 0
	status := ""
	reader := stdin

	// prompt + blank + items + blank + status + help
	totalLines := 2 + len(items) + 3

	fmt.Print("\033[?25l")
	defer fmt.Print("\033[?25h")

	firstRender := true
	clearMenu := func() {
		fmt.Printf("\033[%dA", totalLines)
		for i := 0; i < totalLines; i++ {
			fmt.Print("\033[2K\n")
		}
		fmt.Printf("\033[%dA", totalLines)
	}
	renderMenu := func() {
		if !firstRender {
			fmt.Printf("\033[%dA", totalLines)
		}
		firstRender = false

		fmt.Print("\033[2K")
		fmt.Printf("\r%s%s%s%s\r\n\r\n", ColorBold, ColorCyan, prompt, ColorReset)
		for i, item := range items {
			fmt.Print("\033[2K")
			if i == selected {
				fmt.Printf("\r  %s❯%s %s%s%s", ColorGreen, ColorReset, ColorBold, item.Label, ColorReset)
			} else {
				fmt.Printf("\r    %s", item.Label)
			}
			if d := item.display(); d != "" {
				fmt.Printf(" %s- %s%s", ColorDim, d, ColorReset)
			}
			fmt.Print("\r\n")
		}
		fmt.Print("\033[2K\r\n")
		fmt.Printf("\033[2K\r  %s%s%s\r\n", ColorRed, status, ColorReset)
		fmt.Printf("\033[2K\r  %s[↑/↓] Navigate  [Enter] Select/Edit  [q/Esc] Cancel%s\r\n", ColorDim, ColorReset)
	}

	renderMenu()

	for {
		b, err := reader.ReadByte()
		if err != nil {
			return -1, err
		}

		switch b {
		case 27: // Escape or arrow key
			next, _ := reader.ReadByte()
			if next == '[' {
				switch arrow, _ := reader.ReadByte(); arrow {
				case 'A':
					if selected > 0 {
						selected--
					}
					renderMenu()
					continue
				case 'B':
					if selected < len(items)-1 {
						selected++
					}
					renderMenu()
					continue
				}
			}
			clearMenu()
			return -1, fmt.Errorf("cancelled")
		case 'q':
			clearMenu()
			return -1, fmt.Errorf("cancelled")
		case 'k':
			if selected > 0 {
				selected--
			}
			renderMenu()
		case 'j':
			if selected < len(items)-1 {
				selected++
			}
			renderMenu()
		case 13: // Enter
			if !items[selected].Editable {
				clearMenu()
				return selected, nil
			}

			// Leave raw mode so the user can type a line.
			clearMenu()
			term.Restore(fd, oldState)
			fmt.Print("\033[?25h")

			label := fmt.Sprintf("  %s❯%s %s%s%s %s(Enter keeps, %s clears)%s - ",
				ColorGreen, ColorReset, ColorBold, items[selected].Label, ColorReset, ColorDim, clearValue, ColorReset)
			var (
				input string
				err   error
			)
			if items[selected].Secret {
				input, err = PromptPassword(label)
			} else {
				input, err = PromptString(label)
			}
			if err != nil {
				return -1, err
			}
			fmt.Print("\033[1A\033[2K\r")

			status = ""
			if value, ok := editInput(input); ok {
				if err := items[selected].edit(value); err != nil {
					status = err.Error()
				}
			}

			oldState, _ = term.MakeRaw(fd)
			fmt.Print("\033[?25l")
			firstRender = true
			renderMenu()
		}
	}
}

// selectNumberedMenu is a fallback for non-interactive terminals.
func selectNumberedMenu(prompt string, items []MenuItem) (int, error) {
	fmt.Printf("\n%s%s%s%s\n\n", ColorBold, ColorCyan, prompt, ColorReset)

	for i, item := range items {
		fmt.Printf("  %s[%d]%s %s", ColorGreen, i+1, ColorReset, item.Label)
		if d := item.display(); d != "" {
			fmt.Printf(" %s- %s%s", ColorDim, d, ColorReset)
		}
		fmt.Println()
	}
	fmt.Printf("  %s[0]%s Cancel\n\n", ColorYellow, ColorReset)

	for {
		input, err := PromptString("Enter number: ")
		if err != nil {
			return -1, err
		}
		if input == "0" || input == "q" {
			return -1, fmt.Errorf("cancelled")
		}

		var num int
		if _, err := fmt.Sscanf(input, "%d", &num); err == nil && num >= 1 && num <= len(items) {
			item := &items[num-1]
			if item.Editable {
				input, err := PromptString(fmt.Sprintf("%s (Enter keeps, %s clears): ", item.Label, clearValue))
				if err != nil {
					return -1, err
				}
				if value, ok := editInput(input); ok {
					if err := item.edit(value); err != nil {
						PrintError(err.Error())
					}
				}
			}
			return num - 1, nil
		}
		fmt.Printf("Invalid choice. Enter 1-%d or 0 to cancel.\n", len(items))
	}
}

// =============================================================================
// PROMPTS
// =============================================================================

// stdin is shared so buffered input is not lost between prompts.
var stdin = bufio.NewReader(os.Stdin)

// PromptString prompts for a string input. Returns empty if skipped and
// io.EOF once stdin is exhausted.
func PromptString(prompt string) (string, error) {
	fmt.Print(prompt)
	return ReadLine()
}

// PromptPassword prompts for a secret (hidden input).
func PromptPassword(prompt string) (string, error) {
	fmt.Print(prompt)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err == nil {
			return strings.TrimSpace(string(password)), nil
		}
	}
	return ReadLine()
}

// ReadLine reads a line of input. A final line without a newline is returned
// without error; io.EOF is reported only when nothing was read.
func ReadLine() (string, error) {
	input, err := stdin.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
