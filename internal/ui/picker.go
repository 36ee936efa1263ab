package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Choice is one entry of an interactive list.
type Choice struct {
	Label  string // e.g. wallet name
	Detail string // shown dimmed, e.g. address
	Value  string
}

// ErrNoChoices is returned when there is nothing to pick from.
var ErrNoChoices = errors.New("no items to pick from")

type pickerModel struct {
	title    string
	choices  []Choice
	cursor   int
	picked   *Choice
	canceled bool
}

func newPicker(title string, choices []Choice, current string) pickerModel {
	m := pickerModel{title: title, choices: choices}
	for i, c := range choices {
		if c.Value == current {
			m.cursor = i
		}
	}
	return m
}

func (m pickerModel) Init() tea.Cmd { return nil }

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter", " ":
		c := m.choices[m.cursor]
		m.picked = &c
		return m, tea.Quit
	}
	return m, nil
}

func (m pickerModel) View() string {
	if m.canceled || m.picked != nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n" + StyleTitle.Render("  "+m.title) + "\n\n")
	for i, c := range m.choices {
		line := "    " + StyleValue.Render(c.Label)
		if c.Detail != "" {
			line += "  " + StyleMeta.Render(c.Detail)
		}
		if i == m.cursor {
			line = StyleSelected.Render("  ▸ " + c.Label + "  " + c.Detail)
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + StyleMeta.Render("  [ ↑↓ / jk ] move   [ enter ] select   [ q ] cancel") + "\n")
	return sb.String()
}

// Pick runs the list and returns the chosen Value, or "" when canceled.
// The entry whose Value equals current starts selected.
func Pick(title string, choices []Choice, current string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}
	final, err := tea.NewProgram(newPicker(title, choices, current)).Run()
	if err != nil {
		return "", fmt.Errorf("picker: %w", err)
	}
	m := final.(pickerModel)
	if m.picked == nil {
		return "", nil
	}
	return m.picked.Value, nil
}
