package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the operator cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the operator questions. The wizards depend on this
// interface so tests can script the answers.
type Prompter interface {
	// Select asks the operator to pick exactly one of choices.
	Select(prompt string, choices []string) (string, error)

	// MultiSelect asks the operator to pick zero or more of choices.
	MultiSelect(prompt string, choices []string) ([]string, error)

	// Input asks an open question, with an optional suggested answer.
	Input(prompt, suggestion string) (string, error)

	// Password asks for a secret without echoing it.
	Password(prompt string) (string, error)

	// Confirm asks a yes/no question.
	Confirm(prompt string) (bool, error)
}

// TerminalPrompter implements Prompter on the controlling terminal.
type TerminalPrompter struct{}

func (TerminalPrompter) Select(prompt string, choices []string) (string, error) {
	m := &selectModel{prompt: prompt, choices: choices}
	if err := runProgram(m); err != nil {
		return "", err
	}
	if m.aborted {
		return "", ErrAborted
	}
	return choices[m.cursor], nil
}

func (TerminalPrompter) MultiSelect(prompt string, choices []string) ([]string, error) {
	m := &multiSelectModel{prompt: prompt, choices: choices, checked: make(map[int]bool)}
	if err := runProgram(m); err != nil {
		return nil, err
	}
	if m.aborted {
		return nil, ErrAborted
	}

	var picked []string
	for i, choice := range choices {
		if m.checked[i] {
			picked = append(picked, choice)
		}
	}
	return picked, nil
}

func (TerminalPrompter) Input(prompt, suggestion string) (string, error) {
	m := newInputModel(prompt, suggestion, false)
	if err := runProgram(m); err != nil {
		return "", err
	}
	if m.aborted {
		return "", ErrAborted
	}

	answer := strings.TrimSpace(m.input.Value())
	if answer == "" {
		answer = suggestion
	}
	return answer, nil
}

func (TerminalPrompter) Password(prompt string) (string, error) {
	m := newInputModel(prompt, "", true)
	if err := runProgram(m); err != nil {
		return "", err
	}
	if m.aborted {
		return "", ErrAborted
	}
	return m.input.Value(), nil
}

func (p TerminalPrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Input(prompt+" [y/N]", "")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func runProgram(m tea.Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}

// selectModel is a single-choice list: up/down to move, enter to pick.
type selectModel struct {
	prompt  string
	choices []string
	cursor  int
	done    bool
	aborted bool
}

func (m *selectModel) Init() tea.Cmd { return nil }

func (m *selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *selectModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.prompt + "\n")
	for i, choice := range m.choices {
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render(" > "+choice) + "\n")
		} else {
			sb.WriteString("   " + choice + "\n")
		}
	}
	return sb.String()
}

// multiSelectModel is a checklist: space toggles, enter confirms.
type multiSelectModel struct {
	prompt  string
	choices []string
	checked map[int]bool
	cursor  int
	done    bool
	aborted bool
}

func (m *multiSelectModel) Init() tea.Cmd { return nil }

func (m *multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case " ":
		m.checked[m.cursor] = !m.checked[m.cursor]
	case "enter":
		m.done = true
		return m, tea.Quit
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *multiSelectModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.prompt + "\n")
	sb.WriteString(mutedStyle.Render("space: toggle, enter: confirm") + "\n")
	for i, choice := range m.choices {
		mark := "[ ]"
		if m.checked[i] {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf(" %s %s", mark, choice)
		if i == m.cursor {
			line = cursorStyle.Render(">") + line[1:]
		}
		sb.WriteString(line + "\n")
	}
	return sb.String()
}

// inputModel wraps a single text input line.
type inputModel struct {
	prompt  string
	input   textinput.Model
	done    bool
	aborted bool
}

func newInputModel(prompt, suggestion string, secret bool) *inputModel {
	ti := textinput.New()
	ti.Placeholder = suggestion
	ti.Focus()
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	return &inputModel{prompt: prompt, input: ti}
}

func (m *inputModel) Init() tea.Cmd { return textinput.Blink }

func (m *inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *inputModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return m.prompt + " " + m.input.View()
}
