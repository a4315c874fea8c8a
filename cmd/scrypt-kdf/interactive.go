package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fanatid/scrypt-bridge/binding"
	"github.com/fanatid/scrypt-bridge/engine"
	"github.com/fanatid/scrypt-bridge/hostlocal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateInput modelState = iota
	stateResult
)

// field order: password, N, r, p, keylen
const (
	fieldPassword = iota
	fieldN
	fieldR
	fieldP
	fieldKeyLen
	fieldCount
)

type interactiveModel struct {
	err      error
	result   string
	saltHex  string
	inputs   []textinput.Model
	focusIdx int
	state    modelState
}

func newInteractiveModel() *interactiveModel {
	labels := [fieldCount]struct {
		placeholder string
		initial     string
	}{
		fieldPassword: {placeholder: "password"},
		fieldN:        {initial: "16384"},
		fieldR:        {initial: "8"},
		fieldP:        {initial: "1"},
		fieldKeyLen:   {initial: "64"},
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = labels[i].placeholder
		in.SetValue(labels[i].initial)
		in.CharLimit = 64
		inputs[i] = in
	}
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].Focus()

	return &interactiveModel{inputs: inputs}
}

type derivedMsg struct {
	err     error
	keyHex  string
	saltHex string
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) derive() tea.Msg {
	n, err := strconv.Atoi(m.inputs[fieldN].Value())
	if err != nil {
		return derivedMsg{err: fmt.Errorf("N: %w", err)}
	}
	r, err := strconv.Atoi(m.inputs[fieldR].Value())
	if err != nil {
		return derivedMsg{err: fmt.Errorf("r: %w", err)}
	}
	p, err := strconv.Atoi(m.inputs[fieldP].Value())
	if err != nil {
		return derivedMsg{err: fmt.Errorf("p: %w", err)}
	}
	keyLen, err := strconv.Atoi(m.inputs[fieldKeyLen].Value())
	if err != nil {
		return derivedMsg{err: fmt.Errorf("keylen: %w", err)}
	}

	table := hostlocal.NewTable()
	defer table.Close()

	cfg := binding.DefaultConfig()
	cfg.KeyLen = keyLen
	b, errVal := binding.New(&engine.Scrypt{}, table.Factory(), binding.WithConfig(cfg))
	if errVal != nil {
		return derivedMsg{err: errVal}
	}

	salt, code := engine.RandomSalt(32)
	if code != engine.StatusOK {
		return derivedMsg{err: fmt.Errorf("salt generation failed (scrypt status %d)", code)}
	}

	key, errVal := b.KDF(
		map[string]any{"N": n, "r": r, "p": p},
		m.inputs[fieldPassword].Value(),
		salt,
	)
	if errVal != nil {
		return derivedMsg{err: errVal}
	}

	return derivedMsg{
		keyHex:  hex.EncodeToString(key.Bytes()),
		saltHex: hex.EncodeToString(salt),
	}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "q":
			if m.state == stateResult {
				return m, tea.Quit
			}
		case "tab", "down":
			if m.state == stateInput {
				m.setFocus((m.focusIdx + 1) % fieldCount)
				return m, nil
			}
		case "shift+tab", "up":
			if m.state == stateInput {
				m.setFocus((m.focusIdx + fieldCount - 1) % fieldCount)
				return m, nil
			}
		case "enter":
			if m.state == stateInput {
				return m, m.derive
			}
			m.state = stateInput
			m.result, m.saltHex, m.err = "", "", nil
			m.setFocus(fieldPassword)
			return m, nil
		}

	case derivedMsg:
		m.state = stateResult
		m.err = msg.err
		m.result = msg.keyHex
		m.saltHex = msg.saltHex
		return m, nil
	}

	if m.state == stateInput {
		var cmd tea.Cmd
		m.inputs[m.focusIdx], cmd = m.inputs[m.focusIdx].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *interactiveModel) setFocus(idx int) {
	m.inputs[m.focusIdx].Blur()
	m.focusIdx = idx
	m.inputs[idx].Focus()
}

func (m *interactiveModel) View() string {
	s := titleStyle.Render("scrypt-kdf") + "\n\n"

	if m.state == stateResult {
		if m.err != nil {
			s += errorStyle.Render("Error: "+m.err.Error()) + "\n\n"
		} else {
			s += labelStyle.Render("salt") + "  " + resultStyle.Render(m.saltHex) + "\n"
			s += labelStyle.Render("key") + "   " + resultStyle.Render(m.result) + "\n\n"
		}
		s += helpStyle.Render("enter: again • q/esc: quit")
		return s
	}

	names := [fieldCount]string{"password", "N", "r", "p", "keylen"}
	for i, in := range m.inputs {
		s += labelStyle.Render(fmt.Sprintf("%-9s", names[i])) + in.View() + "\n"
	}
	s += "\n" + helpStyle.Render("tab: next field • enter: derive • esc: quit")
	return s
}

func runInteractive() error {
	_, err := tea.NewProgram(newInteractiveModel()).Run()
	return err
}
