package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// visibleChoices is how many list entries a select prompt renders at once.
const visibleChoices = 10

func isAbort(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc
}

func newInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	input.Focus()
	return input
}

// textModel reads one line of text.
type textModel struct {
	prompt TextPrompt
	theme  Theme
	input  textinput.Model

	errMsg      string
	value       string
	done        bool
	interrupted bool
}

func newTextModel(p TextPrompt, theme Theme) textModel {
	input := newInput()
	input.Placeholder = p.Default
	return textModel{prompt: p, theme: theme, input: input}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isAbort(key):
			m.interrupted = true
			return m, tea.Quit

		case key.Type == tea.KeyEnter:
			value := m.input.Value()
			if value == "" {
				value = m.prompt.Default
			}
			if m.prompt.Validate != nil {
				if err := m.prompt.Validate(value); err != nil {
					m.errMsg = err.Error()
					return m, nil
				}
			}
			m.value = value
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.errMsg = ""
	}
	return m, cmd
}

func (m textModel) View() string {
	question := m.theme.Question.Render("?") + " " + m.theme.Bold.Render(m.prompt.Message)
	if m.done {
		return question + " " + m.theme.Answer.Render(m.value) + "\n"
	}
	if m.interrupted {
		return question + "\n"
	}

	var b strings.Builder
	b.WriteString(question + " " + m.input.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(m.theme.Error.Render(">> "+m.errMsg) + "\n")
	}
	return b.String()
}

// confirmModel asks a yes/no question.
type confirmModel struct {
	prompt ConfirmPrompt
	theme  Theme

	value       bool
	done        bool
	interrupted bool
}

func newConfirmModel(p ConfirmPrompt, theme Theme) confirmModel {
	return confirmModel{prompt: p, theme: theme}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case isAbort(key):
		m.interrupted = true
		return m, tea.Quit
	case key.Type == tea.KeyEnter:
		m.value = m.prompt.Default
	case key.Type == tea.KeyRunes && len(key.Runes) == 1:
		switch key.Runes[0] {
		case 'y', 'Y':
			m.value = true
		case 'n', 'N':
			m.value = false
		default:
			return m, nil
		}
	default:
		return m, nil
	}

	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	question := m.theme.Question.Render("?") + " " + m.theme.Bold.Render(m.prompt.Message)
	if m.done {
		answer := "No"
		if m.value {
			answer = "Yes"
		}
		return question + " " + m.theme.Answer.Render(answer) + "\n"
	}
	if m.interrupted {
		return question + "\n"
	}
	return question + " " + m.theme.Faint.Render(yesNoHint(m.prompt.Default)) + " \n"
}

func yesNoHint(def bool) string {
	if def {
		return "(Y/n)"
	}
	return "(y/N)"
}

// selectModel filters a list as the operator types and returns the
// highlighted entry on enter.
type selectModel struct {
	prompt SelectPrompt
	theme  Theme
	input  textinput.Model

	filtered []Choice
	cursor   int
	width    int

	selected    Choice
	done        bool
	interrupted bool
}

func newSelectModel(p SelectPrompt, theme Theme) selectModel {
	return selectModel{
		prompt:   p,
		theme:    theme,
		input:    newInput(),
		filtered: p.filter(""),
	}
}

func (m selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case isAbort(key):
			m.interrupted = true
			return m, tea.Quit

		case key.Type == tea.KeyEnter:
			if len(m.filtered) == 0 {
				return m, nil
			}
			m.selected = m.filtered[m.cursor]
			m.done = true
			return m, tea.Quit

		case key.Type == tea.KeyUp || key.Type == tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Type == tea.KeyDown || key.Type == tea.KeyCtrlN:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filtered = m.prompt.filter(m.input.Value())
		m.cursor = 0
	}
	return m, cmd
}

func (m selectModel) View() string {
	question := m.theme.Question.Render("?") + " " + m.theme.Bold.Render(m.prompt.Message)
	if m.done {
		return question + " " + m.theme.Answer.Render(m.selected.Label) + "\n"
	}
	if m.interrupted {
		return question + "\n"
	}

	var b strings.Builder
	b.WriteString(question + " " + m.input.View() + "\n")

	if len(m.filtered) == 0 {
		b.WriteString(m.theme.Faint.Render("  No matches") + "\n")
	}

	start := 0
	if m.cursor >= visibleChoices {
		start = m.cursor - visibleChoices + 1
	}
	end := start + visibleChoices
	if end > len(m.filtered) {
		end = len(m.filtered)
	}
	for i := start; i < end; i++ {
		label := m.label(m.filtered[i])
		if i == m.cursor {
			b.WriteString(m.theme.Selected.Render("❯ "+label) + "\n")
		} else {
			b.WriteString("  " + label + "\n")
		}
	}

	if len(m.filtered) > visibleChoices {
		b.WriteString(m.theme.Faint.Render(fmt.Sprintf("  (%d of %d)", m.cursor+1, len(m.filtered))) + "\n")
	}
	b.WriteString(m.theme.Faint.Render("  ↑/↓ to move, enter to select, esc to cancel") + "\n")
	return b.String()
}

// label fits a choice on one terminal line once the width is known.
func (m selectModel) label(c Choice) string {
	if m.width <= 2 {
		return c.Label
	}
	return ansi.Truncate(c.Label, m.width-2, "…")
}
