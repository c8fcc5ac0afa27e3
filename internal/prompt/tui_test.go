package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeText(t *testing.T, m tea.Model, text string) tea.Model {
	t.Helper()
	for _, r := range text {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m tea.Model, keyType tea.KeyType) (tea.Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: keyType})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func testTheme() Theme {
	return NewTheme(&bytes.Buffer{})
}

func TestTextModel_ValidatesAndRetries(t *testing.T) {
	var m tea.Model = newTextModel(TextPrompt{Message: "Enter your name:", Validate: ValidateName}, testTheme())

	m, cmd := press(m, tea.KeyEnter)
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Name cannot be empty")

	m = typeText(t, m, "Alex")
	assert.NotContains(t, m.View(), "Name cannot be empty")

	m, cmd = press(m, tea.KeyEnter)
	require.True(t, isQuit(cmd))

	tm := m.(textModel)
	assert.True(t, tm.done)
	assert.Equal(t, "Alex", tm.value)
	assert.Contains(t, m.View(), "Alex")
}

func TestTextModel_Default(t *testing.T) {
	var m tea.Model = newTextModel(TextPrompt{Message: "Name:", Default: "Alex"}, testTheme())

	m, cmd := press(m, tea.KeyEnter)
	require.True(t, isQuit(cmd))
	assert.Equal(t, "Alex", m.(textModel).value)
}

func TestTextModel_Interrupt(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		var m tea.Model = newTextModel(TextPrompt{Message: "Name:"}, testTheme())
		m, cmd := press(m, key)
		require.True(t, isQuit(cmd))
		assert.True(t, m.(textModel).interrupted)
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name     string
		def      bool
		key      tea.KeyMsg
		want     bool
		wantDone bool
	}{
		{name: "enter uses default yes", def: true, key: tea.KeyMsg{Type: tea.KeyEnter}, want: true, wantDone: true},
		{name: "enter uses default no", def: false, key: tea.KeyMsg{Type: tea.KeyEnter}, want: false, wantDone: true},
		{name: "y", def: false, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}}, want: true, wantDone: true},
		{name: "N", def: true, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'N'}}, want: false, wantDone: true},
		{name: "other rune ignored", def: true, key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, wantDone: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = newConfirmModel(ConfirmPrompt{Message: "Create this document?", Default: tt.def}, testTheme())
			m, cmd := m.Update(tt.key)

			cm := m.(confirmModel)
			assert.Equal(t, tt.wantDone, cm.done)
			assert.Equal(t, tt.wantDone, isQuit(cmd))
			if tt.wantDone {
				assert.Equal(t, tt.want, cm.value)
			}
		})
	}
}

func TestConfirmModel_View(t *testing.T) {
	m := newConfirmModel(ConfirmPrompt{Message: "Create this document?", Default: true}, testTheme())
	assert.Contains(t, m.View(), "(Y/n)")

	m.prompt.Default = false
	assert.Contains(t, m.View(), "(y/N)")
}

func TestConfirmModel_Interrupt(t *testing.T) {
	var m tea.Model = newConfirmModel(ConfirmPrompt{Message: "Create?"}, testTheme())
	m, cmd := press(m, tea.KeyEsc)
	require.True(t, isQuit(cmd))
	assert.True(t, m.(confirmModel).interrupted)
}

func TestSelectModel_EmptyQueryShowsAll(t *testing.T) {
	m := newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())

	assert.Equal(t, testChoices(), m.filtered)
	view := m.View()
	for _, c := range testChoices() {
		assert.Contains(t, view, c.Label)
	}
}

func TestSelectModel_FilterAndSelect(t *testing.T) {
	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())

	m = typeText(t, m, "bob")
	sm := m.(selectModel)
	require.Len(t, sm.filtered, 1)
	assert.NotContains(t, m.View(), "Jane Doe")

	m, cmd := press(m, tea.KeyEnter)
	require.True(t, isQuit(cmd))
	assert.Equal(t, "bob@example.com", m.(selectModel).selected.Value)
}

func TestSelectModel_Navigate(t *testing.T) {
	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())

	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown)
	m, _ = press(m, tea.KeyDown) // clamped at the last entry
	m, _ = press(m, tea.KeyUp)
	assert.Equal(t, 1, m.(selectModel).cursor)

	m, cmd := press(m, tea.KeyEnter)
	require.True(t, isQuit(cmd))
	assert.Equal(t, "bob@example.com", m.(selectModel).selected.Value)
}

func TestSelectModel_NoMatches(t *testing.T) {
	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())

	m = typeText(t, m, "zzz")
	assert.Contains(t, m.View(), "No matches")

	m, cmd := press(m, tea.KeyEnter)
	assert.False(t, isQuit(cmd))
	assert.False(t, m.(selectModel).done)
}

func TestSelectModel_CustomFilter(t *testing.T) {
	prefix := func(query string, choices []Choice) []Choice {
		var out []Choice
		for _, c := range choices {
			if strings.HasPrefix(c.Value, query) {
				out = append(out, c)
			}
		}
		return out
	}

	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices(), Filter: prefix}, testTheme())
	m = typeText(t, m, "jj")
	assert.Equal(t, []string{"jj@example.com"}, values(m.(selectModel).filtered))
}

func TestSelectModel_Interrupt(t *testing.T) {
	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())
	m, cmd := press(m, tea.KeyCtrlC)
	require.True(t, isQuit(cmd))
	assert.True(t, m.(selectModel).interrupted)
}

func TestSelectModel_TruncatesToWidth(t *testing.T) {
	var m tea.Model = newSelectModel(SelectPrompt{Message: "Pick:", Choices: testChoices()}, testTheme())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 12, Height: 20})

	view := m.View()
	assert.Contains(t, view, "…")
	assert.NotContains(t, view, "@example.com")
	for _, line := range strings.Split(view, "\n") {
		if strings.HasPrefix(line, "❯") || strings.HasPrefix(line, "  J") {
			assert.LessOrEqual(t, ansi.StringWidth(line), 12, line)
		}
	}
}
