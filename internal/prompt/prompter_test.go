package prompt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/teemow/oneonone/internal/directory"
)

func newPlainPrompter(input string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	return New(strings.NewReader(input), &out, WithInteractive(false)), &out
}

func TestNew_DetectsNonTerminal(t *testing.T) {
	p := New(strings.NewReader(""), io.Discard)
	assert.False(t, p.Interactive())
}

func TestYourName_RepromptsOnBlank(t *testing.T) {
	p, out := newPlainPrompter("\n   \n  Alex  \n")

	name, err := p.YourName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alex", name)
	assert.Equal(t, 2, strings.Count(out.String(), "Name cannot be empty"))
	assert.Contains(t, out.String(), "Enter your name:")
}

func TestYourName_EOF(t *testing.T) {
	p, _ := newPlainPrompter("")

	_, err := p.YourName(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestSelectCollaborator_NoCandidatesAsksForEmail(t *testing.T) {
	p, out := newPlainPrompter("not-an-email\na@b.co\n")

	email, err := p.SelectCollaborator(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "a@b.co", email)
	assert.Contains(t, out.String(), "Enter the email address of the person to invite:")
	assert.Contains(t, out.String(), "Please enter a valid email address")
}

func TestSelectCollaborator_ByNumber(t *testing.T) {
	candidates := []directory.Collaborator{
		{Email: "jane.doe@example.com", DisplayName: "Jane Doe"},
		{Email: "bob@example.com", DisplayName: "Bob Smith"},
	}
	p, out := newPlainPrompter("2\n")

	email, err := p.SelectCollaborator(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
	assert.Contains(t, out.String(), "Jane Doe (jane.doe@example.com)")
	assert.Contains(t, out.String(), "Search and select the person to invite:")
}

func TestSelectCollaborator_SearchThenPick(t *testing.T) {
	candidates := []directory.Collaborator{
		{Email: "jane.doe@example.com", DisplayName: "Jane Doe"},
		{Email: "bob@example.com", DisplayName: "Bob Smith"},
	}
	p, out := newPlainPrompter("9\nzzz\nbob\n1\n")

	email, err := p.SelectCollaborator(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
	assert.Contains(t, out.String(), "Please enter a number between 1 and 2")
	assert.Contains(t, out.String(), "No matches")
}

func TestConfirm(t *testing.T) {
	body := strings.Repeat("あ", 150)

	tests := []struct {
		input string
		want  bool
	}{
		{"\n", true},
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"maybe\nno\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p, out := newPlainPrompter(tt.input)

			ok, err := p.Confirm(context.Background(), Summary{
				Title:  "1on1 - 2024-03-01 - jane.doe",
				Editor: "jane.doe@example.com",
				Body:   body,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)

			text := out.String()
			assert.Contains(t, text, "Document Details:")
			assert.Contains(t, text, "1on1 - 2024-03-01 - jane.doe")
			assert.Contains(t, text, "jane.doe@example.com")
			assert.Contains(t, text, strings.Repeat("あ", 100)+"...")
			assert.NotContains(t, text, strings.Repeat("あ", 101))
			assert.Contains(t, text, "Create this document?")
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short...", Preview("short"))
	assert.Equal(t, strings.Repeat("x", 100)+"...", Preview(strings.Repeat("x", 120)))
}

func TestAsk_Dispatch(t *testing.T) {
	p, _ := newPlainPrompter("hello\nn\n1\n")
	ctx := context.Background()

	v, err := p.Ask(ctx, TextPrompt{Message: "Say:"})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	v, err = p.Ask(ctx, ConfirmPrompt{Message: "Sure?", Default: true})
	require.NoError(t, err)
	assert.Equal(t, "false", v)

	v, err = p.Ask(ctx, SelectPrompt{Message: "Pick:", Choices: testChoices()})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe@example.com", v)
}

func TestAskSelect_NoChoices(t *testing.T) {
	p, _ := newPlainPrompter("")
	_, err := p.AskSelect(context.Background(), SelectPrompt{Message: "Pick:"})
	assert.Error(t, err)
}

func TestAskText_ContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	p := New(pr, io.Discard, WithInteractive(false))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.AskText(ctx, TextPrompt{Message: "Name:"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKinds(t *testing.T) {
	assert.Equal(t, KindText, TextPrompt{}.Kind())
	assert.Equal(t, KindConfirm, ConfirmPrompt{}.Kind())
	assert.Equal(t, KindSelect, SelectPrompt{}.Kind())
}

func TestClose_StopsLineReader(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	// More lines than prompts, so the reader is left waiting to hand one over.
	p, _ := newPlainPrompter("Alex\nleft\nover\n")

	name, err := p.YourName(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Alex", name)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
}

func TestClose_BeforeAnyPrompt(t *testing.T) {
	p, _ := newPlainPrompter("")
	assert.NoError(t, p.Close())
}
