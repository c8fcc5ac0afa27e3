package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/teemow/oneonone/internal/directory"
)

// previewLength is how many characters of the body the confirmation shows.
const previewLength = 100

// Prompter asks questions on a pair of streams.
type Prompter struct {
	in          io.Reader
	out         io.Writer
	theme       Theme
	interactive bool
	lines       *lineReader
}

// Option configures a Prompter.
type Option func(*Prompter)

// WithInteractive forces terminal (true) or line (false) mode instead of
// detecting it from the input stream.
func WithInteractive(interactive bool) Option {
	return func(p *Prompter) {
		p.interactive = interactive
	}
}

// New creates a Prompter reading from in and writing to out. Terminal mode
// is used when in is a terminal.
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:          in,
		out:         out,
		theme:       NewTheme(out),
		interactive: isTerminal(in),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Interactive reports whether prompts run as terminal programs.
func (p *Prompter) Interactive() bool {
	return p.interactive
}

// Close stops the line reader used for non-terminal input. The Prompter must
// not be used afterwards.
func (p *Prompter) Close() error {
	if p.lines != nil {
		p.lines.close()
	}
	return nil
}

// AskText asks a TextPrompt until the answer validates.
func (p *Prompter) AskText(ctx context.Context, q TextPrompt) (string, error) {
	if !p.interactive {
		return p.plainText(ctx, q)
	}

	final, err := p.run(ctx, newTextModel(q, p.theme))
	if err != nil {
		return "", err
	}
	m := final.(textModel)
	if m.interrupted {
		return "", ErrInterrupted
	}
	return m.value, nil
}

// AskConfirm asks a ConfirmPrompt.
func (p *Prompter) AskConfirm(ctx context.Context, q ConfirmPrompt) (bool, error) {
	if !p.interactive {
		return p.plainConfirm(ctx, q)
	}

	final, err := p.run(ctx, newConfirmModel(q, p.theme))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.interrupted {
		return false, ErrInterrupted
	}
	return m.value, nil
}

// AskSelect asks a SelectPrompt and returns the Value of the chosen entry.
func (p *Prompter) AskSelect(ctx context.Context, q SelectPrompt) (string, error) {
	if len(q.Choices) == 0 {
		return "", errors.New("select prompt has no choices")
	}
	if !p.interactive {
		return p.plainSelect(ctx, q)
	}

	final, err := p.run(ctx, newSelectModel(q, p.theme))
	if err != nil {
		return "", err
	}
	m := final.(selectModel)
	if m.interrupted {
		return "", ErrInterrupted
	}
	return m.selected.Value, nil
}

// Ask dispatches on the prompt kind. Confirm answers are "true" or "false".
func (p *Prompter) Ask(ctx context.Context, q Prompt) (string, error) {
	switch q := q.(type) {
	case TextPrompt:
		return p.AskText(ctx, q)
	case ConfirmPrompt:
		ok, err := p.AskConfirm(ctx, q)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%t", ok), nil
	case SelectPrompt:
		return p.AskSelect(ctx, q)
	default:
		return "", fmt.Errorf("unsupported prompt %T", q)
	}
}

func (p *Prompter) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
		tea.WithoutSignalHandler(),
	)

	final, err := program.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, tea.ErrInterrupted) {
			return nil, ErrInterrupted
		}
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final, nil
}

// YourName asks for the operator's name.
func (p *Prompter) YourName(ctx context.Context) (string, error) {
	name, err := p.AskText(ctx, TextPrompt{
		Message:  "Enter your name:",
		Validate: ValidateName,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

// SelectCollaborator returns the email of the person to share with. With no
// candidates the operator types an address; otherwise they search the list.
func (p *Prompter) SelectCollaborator(ctx context.Context, candidates []directory.Collaborator) (string, error) {
	var q Prompt = SelectPrompt{
		Message: "Search and select the person to invite:",
		Choices: CollaboratorChoices(candidates),
	}
	if len(candidates) == 0 {
		q = TextPrompt{
			Message:  "Enter the email address of the person to invite:",
			Validate: ValidateEmail,
		}
	}
	return p.Ask(ctx, q)
}

// CollaboratorChoices turns candidates into "Name (email)" choices matched
// on "name email".
func CollaboratorChoices(candidates []directory.Collaborator) []Choice {
	choices := make([]Choice, len(candidates))
	for i, c := range candidates {
		choices[i] = Choice{
			Label:      c.Label(),
			Value:      c.Email,
			FilterText: c.DisplayName + " " + c.Email,
		}
	}
	return choices
}

// Confirm shows the document details and asks whether to create it.
func (p *Prompter) Confirm(ctx context.Context, s Summary) (bool, error) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.theme.Bold.Render("Document Details:"))
	fmt.Fprintln(p.out, p.theme.Faint.Render("Title:"), s.Title)
	fmt.Fprintln(p.out, p.theme.Faint.Render("Editor:"), s.Editor)
	fmt.Fprintln(p.out, p.theme.Faint.Render("Initial content preview:"))
	fmt.Fprintln(p.out, p.theme.Faint.Render(Preview(s.Body)))

	return p.AskConfirm(ctx, ConfirmPrompt{
		Message: "Create this document?",
		Default: true,
	})
}

// Preview returns the first 100 characters of body followed by "...".
func Preview(body string) string {
	runes := []rune(body)
	if len(runes) > previewLength {
		runes = runes[:previewLength]
	}
	return string(runes) + "..."
}
