package prompt

import "errors"

// ErrInterrupted is returned when the operator aborts a prompt.
var ErrInterrupted = errors.New("prompt interrupted")

// Kind identifies a prompt variant.
type Kind string

const (
	KindText    Kind = "text"
	KindConfirm Kind = "confirm"
	KindSelect  Kind = "select"
)

// Prompt is implemented by TextPrompt, ConfirmPrompt and SelectPrompt.
type Prompt interface {
	Kind() Kind
}

// TextPrompt asks for a line of free text.
type TextPrompt struct {
	Message string
	Default string

	// Validate rejects an answer; the prompt shows the error and asks again.
	Validate func(string) error
}

// Kind implements Prompt.
func (TextPrompt) Kind() Kind { return KindText }

// ConfirmPrompt asks a yes/no question.
type ConfirmPrompt struct {
	Message string
	Default bool
}

// Kind implements Prompt.
func (ConfirmPrompt) Kind() Kind { return KindConfirm }

// Choice is one entry of a SelectPrompt.
type Choice struct {
	// Label is what the operator sees.
	Label string

	// Value is returned when the choice is selected.
	Value string

	// FilterText is matched against the query. Label is used when empty.
	FilterText string
}

func (c Choice) filterText() string {
	if c.FilterText != "" {
		return c.FilterText
	}
	return c.Label
}

// SelectPrompt asks the operator to pick one of Choices, narrowing the list
// with a search query.
type SelectPrompt struct {
	Message string
	Choices []Choice

	// Filter narrows Choices for a query (default: FuzzyFilter).
	Filter func(query string, choices []Choice) []Choice
}

// Kind implements Prompt.
func (SelectPrompt) Kind() Kind { return KindSelect }

func (p SelectPrompt) filter(query string) []Choice {
	if p.Filter != nil {
		return p.Filter(query, p.Choices)
	}
	return FuzzyFilter(query, p.Choices)
}

// Summary is what the operator confirms before anything is created.
type Summary struct {
	Title  string
	Editor string
	Body   string
}
