package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
)

// lineReader reads answers line by line on a goroutine so a blocked read
// does not outlive the context. The goroutine exits at end of input or once
// stop is closed.
type lineReader struct {
	lines chan lineResult
	stop  chan struct{}
	once  sync.Once
}

type lineResult struct {
	text string
	err  error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{
		lines: make(chan lineResult),
		stop:  make(chan struct{}),
	}
	go func() {
		defer close(lr.lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if !lr.send(lineResult{text: strings.TrimRight(scanner.Text(), "\r")}) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			lr.send(lineResult{err: err})
		}
	}()
	return lr
}

func (lr *lineReader) send(res lineResult) bool {
	select {
	case lr.lines <- res:
		return true
	case <-lr.stop:
		return false
	}
}

func (lr *lineReader) close() {
	lr.once.Do(func() {
		close(lr.stop)
	})
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	if p.lines == nil {
		p.lines = newLineReader(p.in)
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res, ok := <-p.lines.lines:
		if !ok {
			return "", fmt.Errorf("no answer: %w", io.ErrUnexpectedEOF)
		}
		if res.err != nil {
			return "", fmt.Errorf("failed to read answer: %w", res.err)
		}
		return res.text, nil
	}
}

func (p *Prompter) question(message, hint string) {
	fmt.Fprint(p.out, p.theme.Question.Render("?")+" "+p.theme.Bold.Render(message))
	if hint != "" {
		fmt.Fprint(p.out, " "+p.theme.Faint.Render(hint))
	}
	fmt.Fprint(p.out, " ")
}

func (p *Prompter) invalid(msg string) {
	fmt.Fprintln(p.out, p.theme.Error.Render(">> "+msg))
}

func (p *Prompter) plainText(ctx context.Context, q TextPrompt) (string, error) {
	hint := ""
	if q.Default != "" {
		hint = "(" + q.Default + ")"
	}

	for {
		p.question(q.Message, hint)
		value, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if value == "" {
			value = q.Default
		}
		if q.Validate != nil {
			if err := q.Validate(value); err != nil {
				p.invalid(err.Error())
				continue
			}
		}
		return value, nil
	}
}

func (p *Prompter) plainConfirm(ctx context.Context, q ConfirmPrompt) (bool, error) {
	for {
		p.question(q.Message, yesNoHint(q.Default))
		value, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(value)) {
		case "":
			return q.Default, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			p.invalid("Please answer y or n")
		}
	}
}

// plainSelect lists numbered choices. A number picks an entry; anything
// else is a search query that narrows the list.
func (p *Prompter) plainSelect(ctx context.Context, q SelectPrompt) (string, error) {
	choices := q.filter("")

	for {
		for i, c := range choices {
			fmt.Fprintf(p.out, "  %2d) %s\n", i+1, c.Label)
		}
		p.question(q.Message, "(number or search)")

		value, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		value = strings.TrimSpace(value)

		if n, err := strconv.Atoi(value); err == nil {
			if n >= 1 && n <= len(choices) {
				return choices[n-1].Value, nil
			}
			p.invalid(fmt.Sprintf("Please enter a number between 1 and %d", len(choices)))
			continue
		}

		filtered := q.filter(value)
		if len(filtered) == 0 {
			p.invalid("No matches")
			choices = q.filter("")
			continue
		}
		choices = filtered
	}
}
