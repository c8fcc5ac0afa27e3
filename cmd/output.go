package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/teemow/oneonone/internal/google"
)

const credentialsConsoleURL = "https://console.cloud.google.com/apis/credentials"

type styles struct {
	Title lipgloss.Style
	Error lipgloss.Style
	Hint  lipgloss.Style
	Link  lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title: r.NewStyle().Bold(true),
		Error: r.NewStyle().Foreground(lipgloss.Color("1")),
		Hint:  r.NewStyle().Foreground(lipgloss.Color("3")),
		Link:  r.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// printError writes err for the operator, with setup guidance when the
// failure is about credentials.
func printError(w io.Writer, err error) {
	s := newStyles(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Error.Render("❌ Error:"), err.Error())

	if !needsCredentialsHint(err) {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, s.Hint.Render("Please ensure you have a credentials.json file in the current directory."))
	fmt.Fprintln(w, s.Hint.Render("You can get this from the Google Cloud Console:"))
	fmt.Fprintln(w, s.Link.Render(credentialsConsoleURL))
}

func needsCredentialsHint(err error) bool {
	var authErr *google.AuthError
	return errors.As(err, &authErr) || strings.Contains(err.Error(), "credentials")
}
