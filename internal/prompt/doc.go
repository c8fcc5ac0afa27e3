// Package prompt asks the operator for the values a run needs: their own
// name, the collaborator and the final go-ahead.
//
// A Prompter owns its input and output streams. On a terminal each prompt is
// a small bubbletea program; the collaborator list is filtered as the
// operator types, ranked with fzf's matching algorithm. When input is not a
// terminal (pipes, CI) the same prompts fall back to reading lines.
//
// Pressing ctrl+c or esc in any prompt returns ErrInterrupted.
package prompt
