package prompt

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is an answer the operator has to correct.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ValidateName rejects blank names.
func ValidateName(input string) error {
	if strings.TrimSpace(input) == "" {
		return &ValidationError{Msg: "Name cannot be empty"}
	}
	return nil
}

// ValidateEmail accepts anything shaped like local@domain.tld.
func ValidateEmail(input string) error {
	if !emailPattern.MatchString(input) {
		return &ValidationError{Msg: "Please enter a valid email address"}
	}
	return nil
}
