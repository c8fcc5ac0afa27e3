package instrumentation

import "testing"

func TestExtractUserDomain(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"jane@example.com", "example.com"},
		{"user@sub.example.org", "sub.example.org"},
		{"invalid", "unknown"},
		{"", "unknown"},
		{"user@", "unknown"},
		{"a@b@c", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ExtractUserDomain(tt.email); got != tt.want {
				t.Errorf("ExtractUserDomain(%q) = %q, want %q", tt.email, got, tt.want)
			}
		})
	}
}
