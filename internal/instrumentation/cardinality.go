package instrumentation

import "strings"

// ExtractUserDomain extracts the domain part from an email address so
// metrics and audit lines never carry full addresses.
//
// Example:
//
//	ExtractUserDomain("jane@example.com")  // "example.com"
//	ExtractUserDomain("invalid")           // "unknown"
//	ExtractUserDomain("")                  // "unknown"
func ExtractUserDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// Google API operation names used in metrics and span names.
const (
	OperationList        = "list"
	OperationCreate      = "create"
	OperationBatchUpdate = "batchUpdate"
	OperationShare       = "share"
	OperationDelete      = "delete"
)
