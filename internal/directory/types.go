package directory

import "fmt"

// Collaborator is a directory user the document can be shared with.
type Collaborator struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// Label returns the "Name (email)" form shown in selection lists.
func (c Collaborator) Label() string {
	return fmt.Sprintf("%s (%s)", c.DisplayName, c.Email)
}

// PermissionError is returned when the account may not read the directory.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("directory search requires Google Workspace admin permissions: %v", e.Err)
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}
