package docs

import "fmt"

// Request describes the document to create.
type Request struct {
	Title             string
	Body              string
	CollaboratorEmail string

	// CleanupOnFailure deletes the document when a step after its creation
	// fails.
	CleanupOnFailure bool

	// SkipNotification suppresses Drive's sharing email to the collaborator.
	SkipNotification bool
}

// Result identifies the created document.
type Result struct {
	DocumentID  string `json:"documentId"`
	DocumentURL string `json:"documentUrl"`
}

// PartialError is returned when the document was created but inserting the
// body or sharing it failed. Err is the underlying *google.RemoteServiceError.
type PartialError struct {
	DocumentID string
	Err        error

	// Deleted reports whether the document was cleaned up.
	Deleted bool

	// CleanupErr is set when deleting the document failed as well.
	CleanupErr error
}

func (e *PartialError) Error() string {
	switch {
	case e.Deleted:
		return fmt.Sprintf("%v (document %s was deleted)", e.Err, e.DocumentID)
	case e.CleanupErr != nil:
		return fmt.Sprintf("%v (document %s was left behind, cleanup failed: %v)", e.Err, e.DocumentID, e.CleanupErr)
	default:
		return fmt.Sprintf("%v (document %s was left behind: %s)", e.Err, e.DocumentID, DocumentURL(e.DocumentID))
	}
}

func (e *PartialError) Unwrap() error {
	return e.Err
}
