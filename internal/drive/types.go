package drive

// Permission grantee types and roles used by the workflow.
const (
	PermissionTypeUser = "user"
	RoleWriter         = "writer"
)

// Permission represents access permissions for a file
type Permission struct {
	// ID is the unique identifier for the permission
	ID string `json:"id"`

	// Type is the type of grantee (user, group, domain, anyone)
	Type string `json:"type"`

	// Role is the role granted by this permission (owner, organizer, fileOrganizer, writer, commenter, reader)
	Role string `json:"role"`

	// EmailAddress is the email address of the user or group (if type is user or group)
	EmailAddress string `json:"emailAddress,omitempty"`
}

// ShareOptions contains options for sharing a file
type ShareOptions struct {
	// Type is the type of grantee: "user", "group", "domain", or "anyone"
	Type string

	// Role is the role to grant: "owner", "organizer", "fileOrganizer", "writer", "commenter", or "reader"
	Role string

	// EmailAddress is the email address (required if Type is "user" or "group")
	EmailAddress string

	// SendNotificationEmail indicates whether Drive should send its own
	// notification email. Unset leaves the API default in place.
	SendNotificationEmail *bool
}
