package google

import (
	admin "google.golang.org/api/admin/directory/v1"
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
)

// DefaultOAuthScopes are the Google OAuth scopes requested during authorization.
//
// The scopes provide access to:
//   - Google Docs: create and edit documents
//   - Google Drive: share files (permissions.create) and delete them on cleanup
//   - Admin SDK Directory: read-only user lookup (Workspace admins only)
var DefaultOAuthScopes = []string{
	docs.DocumentsScope,
	drive.DriveScope,
	admin.AdminDirectoryUserReadonlyScope,
}
