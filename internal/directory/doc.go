// Package directory looks up collaborators in the Google Workspace directory
// through the Admin SDK.
//
// Listing users requires the admin.directory.user.readonly scope and a
// Workspace account allowed to read the directory. Accounts without that
// privilege get a 403, which Lookup treats as "no candidates" so the caller
// can fall back to asking for an email address.
package directory
