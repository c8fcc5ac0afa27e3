// Package drive provides the slice of the Google Drive API the document
// workflow needs: granting a collaborator access to a file and deleting a
// file left behind by a failed run.
//
// Documents are created through the Docs API (see package docs); sharing is
// a Drive concern because permissions live on the Drive file backing the
// document.
//
// Example usage:
//
//	client, err := drive.NewClient(ctx, cred.HTTPClient(ctx))
//	if err != nil {
//	    return err
//	}
//
//	perm, err := client.ShareFile(ctx, documentID, &drive.ShareOptions{
//	    Type:         drive.PermissionTypeUser,
//	    Role:         drive.RoleWriter,
//	    EmailAddress: "jane.doe@example.com",
//	})
package drive
