// Package google provides OAuth2 authentication and token persistence for
// the Google APIs used by oneonone (Docs, Drive and the Admin SDK Directory).
//
// A Store loads a previously saved authorized-user token from disk. When no
// usable token exists it reads the OAuth client descriptor downloaded from the
// Google Cloud Console, runs an interactive loopback authorization and saves
// the resulting refresh token for the next run.
//
// Example usage:
//
//	store := google.NewStore(google.DefaultStoreConfig())
//	cred, err := store.Obtain(ctx)
//	if err != nil {
//	    return err
//	}
//	client := cred.HTTPClient(ctx)
package google
