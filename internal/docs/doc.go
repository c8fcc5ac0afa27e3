// Package docs creates the 1-on-1 document: an empty Google Doc with the
// templated title, the templated body inserted at the start, and writer
// access granted to the collaborator through Drive.
//
// The three remote calls are not transactional. When a later step fails the
// document already exists and the error is a *PartialError carrying its ID;
// with Request.CleanupOnFailure set the client deletes it first.
//
// Example usage:
//
//	client, err := docs.NewClient(ctx, httpClient, driveClient)
//	if err != nil {
//	    return err
//	}
//
//	now := time.Now()
//	result, err := client.CreateDocument(ctx, docs.Request{
//	    Title:             docs.Title(now, "jane.doe@example.com"),
//	    Body:              docs.Body(now, "Alex", "jane.doe"),
//	    CollaboratorEmail: "jane.doe@example.com",
//	})
package docs
