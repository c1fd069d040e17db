// Package drive provides a read-only client for the Google Drive API.
//
// The client lists the cloud recordings folder and maps recording files
// (video and audio MIME types) and transcript files (.vtt) to raw records
// for the reconciliation engine. It never mutates Drive state.
//
// The client supports multi-account functionality; each client instance is
// bound to a specific account. OAuth tokens come from the google package
// and carry read-only Drive scopes.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := drive.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := client.CollectRecords(ctx, folderID)
//	if err != nil {
//	    log.Fatal(err)
//	}
package drive
