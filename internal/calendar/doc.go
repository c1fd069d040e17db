// Package calendar provides a read-only client for the Google Calendar API.
//
// The client lists events in a scan window and maps the ones that look like
// meeting evidence (filtered by keywords and person names) to raw records
// for the reconciliation engine. It never mutates calendar state.
//
// The client supports multi-account authentication using the Google OAuth2
// flow from the internal google package.
//
// Example usage:
//
//	ctx := context.Background()
//	client, err := calendar.NewClient(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	records, err := client.CollectRecords("primary",
//	    time.Now().AddDate(0, -3, 0), time.Now(),
//	    calendar.ScanFilter{Keywords: []string{"check-in"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
package calendar
