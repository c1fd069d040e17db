package google

// DefaultOAuthScopes are the Google OAuth scopes required to scan meeting
// evidence. All Google access is read-only: the scanner never mutates
// calendars or files.
//
// The scopes provide access to:
//   - Google Calendar: read-only (meeting events)
//   - Google Drive: read-only (recording and transcript listings)
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar.readonly",

	// Google Drive scopes
	"https://www.googleapis.com/auth/drive.readonly",
	"https://www.googleapis.com/auth/drive.metadata.readonly",
}
