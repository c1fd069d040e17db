// Package google provides OAuth2 authentication and token management for Google APIs.
//
// Tokens are stored per account under the user cache directory, so a single
// installation can scan calendars and drives belonging to several accounts.
//
// The TokenProvider interface allows different token sources to be plugged in;
// the default FileTokenProvider reads tokens from disk.
package google
