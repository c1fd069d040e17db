package drive

import (
	"context"
	"fmt"
	"io"
	"strings"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/ourassistants/checkinsync/internal/engine"
	"github.com/ourassistants/checkinsync/internal/google"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"
)

// Client wraps the Google Drive API service
type Client struct {
	service *drive.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// HasToken checks if a valid OAuth token exists for the default account
func HasToken() bool {
	return google.HasToken()
}

// NewClientForAccount creates a new Google Drive client with OAuth2 authentication for a specific account
// Returns an error if no valid token exists - use HasTokenForAccount() to check first
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

	// Create Drive service
	driveService, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{
		service: driveService,
		account: account,
	}, nil
}

// NewClient creates a new Google Drive client with OAuth2 authentication for the default account
// Returns an error if no valid token exists - use HasToken() to check first
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListFiles lists files in Google Drive with optional filtering
func (c *Client) ListFiles(ctx context.Context, options *ListOptions) ([]*FileInfo, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Fields("nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, trashed)")

	query := "trashed=false"
	if options != nil {
		if options.Query != "" {
			query = query + " and (" + options.Query + ")"
		}
		if options.MaxResults > 0 {
			call = call.PageSize(int64(options.MaxResults))
		}
		if options.OrderBy != "" {
			call = call.OrderBy(options.OrderBy)
		}
		if options.PageToken != "" {
			call = call.PageToken(options.PageToken)
		}
	}
	call = call.Q(query)

	fileList, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(fileList.Files))
	for i, f := range fileList.Files {
		files[i] = convertToFileInfo(f)
	}

	return files, fileList.NextPageToken, nil
}

// ListFolder lists all files directly inside the given folder, following
// pagination until the listing is exhausted
func (c *Client) ListFolder(ctx context.Context, folderID string) ([]*FileInfo, error) {
	if folderID == "" {
		return nil, fmt.Errorf("folderID is required")
	}

	var all []*FileInfo
	pageToken := ""
	for {
		files, next, err := c.ListFiles(ctx, &ListOptions{
			Query:     fmt.Sprintf("'%s' in parents", folderID),
			OrderBy:   "name",
			PageToken: pageToken,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, files...)
		if next == "" {
			break
		}
		pageToken = next
	}

	return all, nil
}

// GetFile retrieves metadata for a specific file
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, trashed").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return convertToFileInfo(file), nil
}

// DownloadFile downloads the content of a file
func (c *Client) DownloadFile(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	resp, err := c.service.Files.Get(fileID).
		Context(ctx).
		Download()
	if err != nil {
		return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
	}

	return resp.Body, nil
}

// CollectRecords lists the cloud recordings folder and maps recording and
// transcript files to raw meeting records. Folders and unrelated files are
// skipped; the filename carries the identity evidence.
func (c *Client) CollectRecords(ctx context.Context, folderID string) ([]engine.RawRecord, error) {
	files, err := c.ListFolder(ctx, folderID)
	if err != nil {
		return nil, err
	}

	var records []engine.RawRecord
	for _, f := range files {
		kind, ok := classifyFile(f)
		if !ok {
			continue
		}
		records = append(records, engine.RawRecord{
			ID:              "drive:" + f.ID,
			Source:          engine.SourceCloudListing,
			ArtifactKind:    kind,
			RawText:         f.Name,
			SizeBytes:       f.Size,
			SourceTimestamp: f.ModifiedTime,
		})
	}

	return records, nil
}

// classifyFile decides which artifact kind a drive file represents
func classifyFile(f *FileInfo) (engine.ArtifactKind, bool) {
	if f.MimeType == FolderMimeType {
		return 0, false
	}

	name := strings.ToLower(f.Name)
	switch {
	case strings.HasSuffix(name, ".vtt"):
		return engine.ArtifactTranscript, true
	case strings.HasPrefix(f.MimeType, "video/"),
		strings.HasPrefix(f.MimeType, "audio/"):
		return engine.ArtifactRecording, true
	case strings.HasSuffix(name, ".mp4"), strings.HasSuffix(name, ".m4a"):
		// Some uploads arrive as application/octet-stream
		return engine.ArtifactRecording, true
	}
	return 0, false
}
