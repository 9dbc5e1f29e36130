package drive

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/mallamanno/drivesh/internal/google"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	googleAppsPrefix = "application/vnd.google-apps."

	// maxPageSize is the largest page size the files.list endpoint accepts
	maxPageSize = 1000
)

const (
	fileFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, owners, shared, starred, trashed, trashedTime"
	listFields = "nextPageToken, files(id, name, mimeType, size, createdTime, modifiedTime, webViewLink, parents, owners, shared, starred, trashed, trashedTime)"
	permFields = "id, type, role, emailAddress, displayName"
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

// GetAuthURLForAccount returns the OAuth URL for user authorization for a specific account
func GetAuthURLForAccount(account string) string {
	return google.GetAuthURLForAccount(account)
}

// SaveTokenForAccount exchanges an authorization code for tokens and saves them for a specific account
func SaveTokenForAccount(ctx context.Context, account string, authCode string) error {
	return google.SaveTokenForAccount(ctx, account, authCode)
}

// NewClientForAccount creates a new Google Drive client with OAuth2 authentication for a specific account
// Returns an error if no valid token exists - use HasTokenForAccount() to check first
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s. Please authorize access first: %w", account, err)
	}

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
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// Root retrieves the metadata of the Drive root folder. Its ID anchors all
// absolute path resolution.
func (c *Client) Root(ctx context.Context) (*FileInfo, error) {
	root, err := c.service.Files.Get("root").
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, wrapError("get root folder", err)
	}
	return convertToFileInfo(root), nil
}

// GetFile retrieves metadata for a specific file
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(fileFields + ", permissions(" + permFields + ")")).
		Do()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("get file %s", fileID), err)
	}

	return convertToFileInfo(file), nil
}

// ChildrenByName lists the direct children of a folder whose name matches
// exactly. With trashed=true only trashed children are returned, otherwise
// only non-trashed ones. Drive does not enforce name uniqueness, so the
// result may hold more than one file.
func (c *Client) ChildrenByName(ctx context.Context, parentID, name string, trashed bool) ([]*FileInfo, error) {
	query := fmt.Sprintf("'%s' in parents and name='%s' and trashed=%t",
		escapeQueryTerm(parentID), escapeQueryTerm(name), trashed)
	return c.listQuery(ctx, query)
}

// ListChildren lists all direct children of a folder. Trashed children are
// excluded unless includeTrashed is set.
func (c *Client) ListChildren(ctx context.Context, parentID string, includeTrashed bool) ([]*FileInfo, error) {
	query := fmt.Sprintf("'%s' in parents", escapeQueryTerm(parentID))
	if !includeTrashed {
		query += " and trashed=false"
	}
	return c.listQuery(ctx, query)
}

// ListAll lists every non-trashed file and folder the account can see,
// following pagination to the end. Used for search and path reconstruction.
func (c *Client) ListAll(ctx context.Context, includeTrashed bool) ([]*FileInfo, error) {
	query := "trashed=false"
	if includeTrashed {
		query = ""
	}
	return c.listQuery(ctx, query)
}

// SearchByName lists non-trashed files whose name contains the given term,
// using Drive's server-side query language.
func (c *Client) SearchByName(ctx context.Context, term string) ([]*FileInfo, error) {
	query := fmt.Sprintf("name contains '%s' and trashed=false", escapeQueryTerm(term))
	return c.listQuery(ctx, query)
}

func (c *Client) listQuery(ctx context.Context, query string) ([]*FileInfo, error) {
	var files []*FileInfo
	pageToken := ""
	for {
		call := c.service.Files.List().
			Context(ctx).
			PageSize(maxPageSize).
			OrderBy("folder,name").
			Fields(listFields)
		if query != "" {
			call = call.Q(query)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		fileList, err := call.Do()
		if err != nil {
			return nil, wrapError("list files", err)
		}
		for _, f := range fileList.Files {
			files = append(files, convertToFileInfo(f))
		}
		if fileList.NextPageToken == "" {
			return files, nil
		}
		pageToken = fileList.NextPageToken
	}
}

// Download downloads the content of a file. The caller must close the reader.
func (c *Client) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	resp, err := c.service.Files.Get(fileID).
		Context(ctx).
		Download()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("download file %s", fileID), err)
	}

	return resp.Body, nil
}

// Export converts a Google-native document to the given MIME type and
// returns its content. The caller must close the reader.
func (c *Client) Export(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if mimeType == "" {
		return nil, fmt.Errorf("export MIME type is required")
	}

	resp, err := c.service.Files.Export(fileID, mimeType).
		Context(ctx).
		Download()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("export file %s as %s", fileID, mimeType), err)
	}

	return resp.Body, nil
}

// UploadFile uploads a new file to Google Drive
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, options *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{
		Name: name,
	}

	if options != nil {
		if len(options.ParentFolders) > 0 {
			file.Parents = options.ParentFolders
		}
		if options.MimeType != "" {
			file.MimeType = options.MimeType
		}
		if options.ModifiedTime != nil {
			file.ModifiedTime = options.ModifiedTime.Format(time.RFC3339)
		}
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(file.MimeType)).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, wrapError("upload file", err)
	}

	return convertToFileInfo(driveFile), nil
}

// UpdateContent replaces the content of an existing file, keeping its
// identity and metadata.
func (c *Client) UpdateContent(ctx context.Context, fileID string, content io.Reader) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	driveFile, err := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		Media(content).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("update content of file %s", fileID), err)
	}

	return convertToFileInfo(driveFile), nil
}

// CreateFolder creates a new folder in Google Drive
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	file := &drive.File{
		Name:     name,
		MimeType: FolderMimeType,
	}

	if len(parentFolders) > 0 {
		file.Parents = parentFolders
	}

	driveFile, err := c.service.Files.Create(file).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return nil, wrapError("create folder", err)
	}

	return convertToFileInfo(driveFile), nil
}

// MoveFile moves or renames a file
func (c *Client) MoveFile(ctx context.Context, fileID string, options *MoveOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("move options are required")
	}

	update := &drive.File{}
	if options.NewName != "" {
		update.Name = options.NewName
	}

	call := c.service.Files.Update(fileID, update).
		Context(ctx).
		Fields(fileFields)

	if len(options.AddParents) > 0 {
		call = call.AddParents(strings.Join(options.AddParents, ","))
	}
	if len(options.RemoveParents) > 0 {
		call = call.RemoveParents(strings.Join(options.RemoveParents, ","))
	}

	driveFile, err := call.Do()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("move file %s", fileID), err)
	}

	return convertToFileInfo(driveFile), nil
}

// Trash moves a file to the trash. The file keeps its ID and parents and
// can be restored with Untrash.
func (c *Client) Trash(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	_, err := c.service.Files.Update(fileID, &drive.File{Trashed: true}).
		Context(ctx).
		Fields("id, trashed").
		Do()
	return wrapError(fmt.Sprintf("trash file %s", fileID), err)
}

// Untrash restores a trashed file to its original parent.
func (c *Client) Untrash(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	// Trashed=false is a zero value, it must be forced onto the wire.
	update := &drive.File{
		Trashed:         false,
		ForceSendFields: []string{"Trashed"},
	}
	_, err := c.service.Files.Update(fileID, update).
		Context(ctx).
		Fields("id, trashed").
		Do()
	return wrapError(fmt.Sprintf("untrash file %s", fileID), err)
}

// Delete permanently deletes a file, bypassing the trash
func (c *Client) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	err := c.service.Files.Delete(fileID).Context(ctx).Do()
	return wrapError(fmt.Sprintf("delete file %s", fileID), err)
}

// ShareFile creates a permission on a file to share it
func (c *Client) ShareFile(ctx context.Context, fileID string, options *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if options == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if options.Type == "" {
		return nil, fmt.Errorf("permission type is required")
	}
	if options.Role == "" {
		return nil, fmt.Errorf("permission role is required")
	}

	permission := &drive.Permission{
		Type: options.Type,
		Role: options.Role,
	}

	if options.EmailAddress != "" {
		permission.EmailAddress = options.EmailAddress
	}
	if options.Type == "anyone" {
		permission.AllowFileDiscovery = options.AllowFileDiscovery
	}

	call := c.service.Permissions.Create(fileID, permission).
		Context(ctx).
		Fields(permFields)

	if options.TransferOwnership {
		call = call.TransferOwnership(true)
	}

	drivePermission, err := call.Do()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("share file %s", fileID), err)
	}

	return convertToPermission(drivePermission), nil
}

// ListPermissions lists all permissions for a file
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields(googleapi.Field("permissions(" + permFields + ")")).
		Do()
	if err != nil {
		return nil, wrapError(fmt.Sprintf("list permissions of file %s", fileID), err)
	}

	permissions := make([]*Permission, len(permList.Permissions))
	for i, p := range permList.Permissions {
		permissions[i] = convertToPermission(p)
	}

	return permissions, nil
}

// RemovePermission removes a permission from a file
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}

	err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do()
	return wrapError(fmt.Sprintf("remove permission %s from file %s", permissionID, fileID), err)
}

// escapeQueryTerm escapes a value for embedding in a Drive query string.
// Drive's query language uses backslash escapes inside single-quoted terms.
func escapeQueryTerm(term string) string {
	term = strings.ReplaceAll(term, `\`, `\\`)
	return strings.ReplaceAll(term, `'`, `\'`)
}

// convertToFileInfo converts a Drive API File to our FileInfo type
func convertToFileInfo(f *drive.File) *FileInfo {
	fileInfo := &FileInfo{
		ID:          f.Id,
		Name:        f.Name,
		MimeType:    f.MimeType,
		Size:        f.Size,
		WebViewLink: f.WebViewLink,
		Parents:     f.Parents,
		Shared:      f.Shared,
		Starred:     f.Starred,
		Trashed:     f.Trashed,
	}

	// Parse timestamps
	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			fileInfo.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			fileInfo.ModifiedTime = t
		}
	}
	if f.TrashedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.TrashedTime); err == nil {
			fileInfo.TrashedTime = &t
		}
	}

	// Convert owners
	for _, owner := range f.Owners {
		fileInfo.Owners = append(fileInfo.Owners, User{
			DisplayName:  owner.DisplayName,
			EmailAddress: owner.EmailAddress,
		})
	}

	// Convert permissions if present
	for _, perm := range f.Permissions {
		fileInfo.Permissions = append(fileInfo.Permissions, *convertToPermission(perm))
	}

	return fileInfo
}

// convertToPermission converts a Drive API Permission to our Permission type
func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		DisplayName:  p.DisplayName,
	}
}
