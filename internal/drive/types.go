package drive

import (
	"strings"
	"time"
)

// FileInfo represents metadata about a file or folder in Google Drive
type FileInfo struct {
	// ID is the unique identifier for the file
	ID string `json:"id"`

	// Name is the name of the file. Names are not unique within a folder;
	// only the ID identifies a file.
	Name string `json:"name"`

	// MimeType is the MIME type of the file
	MimeType string `json:"mimeType"`

	// Size is the size of the file in bytes (not populated for folders)
	Size int64 `json:"size,omitempty"`

	// CreatedTime is when the file was created
	CreatedTime time.Time `json:"createdTime"`

	// ModifiedTime is when the file was last modified
	ModifiedTime time.Time `json:"modifiedTime"`

	// WebViewLink is a link for opening the file in a relevant Google editor or viewer
	WebViewLink string `json:"webViewLink,omitempty"`

	// Parents are the IDs of the parent folders
	Parents []string `json:"parents,omitempty"`

	// Owners are the owners of the file
	Owners []User `json:"owners,omitempty"`

	// Shared indicates whether the file is shared
	Shared bool `json:"shared"`

	// Starred indicates whether the user has starred the file
	Starred bool `json:"starred"`

	// Permissions are the access permissions for the file
	Permissions []Permission `json:"permissions,omitempty"`

	// TrashedTime is when the file was trashed (if trashed)
	TrashedTime *time.Time `json:"trashedTime,omitempty"`

	// Trashed indicates whether the file is in the trash
	Trashed bool `json:"trashed"`
}

// IsFolder reports whether the file is a Drive folder.
func (f *FileInfo) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// IsGoogleDoc reports whether the file is a Google-native document
// (Docs, Sheets, Slides, ...) that has no byte content and must be
// exported to a concrete format for download.
func (f *FileInfo) IsGoogleDoc() bool {
	return strings.HasPrefix(f.MimeType, googleAppsPrefix) && !f.IsFolder()
}

// OwnerNames returns the display names of all owners.
func (f *FileInfo) OwnerNames() []string {
	names := make([]string, len(f.Owners))
	for i, o := range f.Owners {
		names[i] = o.DisplayName
	}
	return names
}

// User represents a Google Drive user (owner, permission holder, etc.)
type User struct {
	// DisplayName is the display name of the user
	DisplayName string `json:"displayName"`

	// EmailAddress is the email address of the user
	EmailAddress string `json:"emailAddress"`
}

// Permission represents access permissions for a file
type Permission struct {
	// ID is the unique identifier for the permission
	ID string `json:"id"`

	// Type is the type of grantee (user, group, domain, anyone)
	Type string `json:"type"`

	// Role is the role granted by this permission (owner, writer, commenter, reader)
	Role string `json:"role"`

	// EmailAddress is the email address of the user or group (if type is user or group)
	EmailAddress string `json:"emailAddress,omitempty"`

	// DisplayName is the display name of the user or group
	DisplayName string `json:"displayName,omitempty"`
}

// UploadOptions contains options for uploading a file
type UploadOptions struct {
	// ParentFolders are the IDs of parent folders where the file should be placed
	ParentFolders []string

	// MimeType is the MIME type of the file.
	// If not specified, Drive will attempt to detect it automatically
	MimeType string

	// ModifiedTime allows setting a custom modification time
	ModifiedTime *time.Time
}

// MoveOptions contains options for moving or renaming a file
type MoveOptions struct {
	// NewName is the new name for the file (leave empty to keep current name)
	NewName string

	// AddParents are folder IDs to add as parents
	AddParents []string

	// RemoveParents are folder IDs to remove as parents
	RemoveParents []string
}

// ShareOptions contains options for sharing a file
type ShareOptions struct {
	// Type is the type of grantee: "user", "group", "domain", or "anyone"
	Type string

	// Role is the role to grant: "owner", "writer", "commenter", or "reader"
	Role string

	// EmailAddress is the email address (required if Type is "user" or "group")
	EmailAddress string

	// AllowFileDiscovery controls whether the file shows up in search results
	// for "anyone" grants
	AllowFileDiscovery bool

	// TransferOwnership must be set when granting the "owner" role
	TransferOwnership bool
}
