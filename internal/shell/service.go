package shell

import (
	"context"
	"io"

	"github.com/mallamanno/drivesh/internal/drive"
)

// Service is the slice of the Drive client the shell consumes. *drive.Client
// implements it; tests substitute an in-memory fake.
type Service interface {
	// Path resolution
	ChildrenByName(ctx context.Context, parentID, name string, trashed bool) ([]*drive.FileInfo, error)
	GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error)
	CreateFolder(ctx context.Context, name string, parentFolders []string) (*drive.FileInfo, error)

	// Listing and search
	ListChildren(ctx context.Context, parentID string, includeTrashed bool) ([]*drive.FileInfo, error)
	ListAll(ctx context.Context, includeTrashed bool) ([]*drive.FileInfo, error)
	SearchByName(ctx context.Context, term string) ([]*drive.FileInfo, error)

	// Content transfer
	Download(ctx context.Context, fileID string) (io.ReadCloser, error)
	Export(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error)
	UploadFile(ctx context.Context, name string, content io.Reader, options *drive.UploadOptions) (*drive.FileInfo, error)
	UpdateContent(ctx context.Context, fileID string, content io.Reader) (*drive.FileInfo, error)

	// Mutation
	MoveFile(ctx context.Context, fileID string, options *drive.MoveOptions) (*drive.FileInfo, error)
	Trash(ctx context.Context, fileID string) error
	Untrash(ctx context.Context, fileID string) error
	Delete(ctx context.Context, fileID string) error

	// Sharing
	ShareFile(ctx context.Context, fileID string, options *drive.ShareOptions) (*drive.Permission, error)
	ListPermissions(ctx context.Context, fileID string) ([]*drive.Permission, error)
	RemovePermission(ctx context.Context, fileID, permissionID string) error
}
