package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mallamanno/drivesh/internal/drive"
)

// fakeDrive is an in-memory Drive implementing Service: a flat file map
// with parent pointers, content bytes and permissions, mirroring the
// remote data model closely enough for command tests.
type fakeDrive struct {
	files   map[string]*drive.FileInfo
	content map[string][]byte
	perms   map[string][]*drive.Permission
	nextID  int
}

const fakeRootID = "root"

func newFakeDrive() *fakeDrive {
	f := &fakeDrive{
		files:   map[string]*drive.FileInfo{},
		content: map[string][]byte{},
		perms:   map[string][]*drive.Permission{},
	}
	f.files[fakeRootID] = &drive.FileInfo{ID: fakeRootID, Name: "My Drive", MimeType: drive.FolderMimeType}
	return f
}

func (f *fakeDrive) addFolder(id, name, parentID string) *drive.FileInfo {
	folder := &drive.FileInfo{ID: id, Name: name, MimeType: drive.FolderMimeType, Parents: []string{parentID}}
	f.files[id] = folder
	return folder
}

func (f *fakeDrive) addFile(id, name, parentID, content string) *drive.FileInfo {
	file := &drive.FileInfo{ID: id, Name: name, MimeType: "text/plain", Parents: []string{parentID}, Size: int64(len(content))}
	f.files[id] = file
	f.content[id] = []byte(content)
	return file
}

func (f *fakeDrive) ChildrenByName(ctx context.Context, parentID, name string, trashed bool) ([]*drive.FileInfo, error) {
	var matches []*drive.FileInfo
	for _, file := range f.files {
		if file.Name != name || file.Trashed != trashed {
			continue
		}
		for _, p := range file.Parents {
			if p == parentID {
				matches = append(matches, file)
				break
			}
		}
	}
	return matches, nil
}

func (f *fakeDrive) GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, &drive.Error{Op: "get file " + fileID, Err: fmt.Errorf("file not found")}
	}
	return file, nil
}

func (f *fakeDrive) CreateFolder(ctx context.Context, name string, parentFolders []string) (*drive.FileInfo, error) {
	f.nextID++
	folder := &drive.FileInfo{
		ID:       fmt.Sprintf("folder-%d", f.nextID),
		Name:     name,
		MimeType: drive.FolderMimeType,
		Parents:  parentFolders,
	}
	f.files[folder.ID] = folder
	return folder, nil
}

func (f *fakeDrive) ListChildren(ctx context.Context, parentID string, includeTrashed bool) ([]*drive.FileInfo, error) {
	var children []*drive.FileInfo
	for _, file := range f.files {
		if file.Trashed && !includeTrashed {
			continue
		}
		for _, p := range file.Parents {
			if p == parentID {
				children = append(children, file)
				break
			}
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })
	return children, nil
}

func (f *fakeDrive) ListAll(ctx context.Context, includeTrashed bool) ([]*drive.FileInfo, error) {
	var files []*drive.FileInfo
	for _, file := range f.files {
		if file.ID == fakeRootID {
			continue
		}
		if file.Trashed && !includeTrashed {
			continue
		}
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func (f *fakeDrive) SearchByName(ctx context.Context, term string) ([]*drive.FileInfo, error) {
	// Drive's "name contains" operator is case-insensitive.
	var files []*drive.FileInfo
	for _, file := range f.files {
		if file.ID == fakeRootID || file.Trashed {
			continue
		}
		if strings.Contains(strings.ToLower(file.Name), strings.ToLower(term)) {
			files = append(files, file)
		}
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func (f *fakeDrive) Download(ctx context.Context, fileID string) (io.ReadCloser, error) {
	content, ok := f.content[fileID]
	if !ok {
		return nil, &drive.Error{Op: "download file " + fileID, Err: fmt.Errorf("no content")}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeDrive) Export(ctx context.Context, fileID, mimeType string) (io.ReadCloser, error) {
	content, ok := f.content[fileID]
	if !ok {
		return nil, &drive.Error{Op: "export file " + fileID, Err: fmt.Errorf("no content")}
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

func (f *fakeDrive) UploadFile(ctx context.Context, name string, content io.Reader, options *drive.UploadOptions) (*drive.FileInfo, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.nextID++
	file := &drive.FileInfo{
		ID:       fmt.Sprintf("file-%d", f.nextID),
		Name:     name,
		MimeType: "application/octet-stream",
		Size:     int64(len(data)),
	}
	if options != nil {
		file.Parents = options.ParentFolders
		if options.MimeType != "" {
			file.MimeType = options.MimeType
		}
	}
	f.files[file.ID] = file
	f.content[file.ID] = data
	return file, nil
}

func (f *fakeDrive) UpdateContent(ctx context.Context, fileID string, content io.Reader) (*drive.FileInfo, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, &drive.Error{Op: "update content of file " + fileID, Err: fmt.Errorf("file not found")}
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}
	f.content[fileID] = data
	file.Size = int64(len(data))
	return file, nil
}

func (f *fakeDrive) MoveFile(ctx context.Context, fileID string, options *drive.MoveOptions) (*drive.FileInfo, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, &drive.Error{Op: "move file " + fileID, Err: fmt.Errorf("file not found")}
	}
	if options.NewName != "" {
		file.Name = options.NewName
	}
	for _, remove := range options.RemoveParents {
		for i, p := range file.Parents {
			if p == remove {
				file.Parents = append(file.Parents[:i], file.Parents[i+1:]...)
				break
			}
		}
	}
	file.Parents = append(file.Parents, options.AddParents...)
	return file, nil
}

func (f *fakeDrive) Trash(ctx context.Context, fileID string) error {
	file, ok := f.files[fileID]
	if !ok {
		return &drive.Error{Op: "trash file " + fileID, Err: fmt.Errorf("file not found")}
	}
	file.Trashed = true
	return nil
}

func (f *fakeDrive) Untrash(ctx context.Context, fileID string) error {
	file, ok := f.files[fileID]
	if !ok {
		return &drive.Error{Op: "untrash file " + fileID, Err: fmt.Errorf("file not found")}
	}
	file.Trashed = false
	return nil
}

func (f *fakeDrive) Delete(ctx context.Context, fileID string) error {
	if _, ok := f.files[fileID]; !ok {
		return &drive.Error{Op: "delete file " + fileID, Err: fmt.Errorf("file not found")}
	}
	delete(f.files, fileID)
	delete(f.content, fileID)
	delete(f.perms, fileID)
	return nil
}

func (f *fakeDrive) ShareFile(ctx context.Context, fileID string, options *drive.ShareOptions) (*drive.Permission, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, &drive.Error{Op: "share file " + fileID, Err: fmt.Errorf("file not found")}
	}
	f.nextID++
	perm := &drive.Permission{
		ID:           fmt.Sprintf("perm-%d", f.nextID),
		Type:         options.Type,
		Role:         options.Role,
		EmailAddress: options.EmailAddress,
	}
	f.perms[fileID] = append(f.perms[fileID], perm)
	file.Shared = true
	if options.Type == "anyone" && file.WebViewLink == "" {
		file.WebViewLink = "https://drive.google.com/file/d/" + fileID + "/view"
	}
	return perm, nil
}

func (f *fakeDrive) ListPermissions(ctx context.Context, fileID string) ([]*drive.Permission, error) {
	if _, ok := f.files[fileID]; !ok {
		return nil, &drive.Error{Op: "list permissions of file " + fileID, Err: fmt.Errorf("file not found")}
	}
	return f.perms[fileID], nil
}

func (f *fakeDrive) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	perms := f.perms[fileID]
	for i, p := range perms {
		if p.ID == permissionID {
			f.perms[fileID] = append(perms[:i], perms[i+1:]...)
			return nil
		}
	}
	return &drive.Error{Op: "remove permission " + permissionID, Err: fmt.Errorf("permission not found")}
}

// newTestShell builds a Shell over a fake Drive with buffered output and a
// temporary home directory.
func newTestShell(t *testing.T, fake *fakeDrive) (*Shell, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	sh, err := New(Config{
		Drive:   fake,
		RootID:  fakeRootID,
		Stdout:  out,
		HomeDir: t.TempDir(),
	})
	require.NoError(t, err)
	return sh, out
}
