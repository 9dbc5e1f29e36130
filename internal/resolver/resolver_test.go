package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// fakeService is an in-memory file graph implementing Service.
type fakeService struct {
	files  map[string]*drive.FileInfo
	nextID int
}

func newFakeService() *fakeService {
	f := &fakeService{files: map[string]*drive.FileInfo{}}
	f.files["root"] = &drive.FileInfo{ID: "root", Name: "My Drive", MimeType: drive.FolderMimeType}
	return f
}

func (f *fakeService) addFolder(id, name, parentID string) *drive.FileInfo {
	return f.add(&drive.FileInfo{ID: id, Name: name, MimeType: drive.FolderMimeType, Parents: []string{parentID}})
}

func (f *fakeService) addFile(id, name, parentID string) *drive.FileInfo {
	return f.add(&drive.FileInfo{ID: id, Name: name, MimeType: "text/plain", Parents: []string{parentID}})
}

func (f *fakeService) add(file *drive.FileInfo) *drive.FileInfo {
	f.files[file.ID] = file
	return file
}

func (f *fakeService) ChildrenByName(ctx context.Context, parentID, name string, trashed bool) ([]*drive.FileInfo, error) {
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

func (f *fakeService) GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error) {
	file, ok := f.files[fileID]
	if !ok {
		return nil, &drive.Error{Op: "get file " + fileID, Err: assert.AnError}
	}
	return file, nil
}

func (f *fakeService) CreateFolder(ctx context.Context, name string, parentFolders []string) (*drive.FileInfo, error) {
	f.nextID++
	folder := &drive.FileInfo{
		ID:       "created-" + name,
		Name:     name,
		MimeType: drive.FolderMimeType,
		Parents:  parentFolders,
	}
	f.files[folder.ID] = folder
	return folder, nil
}

func TestResolveRoot(t *testing.T) {
	svc := newFakeService()
	r := New(svc, "root")

	file, err := r.Resolve(context.Background(), vpath.Root, "anything")
	require.NoError(t, err)
	assert.Equal(t, "root", file.ID)
}

func TestResolveAbsolutePath(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	svc.addFile("report", "report.pdf", "docs")
	r := New(svc, "root")

	file, err := r.Resolve(context.Background(), vpath.Parse("/docs/report.pdf"), "root")
	require.NoError(t, err)
	assert.Equal(t, "report", file.ID)
}

func TestResolveAbsoluteIgnoresBase(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	svc.addFile("report", "report.pdf", "docs")
	r := New(svc, "root")

	// The base is deep inside the tree; an absolute path must not care.
	file, err := r.Resolve(context.Background(), vpath.Parse("/docs"), "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", file.ID)
}

func TestResolveRelativePath(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	svc.addFile("report", "report.pdf", "docs")
	r := New(svc, "root")

	file, err := r.Resolve(context.Background(), vpath.Parse("report.pdf"), "docs")
	require.NoError(t, err)
	assert.Equal(t, "report", file.ID)
}

func TestResolveEmptyRelativePathIsBase(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	r := New(svc, "root")

	file, err := r.Resolve(context.Background(), vpath.Parse(""), "docs")
	require.NoError(t, err)
	assert.Equal(t, "docs", file.ID)
}

func TestResolveNotFound(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	r := New(svc, "root")

	_, err := r.Resolve(context.Background(), vpath.Parse("/docs/missing.txt"), "root")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "/docs/missing.txt", notFound.Path)
}

func TestResolveThroughFile(t *testing.T) {
	svc := newFakeService()
	svc.addFile("report", "report.pdf", "root")
	r := New(svc, "root")

	_, err := r.Resolve(context.Background(), vpath.Parse("/report.pdf/child"), "root")
	var notDir *NotADirectoryError
	require.ErrorAs(t, err, &notDir)
	assert.Equal(t, "/report.pdf", notDir.Path)
}

func TestResolveDuplicatePicksSmallestID(t *testing.T) {
	svc := newFakeService()
	svc.addFile("id-b", "dup.txt", "root")
	svc.addFile("id-a", "dup.txt", "root")
	svc.addFile("id-c", "dup.txt", "root")
	r := New(svc, "root")

	file, err := r.Resolve(context.Background(), vpath.Parse("/dup.txt"), "root")
	require.NoError(t, err)
	assert.Equal(t, "id-a", file.ID)
}

func TestResolveDuplicateStrict(t *testing.T) {
	svc := newFakeService()
	svc.addFile("id-b", "dup.txt", "root")
	svc.addFile("id-a", "dup.txt", "root")
	r := New(svc, "root")
	r.Policy = Strict

	_, err := r.Resolve(context.Background(), vpath.Parse("/dup.txt"), "root")
	var ambiguous *AmbiguousNameError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, "/dup.txt", ambiguous.Path)
	assert.Equal(t, []string{"id-a", "id-b"}, ambiguous.IDs)
}

func TestResolveSkipsTrashedFiles(t *testing.T) {
	svc := newFakeService()
	trashed := svc.addFile("gone", "report.pdf", "root")
	trashed.Trashed = true
	r := New(svc, "root")

	_, err := r.Resolve(context.Background(), vpath.Parse("/report.pdf"), "root")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveInTrash(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	trashed := svc.addFile("gone", "report.pdf", "docs")
	trashed.Trashed = true
	r := New(svc, "root")

	// Intermediate segments walk the live tree, only the terminal one is
	// looked up among trashed children.
	file, err := r.ResolveInTrash(context.Background(), vpath.Parse("/docs/report.pdf"), "root")
	require.NoError(t, err)
	assert.Equal(t, "gone", file.ID)
}

func TestResolveInTrashIgnoresLiveFiles(t *testing.T) {
	svc := newFakeService()
	svc.addFile("alive", "report.pdf", "root")
	r := New(svc, "root")

	_, err := r.ResolveInTrash(context.Background(), vpath.Parse("/report.pdf"), "root")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResolveInTrashEmptyPath(t *testing.T) {
	svc := newFakeService()
	r := New(svc, "root")

	_, err := r.ResolveInTrash(context.Background(), vpath.Root, "root")
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestEnsureFolderCreatesMissingChain(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	r := New(svc, "root")

	folder, err := r.EnsureFolder(context.Background(), vpath.Parse("/docs/taxes/2024"), "root")
	require.NoError(t, err)
	assert.Equal(t, "2024", folder.Name)

	// Both folders now resolve
	taxes, err := r.Resolve(context.Background(), vpath.Parse("/docs/taxes"), "root")
	require.NoError(t, err)
	assert.True(t, taxes.IsFolder())
	assert.Equal(t, []string{taxes.ID}, folder.Parents)
}

func TestEnsureFolderReusesExisting(t *testing.T) {
	svc := newFakeService()
	svc.addFolder("docs", "docs", "root")
	r := New(svc, "root")

	folder, err := r.EnsureFolder(context.Background(), vpath.Parse("/docs"), "root")
	require.NoError(t, err)
	assert.Equal(t, "docs", folder.ID)
	assert.Len(t, svc.files, 2, "no folder should have been created")
}

func TestEnsureFolderFailsOnFile(t *testing.T) {
	svc := newFakeService()
	svc.addFile("report", "report.pdf", "root")
	r := New(svc, "root")

	_, err := r.EnsureFolder(context.Background(), vpath.Parse("/report.pdf"), "root")
	var notDir *NotADirectoryError
	require.ErrorAs(t, err, &notDir)
	assert.Equal(t, "/report.pdf", notDir.Path)
}

func TestEnsureFolderFailsOnFileMidPath(t *testing.T) {
	svc := newFakeService()
	svc.addFile("report", "report.pdf", "root")
	r := New(svc, "root")

	_, err := r.EnsureFolder(context.Background(), vpath.Parse("/report.pdf/sub"), "root")
	var notDir *NotADirectoryError
	assert.ErrorAs(t, err, &notDir)
}
