package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/resolver"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// cmdPull downloads a remote file, or a folder with -f (its subfolders
// too with -r). The local path is relative to the home directory unless
// absolute.
func (s *Shell) cmdPull(ctx context.Context, args []string) error {
	fs := newFlagSet("pull")
	folder := fs.BoolP("folder", "f", false, "download the contents of a folder")
	recursive := fs.BoolP("recursive", "r", false, "descend into subfolders")
	if err := parseFlags(fs, "pull", usagePull, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "pull", usagePull, 2, 2); err != nil {
		return err
	}

	remote, _, err := s.resolvePath(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	local := s.localPath(fs.Arg(1))

	if remote.IsFolder() {
		if !*folder {
			return &UsageError{Command: "pull", Usage: usagePull,
				Reason: "the remote path is a folder, use --folder to download it"}
		}
		return s.pullFolder(ctx, remote, local, *recursive)
	}

	return s.pullFile(ctx, remote, local)
}

// pullFile downloads one file to localPath, exporting Google-native
// documents to the format implied by the local extension.
func (s *Shell) pullFile(ctx context.Context, remote *drive.FileInfo, localPath string) error {
	var (
		content io.ReadCloser
		err     error
	)
	if remote.IsGoogleDoc() {
		mimeType, ok := drive.ExportMimeType(localPath)
		if !ok {
			return fmt.Errorf("no export conversion for %q, supported extensions: %s",
				filepath.Ext(localPath), strings.Join(drive.SupportedExportExtensions(), " "))
		}
		content, err = s.drive.Export(ctx, remote.ID, mimeType)
	} else {
		content, err = s.drive.Download(ctx, remote.ID)
	}
	if err != nil {
		return err
	}
	defer content.Close()

	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return &LocalIOError{Path: filepath.Dir(localPath), Err: err}
	}

	out, err := os.Create(localPath)
	if err != nil {
		return &LocalIOError{Path: localPath, Err: err}
	}

	_, err = io.Copy(out, content)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return &LocalIOError{Path: localPath, Err: err}
	}
	return nil
}

// pullFolder downloads the files of a folder into localDir, descending
// into subfolders when recursive is set.
func (s *Shell) pullFolder(ctx context.Context, remote *drive.FileInfo, localDir string, recursive bool) error {
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return &LocalIOError{Path: localDir, Err: err}
	}

	children, err := s.drive.ListChildren(ctx, remote.ID, false)
	if err != nil {
		return err
	}

	for _, child := range children {
		childLocal := filepath.Join(localDir, child.Name)
		if child.IsFolder() {
			if !recursive {
				continue
			}
			if err := s.pullFolder(ctx, child, childLocal, true); err != nil {
				return err
			}
			continue
		}
		if err := s.pullFile(ctx, child, childLocal); err != nil {
			return err
		}
	}
	return nil
}

// cmdPush uploads a local file, or a directory with -f (its
// subdirectories too with -r). Missing remote folders are created.
func (s *Shell) cmdPush(ctx context.Context, args []string) error {
	fs := newFlagSet("push")
	folder := fs.BoolP("folder", "f", false, "upload the contents of a directory")
	recursive := fs.BoolP("recursive", "r", false, "descend into subdirectories")
	if err := parseFlags(fs, "push", usagePush, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "push", usagePush, 2, 2); err != nil {
		return err
	}

	local := s.localPath(fs.Arg(0))
	info, err := os.Stat(local)
	if err != nil {
		return &LocalIOError{Path: local, Err: err}
	}
	remoteAbs := s.absPath(fs.Arg(1))

	if info.IsDir() {
		if !*folder {
			return &UsageError{Command: "push", Usage: usagePush,
				Reason: "the local path is a directory, use --folder to upload it"}
		}
		if _, err := s.resolver.EnsureFolder(ctx, remoteAbs, s.session.DirID()); err != nil {
			return err
		}
		return s.pushFolder(ctx, local, remoteAbs, *recursive)
	}

	return s.pushFile(ctx, local, remoteAbs)
}

// pushFile uploads one local file. An existing file at the resolved path
// is updated in place, keeping its ID and sharing state; a path naming an
// existing folder receives the file under its local name; anything else
// is created, with missing parent folders made on the way.
func (s *Shell) pushFile(ctx context.Context, localPath string, remoteAbs vpath.Path) error {
	existing, err := s.resolver.Resolve(ctx, remoteAbs, s.session.DirID())
	if err == nil && existing.IsFolder() {
		remoteAbs = remoteAbs.Child(filepath.Base(localPath))
		existing, err = s.resolver.Resolve(ctx, remoteAbs, s.session.DirID())
	}

	switch {
	case err == nil:
		if existing.IsFolder() {
			return fmt.Errorf("remote path %q is a folder", remoteAbs.String())
		}
		content, err := os.Open(localPath)
		if err != nil {
			return &LocalIOError{Path: localPath, Err: err}
		}
		defer content.Close()
		_, err = s.drive.UpdateContent(ctx, existing.ID, content)
		return err

	case isNotFound(err):
		parent, err := s.resolver.EnsureFolder(ctx, remoteAbs.Dir(), s.session.DirID())
		if err != nil {
			return err
		}
		content, err := os.Open(localPath)
		if err != nil {
			return &LocalIOError{Path: localPath, Err: err}
		}
		defer content.Close()
		_, err = s.drive.UploadFile(ctx, remoteAbs.Base(), content, &drive.UploadOptions{
			ParentFolders: []string{parent.ID},
			MimeType:      mime.TypeByExtension(filepath.Ext(localPath)),
		})
		return err

	default:
		return err
	}
}

// pushFolder uploads the files of a local directory into the remote
// folder at remoteAbs, descending into subdirectories when recursive.
func (s *Shell) pushFolder(ctx context.Context, localDir string, remoteAbs vpath.Path, recursive bool) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return &LocalIOError{Path: localDir, Err: err}
	}

	for _, entry := range entries {
		childLocal := filepath.Join(localDir, entry.Name())
		childAbs := remoteAbs.Child(entry.Name())

		if entry.IsDir() {
			if !recursive {
				continue
			}
			if _, err := s.resolver.EnsureFolder(ctx, childAbs, s.session.DirID()); err != nil {
				return err
			}
			if err := s.pushFolder(ctx, childLocal, childAbs, true); err != nil {
				return err
			}
			continue
		}

		if err := s.pushFile(ctx, childLocal, childAbs); err != nil {
			return err
		}
	}
	return nil
}

// isNotFound reports whether err is a resolver NotFoundError.
func isNotFound(err error) bool {
	var notFound *resolver.NotFoundError
	return errors.As(err, &notFound)
}
