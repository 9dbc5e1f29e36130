package shell

import (
	"context"

	"github.com/mallamanno/drivesh/internal/resolver"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// Session holds the shell's working-directory state: the folder ID the
// next relative path resolves against and the display path rendered in
// the prompt. It lives for one shell process and starts at the root.
type Session struct {
	dirID string
	path  vpath.Path
}

// NewSession creates a session anchored at the root folder.
func NewSession(rootID string) *Session {
	return &Session{dirID: rootID, path: vpath.Root}
}

// DirID returns the file ID of the current working directory.
func (s *Session) DirID() string {
	return s.dirID
}

// Path returns the absolute virtual path of the current working directory.
func (s *Session) Path() vpath.Path {
	return s.path
}

// Current returns the display path for prompt rendering.
func (s *Session) Current() string {
	return s.path.String()
}

// ChangeDirectory resolves path, verifies it is a folder and only then
// commits the new working directory. On any failure the session is left
// unchanged.
func (s *Session) ChangeDirectory(ctx context.Context, r *resolver.Resolver, path vpath.Path) error {
	abs := s.path.Join(path)

	folder, err := r.Resolve(ctx, abs, s.dirID)
	if err != nil {
		return err
	}
	if !folder.IsFolder() {
		return &resolver.NotADirectoryError{Path: abs.String()}
	}

	s.dirID = folder.ID
	s.path = abs
	return nil
}
