package shell

import (
	"context"
	"path/filepath"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/logging"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// absPath joins a raw remote path argument against the working directory,
// yielding an absolute virtual path.
func (s *Shell) absPath(raw string) vpath.Path {
	return s.session.Path().Join(vpath.Parse(raw))
}

// resolvePath resolves a raw remote path argument and returns the file
// along with the absolute path it resolved through.
func (s *Shell) resolvePath(ctx context.Context, raw string) (*drive.FileInfo, vpath.Path, error) {
	abs := s.absPath(raw)
	file, err := s.resolver.Resolve(ctx, abs, s.session.DirID())
	if err != nil {
		s.logger.Debug("path resolution failed", logging.Path(abs.String()), logging.Err(err))
		return nil, abs, err
	}
	return file, abs, nil
}

// localPath anchors a raw local path argument: absolute paths are used as
// given, everything else is relative to the home directory.
func (s *Shell) localPath(raw string) string {
	if filepath.IsAbs(raw) {
		return raw
	}
	return filepath.Join(s.homeDir, raw)
}
