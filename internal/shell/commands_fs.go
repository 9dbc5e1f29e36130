package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/resolver"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// cmdLs lists the working directory, or the directory named by the
// optional path argument or --dir flag.
func (s *Shell) cmdLs(ctx context.Context, args []string) error {
	fs := newFlagSet("ls")
	verbose := fs.BoolP("verbose", "l", false, "list verbose information per file")
	all := fs.BoolP("all", "a", false, "include trashed files")
	starred := fs.BoolP("starred", "s", false, "only list starred files")
	dir := fs.String("dir", "", "directory to list instead of the working directory")
	if err := parseFlags(fs, "ls", usageLs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "ls", usageLs, 0, 1); err != nil {
		return err
	}

	target := *dir
	if fs.NArg() == 1 {
		if target != "" {
			return &UsageError{Command: "ls", Usage: usageLs,
				Reason: "the directory was given both as --dir and as an argument"}
		}
		target = fs.Arg(0)
	}

	dirID := s.session.DirID()
	if target != "" {
		folder, abs, err := s.resolvePath(ctx, target)
		if err != nil {
			return err
		}
		if !folder.IsFolder() {
			return &resolver.NotADirectoryError{Path: abs.String()}
		}
		dirID = folder.ID
	}

	children, err := s.drive.ListChildren(ctx, dirID, *all)
	if err != nil {
		return err
	}

	if *starred {
		filtered := children[:0]
		for _, f := range children {
			if f.Starred {
				filtered = append(filtered, f)
			}
		}
		children = filtered
	}

	s.printListing(children, *verbose)
	return nil
}

// cmdCd changes the working directory.
func (s *Shell) cmdCd(ctx context.Context, args []string) error {
	fs := newFlagSet("cd")
	if err := parseFlags(fs, "cd", usageCd, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "cd", usageCd, 1, 1); err != nil {
		return err
	}

	return s.session.ChangeDirectory(ctx, s.resolver, vpath.Parse(fs.Arg(0)))
}

// cmdRm trashes a file, or deletes it permanently with -d. Permanent
// deletion resolves under the strict duplicate-name policy: deleting the
// wrong duplicate cannot be undone.
func (s *Shell) cmdRm(ctx context.Context, args []string) error {
	fs := newFlagSet("rm")
	permanent := fs.BoolP("delete", "d", false, "delete permanently instead of trashing")
	if err := parseFlags(fs, "rm", usageRm, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "rm", usageRm, 1, 1); err != nil {
		return err
	}

	r := s.resolver
	if *permanent {
		strict := *s.resolver
		strict.Policy = resolver.Strict
		r = &strict
	}

	abs := s.absPath(fs.Arg(0))
	file, err := r.Resolve(ctx, abs, s.session.DirID())
	if err != nil {
		return err
	}
	if file.ID == s.resolver.RootID() {
		return fmt.Errorf("the root folder cannot be removed")
	}

	if *permanent {
		return s.drive.Delete(ctx, file.ID)
	}
	return s.drive.Trash(ctx, file.ID)
}

// cmdMv moves and/or renames a file. A destination that resolves to an
// existing folder receives the file under its current name; otherwise the
// destination's parent must exist and the final segment becomes the new
// name.
func (s *Shell) cmdMv(ctx context.Context, args []string) error {
	fs := newFlagSet("mv")
	if err := parseFlags(fs, "mv", usageMv, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "mv", usageMv, 2, 2); err != nil {
		return err
	}

	src, srcAbs, err := s.resolvePath(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if src.ID == s.resolver.RootID() {
		return fmt.Errorf("the root folder cannot be moved")
	}

	srcParent, err := s.resolver.Resolve(ctx, srcAbs.Dir(), s.session.DirID())
	if err != nil {
		return err
	}

	destAbs := s.absPath(fs.Arg(1))
	options, err := s.movePlan(ctx, src, srcParent, destAbs)
	if err != nil {
		return err
	}
	if options == nil {
		return nil // nothing to do
	}

	_, err = s.drive.MoveFile(ctx, src.ID, options)
	return err
}

// movePlan decides the parent and name changes for a mv invocation.
func (s *Shell) movePlan(ctx context.Context, src, srcParent *drive.FileInfo, destAbs vpath.Path) (*drive.MoveOptions, error) {
	dest, err := s.resolver.Resolve(ctx, destAbs, s.session.DirID())
	if err == nil {
		if !dest.IsFolder() {
			return nil, fmt.Errorf("remote path %q already exists", destAbs.String())
		}
		if dest.ID == srcParent.ID {
			return nil, nil // moving into its own parent
		}
		return &drive.MoveOptions{
			AddParents:    []string{dest.ID},
			RemoveParents: []string{srcParent.ID},
		}, nil
	}

	var notFound *resolver.NotFoundError
	if !errors.As(err, &notFound) {
		return nil, err
	}

	destParent, err := s.resolver.Resolve(ctx, destAbs.Dir(), s.session.DirID())
	if err != nil {
		return nil, err
	}
	if !destParent.IsFolder() {
		return nil, &resolver.NotADirectoryError{Path: destAbs.Dir().String()}
	}

	options := &drive.MoveOptions{NewName: destAbs.Base()}
	if destParent.ID != srcParent.ID {
		options.AddParents = []string{destParent.ID}
		options.RemoveParents = []string{srcParent.ID}
	}
	return options, nil
}

// cmdRecover restores a trashed file to its original parent.
func (s *Shell) cmdRecover(ctx context.Context, args []string) error {
	fs := newFlagSet("recover")
	if err := parseFlags(fs, "recover", usageRecover, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "recover", usageRecover, 1, 1); err != nil {
		return err
	}

	abs := s.absPath(fs.Arg(0))
	file, err := s.resolver.ResolveInTrash(ctx, abs, s.session.DirID())
	if err != nil {
		return err
	}

	return s.drive.Untrash(ctx, file.ID)
}
