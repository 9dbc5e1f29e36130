// Package resolver translates virtual paths into Drive file IDs.
//
// Drive stores a flat file graph with parent pointers and non-unique
// names, so a path like /docs/report.pdf has no server-side meaning. The
// resolver walks it segment by segment: each step is one children-by-name
// lookup under the current folder ID. There is no caching across calls;
// every resolution sees the current state of the Drive.
package resolver

import (
	"context"
	"sort"

	"github.com/mallamanno/drivesh/internal/drive"
	"github.com/mallamanno/drivesh/internal/vpath"
)

// Service is the slice of the Drive client the resolver consumes.
type Service interface {
	// ChildrenByName lists direct children of a folder matching a name
	// exactly. trashed selects between trashed-only and non-trashed-only.
	ChildrenByName(ctx context.Context, parentID, name string, trashed bool) ([]*drive.FileInfo, error)

	// GetFile retrieves metadata for a file ID.
	GetFile(ctx context.Context, fileID string) (*drive.FileInfo, error)

	// CreateFolder creates a folder under the given parents.
	CreateFolder(ctx context.Context, name string, parentFolders []string) (*drive.FileInfo, error)
}

// Policy decides what happens when a segment name matches several files.
type Policy int

const (
	// PickSmallestID deterministically picks the match with the
	// lexicographically smallest file ID. Stable across runs regardless
	// of the order the API returns matches in.
	PickSmallestID Policy = iota

	// Strict fails with AmbiguousNameError on multiple matches. Used
	// where picking the wrong duplicate would be destructive.
	Strict
)

// Resolver walks virtual paths through the Drive file graph.
type Resolver struct {
	service Service
	rootID  string

	// Policy is the duplicate-name policy, PickSmallestID by default.
	Policy Policy
}

// New creates a Resolver anchored at the given root folder ID.
func New(service Service, rootID string) *Resolver {
	return &Resolver{service: service, rootID: rootID}
}

// RootID returns the Drive root folder ID the resolver is anchored at.
func (r *Resolver) RootID() string {
	return r.rootID
}

// Resolve translates a path into file metadata. Absolute paths ignore
// baseID and start at the root; relative ones start at baseID. Each
// segment must name exactly one non-trashed child (subject to Policy),
// and every intermediate segment must be a folder.
func (r *Resolver) Resolve(ctx context.Context, path vpath.Path, baseID string) (*drive.FileInfo, error) {
	return r.resolve(ctx, path, baseID, false)
}

// ResolveInTrash is Resolve for trashed files: intermediate segments walk
// the live folder tree, the terminal segment is looked up among trashed
// children. Trashed files keep their original parent, which is what makes
// this walk possible.
func (r *Resolver) ResolveInTrash(ctx context.Context, path vpath.Path, baseID string) (*drive.FileInfo, error) {
	if len(path.Segments) == 0 {
		return nil, &NotFoundError{Path: path.String()}
	}
	return r.resolve(ctx, path, baseID, true)
}

func (r *Resolver) resolve(ctx context.Context, path vpath.Path, baseID string, terminalInTrash bool) (*drive.FileInfo, error) {
	startID := baseID
	if path.Absolute {
		startID = r.rootID
	}

	if len(path.Segments) == 0 {
		file, err := r.service.GetFile(ctx, startID)
		if err != nil {
			return nil, err
		}
		return file, nil
	}

	current, err := r.service.GetFile(ctx, startID)
	if err != nil {
		return nil, err
	}

	last := len(path.Segments) - 1
	for i, seg := range path.Segments {
		prefix := vpath.Path{Absolute: path.Absolute, Segments: path.Segments[:i+1]}

		if !current.IsFolder() {
			return nil, &NotADirectoryError{Path: prefix.Dir().String()}
		}

		trashed := terminalInTrash && i == last
		matches, err := r.service.ChildrenByName(ctx, current.ID, seg, trashed)
		if err != nil {
			return nil, err
		}

		current, err = r.pick(matches, prefix)
		if err != nil {
			return nil, err
		}
	}

	return current, nil
}

// EnsureFolder resolves a path to a folder, creating missing folders along
// the way. Existing segments that resolve to regular files fail with
// NotADirectoryError.
func (r *Resolver) EnsureFolder(ctx context.Context, path vpath.Path, baseID string) (*drive.FileInfo, error) {
	startID := baseID
	if path.Absolute {
		startID = r.rootID
	}

	current, err := r.service.GetFile(ctx, startID)
	if err != nil {
		return nil, err
	}

	for i, seg := range path.Segments {
		prefix := vpath.Path{Absolute: path.Absolute, Segments: path.Segments[:i+1]}

		if !current.IsFolder() {
			return nil, &NotADirectoryError{Path: prefix.Dir().String()}
		}

		matches, err := r.service.ChildrenByName(ctx, current.ID, seg, false)
		if err != nil {
			return nil, err
		}

		if len(matches) == 0 {
			current, err = r.service.CreateFolder(ctx, seg, []string{current.ID})
			if err != nil {
				return nil, err
			}
			continue
		}

		current, err = r.pick(matches, prefix)
		if err != nil {
			return nil, err
		}
	}

	if !current.IsFolder() {
		return nil, &NotADirectoryError{Path: path.String()}
	}
	return current, nil
}

// pick applies the duplicate-name policy to the matches of one segment.
func (r *Resolver) pick(matches []*drive.FileInfo, prefix vpath.Path) (*drive.FileInfo, error) {
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{Path: prefix.String()}
	case 1:
		return matches[0], nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })

	if r.Policy == Strict {
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, &AmbiguousNameError{Path: prefix.String(), IDs: ids}
	}

	return matches[0], nil
}
