package shell

import (
	"context"
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/mallamanno/drivesh/internal/drive"
)

// fuzzyThreshold is the minimum similarity score (0-100) for a fuzzy
// search hit.
const fuzzyThreshold = 80

// cmdSearch lists the virtual paths of all files whose name contains the
// term, or fuzzy-matches it with -f. Non-fuzzy search runs server-side
// through Drive's case-insensitive "name contains" query; fuzzy matching
// has to score every name and so runs client-side over a full listing.
func (s *Shell) cmdSearch(ctx context.Context, args []string) error {
	fs := newFlagSet("search")
	useFuzzy := fs.BoolP("fuzzy", "f", false, "use fuzzy string matching")
	if err := parseFlags(fs, "search", usageSearch, args); err != nil {
		return err
	}
	if err := requireArgs(fs, "search", usageSearch, 1, 1); err != nil {
		return err
	}
	term := fs.Arg(0)

	// The full listing is needed either way: fuzzy scoring walks it, and
	// path reconstruction resolves parent IDs through it.
	files, err := s.drive.ListAll(ctx, false)
	if err != nil {
		return err
	}

	index := make(map[string]*drive.FileInfo, len(files))
	for _, f := range files {
		index[f.ID] = f
	}

	type match struct {
		file  *drive.FileInfo
		score int
	}
	var matches []match
	if *useFuzzy {
		for _, f := range files {
			if score := fuzzy.PartialTokenSortRatio(term, f.Name); score >= fuzzyThreshold {
				matches = append(matches, match{file: f, score: score})
			}
		}
	} else {
		hits, err := s.drive.SearchByName(ctx, term)
		if err != nil {
			return err
		}
		for _, f := range hits {
			matches = append(matches, match{file: f, score: 100})
		}
	}

	// Best scores first, ties broken by name
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].file.Name < matches[j].file.Name
	})

	for _, m := range matches {
		for _, path := range s.pathsTo(m.file, index) {
			fileColor.Fprintln(s.stdout, path)
		}
	}
	return nil
}

// pathsTo reconstructs every virtual path of a file by walking its parent
// pointers through the listing index. A file can have several parents and
// therefore several paths. Parents outside the index (e.g. shared
// folders) anchor the path at the root.
func (s *Shell) pathsTo(f *drive.FileInfo, index map[string]*drive.FileInfo) []string {
	rootID := s.resolver.RootID()

	var walk func(f *drive.FileInfo) []string
	walk = func(f *drive.FileInfo) []string {
		var paths []string
		for _, parentID := range f.Parents {
			if parentID == rootID {
				paths = append(paths, "/"+f.Name)
				continue
			}
			parent, ok := index[parentID]
			if !ok {
				paths = append(paths, "/"+f.Name)
				continue
			}
			for _, parentPath := range walk(parent) {
				paths = append(paths, parentPath+"/"+f.Name)
			}
		}
		if len(f.Parents) == 0 {
			paths = append(paths, "/"+f.Name)
		}
		return paths
	}
	return walk(f)
}
