// Package vpath models the slash-delimited virtual paths the shell maps
// onto Drive file IDs. Drive itself has no path concept, only parent
// pointers; a Path is purely a parsing artifact that the resolver walks
// segment by segment.
package vpath

import "strings"

// Path is an ordered sequence of name segments plus an absolute flag.
// Absolute paths are anchored at the Drive root, relative ones at the
// shell's current working directory.
type Path struct {
	Absolute bool
	Segments []string
}

// Root is the absolute path of the Drive root folder.
var Root = Path{Absolute: true}

// Parse splits a raw slash-delimited path into segments. "." segments are
// dropped and ".." segments cancel a preceding segment where possible; in
// a relative path, leading ".." segments that cannot cancel are kept so
// they can later be applied against the working directory. In an absolute
// path, ".." above the root clamps at the root.
func Parse(raw string) Path {
	p := Path{Absolute: strings.HasPrefix(raw, "/")}

	for _, seg := range strings.Split(raw, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			if n := len(p.Segments); n > 0 && p.Segments[n-1] != ".." {
				p.Segments = p.Segments[:n-1]
			} else if !p.Absolute {
				p.Segments = append(p.Segments, "..")
			}
		default:
			p.Segments = append(p.Segments, seg)
		}
	}
	return p
}

// String renders the path in slash notation. The root renders as "/", an
// empty relative path as ".".
func (p Path) String() string {
	if len(p.Segments) == 0 {
		if p.Absolute {
			return "/"
		}
		return "."
	}
	joined := strings.Join(p.Segments, "/")
	if p.Absolute {
		return "/" + joined
	}
	return joined
}

// IsRoot reports whether the path names the Drive root.
func (p Path) IsRoot() bool {
	return p.Absolute && len(p.Segments) == 0
}

// Base returns the final segment, or "" for the root or an empty path.
func (p Path) Base() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// Dir returns the path without its final segment.
func (p Path) Dir() Path {
	if len(p.Segments) == 0 {
		return p
	}
	dir := Path{Absolute: p.Absolute}
	dir.Segments = append(dir.Segments, p.Segments[:len(p.Segments)-1]...)
	return dir
}

// Join resolves other against p. An absolute other stands alone; a
// relative one is appended to p with "." and ".." normalization applied.
func (p Path) Join(other Path) Path {
	if other.Absolute {
		return other
	}
	joined := Path{Absolute: p.Absolute}
	joined.Segments = append(joined.Segments, p.Segments...)
	for _, seg := range other.Segments {
		if seg == ".." {
			if n := len(joined.Segments); n > 0 && joined.Segments[n-1] != ".." {
				joined.Segments = joined.Segments[:n-1]
			} else if !joined.Absolute {
				joined.Segments = append(joined.Segments, "..")
			}
			continue
		}
		joined.Segments = append(joined.Segments, seg)
	}
	return joined
}

// Child returns the path extended by one literal segment.
func (p Path) Child(name string) Path {
	child := Path{Absolute: p.Absolute}
	child.Segments = append(child.Segments, p.Segments...)
	child.Segments = append(child.Segments, name)
	return child
}
