package shell

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/mallamanno/drivesh/internal/drive"
)

const displayTimeFormat = "2006-01-02 15:04:05"

var (
	folderColor  = color.New(color.FgMagenta)
	fileColor    = color.New(color.FgCyan)
	trashedColor = color.New(color.FgRed)
	labelColor   = color.New(color.FgCyan)
	headerColor  = color.New(color.FgMagenta)
)

// entryColor picks the listing color: folders magenta, files cyan,
// trashed entries red.
func entryColor(f *drive.FileInfo) *color.Color {
	switch {
	case f.Trashed:
		return trashedColor
	case f.IsFolder():
		return folderColor
	default:
		return fileColor
	}
}

// clearScreen resets the terminal and moves the cursor to the top left.
func (s *Shell) clearScreen() {
	fmt.Fprint(s.stdout, "\x1b[H\x1b[2J")
}

// printListing renders a directory listing: a compact five-per-row name
// grid, or one file per line with owners, modification time and ID when
// verbose is set.
func (s *Shell) printListing(files []*drive.FileInfo, verbose bool) {
	if len(files) == 0 {
		return
	}

	if !verbose {
		for i, f := range files {
			entryColor(f).Fprintf(s.stdout, "%-20s", f.Name)
			if (i+1)%5 == 0 || i == len(files)-1 {
				fmt.Fprintln(s.stdout)
			} else {
				fmt.Fprint(s.stdout, " ")
			}
		}
		return
	}

	w := tabwriter.NewWriter(s.stdout, 2, 4, 2, ' ', 0)
	for _, f := range files {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			strings.Join(f.OwnerNames(), ","),
			f.ModifiedTime.Format(displayTimeFormat),
			f.ID,
			entryColor(f).Sprint(f.Name))
	}
	w.Flush()
}

// printLabel prints a cyan "Label: value" line.
func (s *Shell) printLabel(label string, value interface{}) {
	labelColor.Fprintf(s.stdout, "%s: ", label)
	fmt.Fprintln(s.stdout, value)
}

// printHeader prints a magenta section header.
func (s *Shell) printHeader(header string) {
	headerColor.Fprintln(s.stdout, header)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format(displayTimeFormat)
}
