// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package ingest turns uploaded chapter archives into persisted chapters.

The package splits into two layers:

  - [Importer] is a pure, single-pass transform: ZIP bytes in, an ordered
    [ImportResult] out. It holds no state, performs no I/O beyond reading
    the archive, and is safe to call concurrently.
  - [Service] orchestrates persistence: it runs the importer, writes page
    images through the blob store, and records chapters and pages in the
    database.

# Archive Convention

One directory per chapter, each holding that chapter's page images, named so
natural sort order matches reading order:

	Chapters/
	├── Chapter 1/
	│   ├── 1.png ... 10.png
	└── Chapter 2.5/
	    └── ...

The outer container folder is optional: when the archive has exactly one
top-level directory with subdirectories, its children are the chapter
groups; otherwise the top-level directories themselves are.
*/
package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"slices"
	"strings"

	"github.com/kasanehq/kasane/pkg/natsort"
)

// # Import Output

// PageFile is a single page image extracted from the archive.
type PageFile struct {
	Filename  string // Base filename inside the chapter directory.
	Extension string // Lowercased, including the dot.
	Data      []byte
}

// ChapterGroup is one accepted chapter directory with its ordered pages.
type ChapterGroup struct {
	RawName string     // Directory name as it appeared in the archive.
	Number  float64    // Derived chapter number; fractional values allowed.
	Pages   []PageFile // Natural filename order = reading order.
}

// ImportResult is the complete outcome of one archive import.
type ImportResult struct {
	Chapters []ChapterGroup // Sorted by Number ascending.
	Rejected []Rejection    // Every skipped directory, in encounter order.
}

// # Importer

// Importer extracts ordered chapter groups from ZIP archives.
type Importer struct {
	allowedExts map[string]bool
}

// NewImporter constructs an [Importer] accepting the given page image
// extensions (case-insensitive, leading dot required, e.g. ".png").
func NewImporter(allowedExts []string) *Importer {
	exts := make(map[string]bool, len(allowedExts))
	for _, ext := range allowedExts {
		exts[strings.ToLower(ext)] = true
	}
	return &Importer{allowedExts: exts}
}

// group accumulates entries for one candidate chapter directory while the
// archive is being walked.
type group struct {
	rawName string
	pages   []PageFile
}

/*
Import parses archive bytes into ordered chapter groups.

Description: Single-pass transform with no side effects. Directories at the
convention depth become chapter candidates; their image files become pages,
sorted naturally so "2.png" precedes "10.png". Candidates that cannot be
imported are reported in Rejected rather than failing the call. Identical
input bytes always produce an identical result.

Parameters:
  - archive: []byte (Complete ZIP file contents)

Returns:
  - *ImportResult: Accepted groups sorted by number plus the rejection list
  - error: ErrCorruptArchive or ErrNoChaptersFound; both fatal
*/
func (importer *Importer) Import(archive []byte) (*ImportResult, error) {

	// Archive parsing; any failure here is fatal corruption.
	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, ErrCorruptArchive
	}

	// Candidate discovery pass. Groups are keyed by directory name and kept
	// in first-encounter order so rejections are deterministic.
	container := importer.containerFolder(reader.File)

	groups := map[string]*group{}
	var order []string

	register := func(name string) *group {
		if g, ok := groups[name]; ok {
			return g
		}
		g := &group{rawName: name}
		groups[name] = g
		order = append(order, name)
		return g
	}

	for _, file := range reader.File {
		segments := entrySegments(file.Name)
		if segments == nil {
			continue
		}

		// Strip the container folder when present.
		if container != "" {
			if len(segments) < 2 || segments[0] != container {
				continue
			}
			segments = segments[1:]
		}

		if isDirectory(file) {
			// A directory entry at the group depth registers a candidate
			// even when it turns out to hold no pages.
			if len(segments) == 1 {
				register(segments[0])
			}
			continue
		}

		// Files at the archive root (or directly in the container) belong
		// to no chapter and are skipped.
		if len(segments) < 2 {
			continue
		}

		g := register(segments[0])

		// Page filter: extension must be in the allowed image set. Anything
		// else (readme.txt, thumbs.db) is silently skipped.
		filename := segments[len(segments)-1]
		ext := extension(filename)
		if !importer.allowedExts[ext] {
			continue
		}

		data, err := readEntry(file)
		if err != nil {
			return nil, ErrCorruptArchive
		}

		g.pages = append(g.pages, PageFile{
			Filename:  filename,
			Extension: ext,
			Data:      data,
		})
	}

	// An archive with zero candidate directories has nothing to import.
	if len(order) == 0 {
		return nil, ErrNoChaptersFound
	}

	// Acceptance pass: derive numbers, order pages, collect rejections.
	result := &ImportResult{}
	seen := map[float64]bool{}

	for _, name := range order {
		g := groups[name]

		number, ok := deriveChapterNumber(g.rawName)
		if !ok {
			result.Rejected = append(result.Rejected, Rejection{Directory: g.rawName, Reason: RejectNoNumberFound})
			continue
		}

		if len(g.pages) == 0 {
			result.Rejected = append(result.Rejected, Rejection{Directory: g.rawName, Reason: RejectEmptyChapter})
			continue
		}

		// First seen wins on duplicate numbers.
		if seen[number] {
			result.Rejected = append(result.Rejected, Rejection{Directory: g.rawName, Reason: RejectDuplicateChapterNumber})
			continue
		}
		seen[number] = true

		slices.SortStableFunc(g.pages, func(a, b PageFile) int {
			return natsort.Compare(a.Filename, b.Filename)
		})

		result.Chapters = append(result.Chapters, ChapterGroup{
			RawName: g.rawName,
			Number:  number,
			Pages:   g.pages,
		})
	}

	// Reading order across chapters.
	slices.SortStableFunc(result.Chapters, func(a, b ChapterGroup) int {
		switch {
		case a.Number < b.Number:
			return -1
		case a.Number > b.Number:
			return 1
		}
		return 0
	})

	return result, nil
}

// # Archive Walking Helpers

// containerFolder detects the optional outer wrapper directory: exactly one
// top-level directory that contains subdirectories but no page images of
// its own. A top-level directory holding images directly is a chapter, not
// a wrapper, even when it also has nested folders. It returns the wrapper's
// name, or "" when the top-level directories are the chapter groups
// themselves.
func (importer *Importer) containerFolder(files []*zip.File) string {
	topLevel := map[string]bool{}
	hasSubdirs := map[string]bool{}
	hasDirectImages := map[string]bool{}

	for _, file := range files {
		segments := entrySegments(file.Name)
		if segments == nil {
			continue
		}

		topLevel[segments[0]] = true

		// A nested directory, or a file nested two levels deep, proves the
		// top-level entry has subdirectories.
		if len(segments) >= 3 || (len(segments) == 2 && isDirectory(file)) {
			hasSubdirs[segments[0]] = true
		}

		if len(segments) == 2 && !isDirectory(file) && importer.allowedExts[extension(segments[1])] {
			hasDirectImages[segments[0]] = true
		}
	}

	if len(topLevel) != 1 {
		return ""
	}

	for name := range topLevel {
		if hasSubdirs[name] && !hasDirectImages[name] {
			return name
		}
	}
	return ""
}

// entrySegments normalizes a ZIP entry path into its clean segments.
// It returns nil for entries that should be ignored entirely: macOS
// resource forks, dotfiles, and empty paths.
func entrySegments(name string) []string {
	name = strings.Trim(strings.ReplaceAll(name, "\\", "/"), "/")
	if name == "" {
		return nil
	}

	segments := strings.Split(name, "/")
	for _, segment := range segments {
		if segment == "" || segment == "." || segment == ".." {
			return nil
		}
		// Archive tooling artifacts are not content.
		if segment == "__MACOSX" || strings.HasPrefix(segment, ".") {
			return nil
		}
	}

	return segments
}

// isDirectory reports whether the entry is a directory record.
func isDirectory(file *zip.File) bool {
	return strings.HasSuffix(file.Name, "/") || file.FileInfo().IsDir()
}

// extension returns the lowercased filename extension including the dot.
func extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx:])
}

// readEntry fully reads one archive entry into memory.
func readEntry(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
