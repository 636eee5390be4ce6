// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// buildZip assembles an in-memory archive from entry name → content.
// Entries ending in "/" become directory records.
func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for name, content := range entries {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write(content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func TestImport_WellFormedArchive(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapters/Chapter 1/1.png": []byte("p1"),
		"Chapters/Chapter 1/2.png": []byte("p2"),
		"Chapters/Chapter 2/1.png": []byte("p3"),
		"Chapters/Chapter 3/1.png": []byte("p4"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 3)
	assert.Empty(t, result.Rejected)

	assert.Equal(t, 1.0, result.Chapters[0].Number)
	assert.Equal(t, 2.0, result.Chapters[1].Number)
	assert.Equal(t, 3.0, result.Chapters[2].Number)

	assert.Equal(t, "Chapter 1", result.Chapters[0].RawName)
	assert.Len(t, result.Chapters[0].Pages, 2)
	assert.Equal(t, []byte("p1"), result.Chapters[0].Pages[0].Data)
}

func TestImport_NaturalPageOrder(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 1/2.png":  []byte("b"),
		"Chapter 1/10.png": []byte("c"),
		"Chapter 1/1.png":  []byte("a"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	pages := result.Chapters[0].Pages
	require.Len(t, pages, 3)

	assert.Equal(t, "1.png", pages[0].Filename)
	assert.Equal(t, "2.png", pages[1].Filename)
	assert.Equal(t, "10.png", pages[2].Filename)
}

func TestImport_DuplicateNumberFirstSeenWins(t *testing.T) {
	// Write entries in a fixed order so encounter order is deterministic.
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range []string{"Chapter 5/1.png", "Chapter 05/1.png"} {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	result, err := NewImporter(defaultExts).Import(buf.Bytes())
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	assert.Equal(t, "Chapter 5", result.Chapters[0].RawName)

	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "Chapter 05", result.Rejected[0].Directory)
	assert.Equal(t, RejectDuplicateChapterNumber, result.Rejected[0].Reason)
}

func TestImport_FractionalChapterSortsBetween(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 3/1.png":   []byte("x"),
		"Chapter 2/1.png":   []byte("x"),
		"Chapter 2.5/1.png": []byte("x"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 3)
	assert.Equal(t, 2.0, result.Chapters[0].Number)
	assert.Equal(t, 2.5, result.Chapters[1].Number)
	assert.Equal(t, 3.0, result.Chapters[2].Number)
}

func TestImport_NonImageFilesSkippedSilently(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.png":      []byte("x"),
		"Chapter 1/notes.txt":  []byte("scratch"),
		"Chapter 1/Thumbs.db":  []byte("junk"),
		"Chapter 1/cover.webp": []byte("x"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	assert.Empty(t, result.Rejected)
	assert.Len(t, result.Chapters[0].Pages, 2)
}

func TestImport_RejectionTaxonomy(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.png":    []byte("x"),
		"Extras/bonus.txt":   []byte("x"), // no numeric token
		"Chapter 2/note.txt": []byte("x"), // no valid images
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	require.Len(t, result.Rejected, 2)

	reasons := map[string]RejectReason{}
	for _, rejection := range result.Rejected {
		reasons[rejection.Directory] = rejection.Reason
	}

	assert.Equal(t, RejectNoNumberFound, reasons["Extras"])
	assert.Equal(t, RejectEmptyChapter, reasons["Chapter 2"])
}

func TestImport_CorruptArchive(t *testing.T) {
	_, err := NewImporter(defaultExts).Import([]byte("definitely not a zip"))
	assert.ErrorIs(t, err, ErrCorruptArchive)
}

func TestImport_NoChapterDirectories(t *testing.T) {
	tests := []struct {
		name    string
		entries map[string][]byte
	}{
		{"empty_archive", map[string][]byte{}},
		{"only_root_files", map[string][]byte{"cover.png": []byte("x"), "readme.txt": []byte("x")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := buildZip(t, tt.entries)

			_, err := NewImporter(defaultExts).Import(archive)
			assert.ErrorIs(t, err, ErrNoChaptersFound)
		})
	}
}

func TestImport_ContainerFolderDetection(t *testing.T) {
	// A single wrapper directory is transparent; its children are the groups.
	wrapped := buildZip(t, map[string][]byte{
		"MySeries/Chapter 1/1.png": []byte("x"),
		"MySeries/Chapter 2/1.png": []byte("x"),
	})

	result, err := NewImporter(defaultExts).Import(wrapped)
	require.NoError(t, err)
	require.Len(t, result.Chapters, 2)
	assert.Equal(t, "Chapter 1", result.Chapters[0].RawName)

	// A single top-level directory holding images directly is itself the group.
	flat := buildZip(t, map[string][]byte{
		"Chapter 7/1.png": []byte("x"),
		"Chapter 7/2.png": []byte("x"),
	})

	result, err = NewImporter(defaultExts).Import(flat)
	require.NoError(t, err)
	require.Len(t, result.Chapters, 1)
	assert.Equal(t, 7.0, result.Chapters[0].Number)
}

func TestImport_SkipsArchiveToolingArtifacts(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.png":           []byte("x"),
		"__MACOSX/Chapter 1/1.png":  []byte("resource fork"),
		"Chapter 1/.DS_Store":       []byte("junk"),
		"Chapter 1/._1.png":         []byte("junk"),
		".hidden/sneaky.png":        []byte("junk"),
		"Chapter 1/nested/2.png":    []byte("y"),
		"Chapter 1/nested/skip.txt": []byte("junk"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	require.Len(t, result.Chapters[0].Pages, 2)
	assert.Equal(t, "1.png", result.Chapters[0].Pages[0].Filename)
	assert.Equal(t, "2.png", result.Chapters[0].Pages[1].Filename)
}

func TestImport_CaseInsensitiveExtensions(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 1/1.PNG":  []byte("x"),
		"Chapter 1/2.Jpg":  []byte("x"),
		"Chapter 1/3.WEBP": []byte("x"),
	})

	result, err := NewImporter(defaultExts).Import(archive)
	require.NoError(t, err)

	require.Len(t, result.Chapters, 1)
	assert.Len(t, result.Chapters[0].Pages, 3)
	assert.Equal(t, ".png", result.Chapters[0].Pages[0].Extension)
}

func TestImport_Idempotent(t *testing.T) {
	archive := buildZip(t, map[string][]byte{
		"Chapter 2/1.png":  []byte("x"),
		"Chapter 1/1.png":  []byte("x"),
		"Chapter 1b/1.png": []byte("x"), // duplicate of 1
		"Notes/draft.png":  []byte("x"), // no number
	})

	importer := NewImporter(defaultExts)

	first, err := importer.Import(archive)
	require.NoError(t, err)

	second, err := importer.Import(archive)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
