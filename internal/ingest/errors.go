// Copyright (c) 2026 Kasane. All rights reserved.

package ingest

import "errors"

// # Fatal Errors

// Fatal import errors abort the whole call; nothing is imported.
var (
	// ErrCorruptArchive means the upload could not be opened or read as a
	// ZIP archive.
	ErrCorruptArchive = errors.New("ingest: archive is corrupt or not a valid zip")

	// ErrNoChaptersFound means the archive opened fine but no directory
	// matched the chapter convention.
	ErrNoChaptersFound = errors.New("ingest: no chapter directories found in archive")
)

// # Rejection Taxonomy

// RejectReason classifies why a chapter directory was skipped.
//
// Rejections are non-fatal: the import still succeeds with the remaining
// groups, and every skipped directory is reported — nothing is silently
// discarded.
type RejectReason string

const (
	// RejectNoNumberFound: the directory name carries no numeric token to
	// derive a chapter number from.
	RejectNoNumberFound RejectReason = "no_number_found"

	// RejectEmptyChapter: the directory holds no valid page images.
	RejectEmptyChapter RejectReason = "empty_chapter"

	// RejectDuplicateChapterNumber: another directory earlier in the archive
	// already derived the same number; first seen wins.
	RejectDuplicateChapterNumber RejectReason = "duplicate_chapter_number"

	// RejectNumberTaken: the comic already has a persisted chapter with this
	// number. Only produced by the orchestration layer, never by the pure
	// importer.
	RejectNumberTaken RejectReason = "chapter_number_taken"
)

// Rejection records one skipped directory and the reason it was skipped.
type Rejection struct {
	Directory string       `json:"directory"`
	Reason    RejectReason `json:"reason"`
}
