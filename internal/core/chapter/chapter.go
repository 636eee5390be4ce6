// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package chapter provides the serialisation domain: ordered chapters and the
page images readers actually consume.

Chapters are almost always created by the ingestion pipeline rather than by
hand; this package owns their storage, the reader payloads, and the Redis
cache in front of the page lists.
*/
package chapter

import "time"

// # Entities

// Chapter is one release within a comic's serialisation.
//
// Number is a float so fractional releases (extras, omakes, "Chapter 2.5")
// sort correctly between their whole-numbered neighbours.
type Chapter struct {
	ID         string     `json:"id"`
	ComicID    string     `json:"comic_id"`
	UploaderID string     `json:"uploader_id,omitempty"`
	Number     float64    `json:"number"`
	Title      string     `json:"title,omitempty"`
	SourceName string     `json:"source_name,omitempty"` // Directory name inside the uploaded archive.
	PageCount  int        `json:"page_count"`
	ViewCount  int64      `json:"view_count"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"-"`
}

// Page is a single image within a chapter, already ordered for reading.
type Page struct {
	ID         string `json:"id"`
	ChapterID  string `json:"chapter_id"`
	PageNumber int    `json:"page_number"` // 1-based reading position.
	Filename   string `json:"filename"`    // Original filename inside the archive.
	ImageURL   string `json:"image_url"`
}

// # Filter Criteria

// ChapterFilter holds the parameters for a chapter list query.
type ChapterFilter struct {
	SortDir string // "asc" (reading order, default) or "desc" (latest first).
}
