// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package comic provides the catalogue domain: the publications readers browse.

It owns the [Comic] aggregate and its lifecycle (creation, metadata updates,
soft deletion). Chapters and pages belong to the sibling chapter package;
a comic is only the container with discovery metadata.
*/
package comic

import "time"

// # Publication Status

// Status represents the publication status of a comic.
type Status string

const (
	// StatusOngoing indicates the publication is actively updating.
	StatusOngoing Status = "ongoing"
	// StatusCompleted indicates no further chapters are expected.
	StatusCompleted Status = "completed"
	// StatusHiatus indicates the publication is paused indefinitely.
	StatusHiatus Status = "hiatus"
	// StatusCancelled indicates the publication has been permanently discontinued.
	StatusCancelled Status = "cancelled"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusOngoing, StatusCompleted, StatusHiatus, StatusCancelled:
		return true
	}
	return false
}

// # Aggregate

// Comic is the central aggregate of the Kasane catalogue.
//
// # Overview
//
// It represents a single serialised publication (manga, manhwa, webtoon, etc.).
// Chapter content is attached through the ingestion pipeline, never embedded here.
type Comic struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"` // URL-safe identifier (e.g. "blade-of-dawn").
	Synopsis       string     `json:"synopsis,omitempty"`
	CoverURL       string     `json:"cover_url,omitempty"`
	Status         Status     `json:"status"`
	OriginLanguage string     `json:"origin_language,omitempty"` // BCP-47 language tag (e.g. "ja", "ko").
	ViewCount      int64      `json:"view_count"`                // Updated by background flushes, not API writes.
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"` // nil = active; non-nil = soft-deleted.
}

// # Filter Criteria

// Filter holds the parameters for a filtered comic list query.
type Filter struct {
	Status  *Status // Publication status filter.
	Query   string  // Title search term.
	SortBy  string  // "title", "viewcount", "updatedat".
	SortDir string  // "asc" or "desc".
}

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldSlug     = "slug"
	FieldSynopsis = "synopsis"
	FieldStatus   = "status"
	FieldLanguage = "origin_language"
)

// # Update Patch

// Patch carries a partial update; nil fields are left untouched.
//
// # Why pointers?
//
// A PATCH request must distinguish "field absent" from "field set to the
// zero value" (e.g. clearing a synopsis). Pointer fields encode that
// three-state semantics without a separate dirty-tracking mechanism.
type Patch struct {
	Title          *string `json:"title"`
	Synopsis       *string `json:"synopsis"`
	Status         *Status `json:"status"`
	OriginLanguage *string `json:"origin_language"`
}
