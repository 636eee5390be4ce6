// Copyright (c) 2026 Kasane. All rights reserved.

// Package genre provides the flat genre taxonomy applied to comics.
package genre

import "time"

// Genre is a categorization label attached to comics.
type Genre struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}
