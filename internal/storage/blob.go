// Copyright (c) 2026 Kasane. All rights reserved.

/*
Package storage abstracts durable binary storage for chapter page images.

The ingestion pipeline produces image bytes; where those bytes live (local
disk, object storage, a remote channel) is an infrastructure decision. The
[BlobStore] interface keeps the domain layer free of that decision and lets
tests substitute an in-memory implementation.
*/
package storage

import "context"

// BlobStore persists binary objects under hierarchical keys and returns the
// public URL at which each object can be fetched.
type BlobStore interface {

	/*
		Put stores data under the given key, overwriting any previous object.

		Parameters:
		  - context: context.Context
		  - key: string (Hierarchical object key, e.g. "comics/{id}/chapters/{id}/1.png")
		  - data: []byte (Object content)

		Returns:
		  - string: Public URL for the stored object
		  - error: Storage failure
	*/
	Put(context context.Context, key string, data []byte) (string, error)

	/*
		Remove deletes all objects stored under the given key prefix.

		Parameters:
		  - context: context.Context
		  - prefix: string (Key prefix, e.g. a chapter's directory)

		Returns:
		  - error: Removal failure
	*/
	Remove(context context.Context, prefix string) error
}
