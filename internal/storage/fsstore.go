// Copyright (c) 2026 Kasane. All rights reserved.

package storage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FSStore is a [BlobStore] backed by the local filesystem.
//
// # Layout
//
// Objects are written under the configured root directory, mirroring their
// key hierarchy. The returned URLs are the configured public prefix plus the
// key, so the root can be served directly by the HTTP layer (or any CDN
// pointed at the same directory).
type FSStore struct {
	root      string
	urlPrefix string
}

// NewFSStore constructs a filesystem blob store rooted at dir.
// The directory is created if it does not exist.
func NewFSStore(dir, urlPrefix string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create media root %s: %w", dir, err)
	}

	return &FSStore{
		root:      dir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// Put writes data to root/key, creating intermediate directories as needed.
func (store *FSStore) Put(_ context.Context, key string, data []byte) (string, error) {
	cleanKey, err := store.sanitizeKey(key)
	if err != nil {
		return "", err
	}

	targetPath := filepath.Join(store.root, filepath.FromSlash(cleanKey))

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return "", fmt.Errorf("storage: failed to create directory for %s: %w", cleanKey, err)
	}

	if err := os.WriteFile(targetPath, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: failed to write %s: %w", cleanKey, err)
	}

	return store.urlPrefix + "/" + cleanKey, nil
}

// Remove deletes the subtree stored under the given key prefix.
func (store *FSStore) Remove(_ context.Context, prefix string) error {
	cleanPrefix, err := store.sanitizeKey(prefix)
	if err != nil {
		return err
	}

	targetPath := filepath.Join(store.root, filepath.FromSlash(cleanPrefix))
	if err := os.RemoveAll(targetPath); err != nil {
		return fmt.Errorf("storage: failed to remove %s: %w", cleanPrefix, err)
	}

	return nil
}

// Root returns the filesystem directory the store writes into.
// The HTTP layer uses this to mount a read-only file server.
func (store *FSStore) Root() string {
	return store.root
}

// sanitizeKey normalizes a key and rejects attempts to escape the root.
func (store *FSStore) sanitizeKey(key string) (string, error) {
	// Reject traversal before cleaning; path.Clean would silently collapse
	// ".." segments at the root and mask the attempt.
	for _, segment := range strings.Split(key, "/") {
		if segment == ".." {
			return "", fmt.Errorf("storage: invalid object key %q", key)
		}
	}

	clean := strings.TrimPrefix(path.Clean("/"+key), "/")
	if clean == "" || clean == "." {
		return "", fmt.Errorf("storage: invalid object key %q", key)
	}

	return clean, nil
}
