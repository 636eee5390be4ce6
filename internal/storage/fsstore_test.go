// Copyright (c) 2026 Kasane. All rights reserved.

package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kasanehq/kasane/internal/storage"
)

/*
TestFSStore_PutAndRemove verifies write, URL derivation, and subtree removal.
*/
func TestFSStore_PutAndRemove(t *testing.T) {
	root := t.TempDir()

	store, err := storage.NewFSStore(root, "/media/")
	require.NoError(t, err)

	ctx := context.Background()
	payload := []byte("fake-png-bytes")

	url, err := store.Put(ctx, "comics/c1/chapters/ch1/1.png", payload)
	require.NoError(t, err)
	assert.Equal(t, "/media/comics/c1/chapters/ch1/1.png", url)

	// The object must exist on disk with the same content.
	onDisk, err := os.ReadFile(filepath.Join(root, "comics", "c1", "chapters", "ch1", "1.png"))
	require.NoError(t, err)
	assert.Equal(t, payload, onDisk)

	// Removing the chapter prefix deletes the whole subtree.
	require.NoError(t, store.Remove(ctx, "comics/c1/chapters/ch1"))
	_, err = os.Stat(filepath.Join(root, "comics", "c1", "chapters", "ch1"))
	assert.True(t, os.IsNotExist(err))
}

/*
TestFSStore_RejectsEscapingKeys ensures path traversal keys are refused.
*/
func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	store, err := storage.NewFSStore(t.TempDir(), "/media/")
	require.NoError(t, err)

	tests := []struct {
		name string
		key  string
	}{
		{"parent_traversal", "../outside.png"},
		{"nested_traversal", "comics/../../outside.png"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Put(context.Background(), tt.key, []byte("x"))
			assert.Error(t, err)
		})
	}
}
