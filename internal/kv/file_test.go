package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	_, err = store.Get(ctx, "pmory_mentors")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "pmory_mentors", []byte(`[{"id":1}]`)))

	value, err := store.Get(ctx, "pmory_mentors")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":1}]`), value)

	require.NoError(t, store.Set(ctx, "pmory_mentors", []byte(`[]`)))
	value, err = store.Get(ctx, "pmory_mentors")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "user_email", []byte(`"a@x.com"`)))
	require.NoError(t, store.Delete(ctx, "user_email"))

	_, err = store.Get(ctx, "user_email")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(ctx, "user_email"))
}

func TestFileStoreSanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "../escape", []byte("x")))

	value, err := store.Get(ctx, "../escape")
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), value)
}
