package storage

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalBannerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalBannerStore(t.TempDir())
	require.NoError(t, err)

	path, err := store.Save(ctx, "form-1", "image/png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "form-1.png", path)

	rc, err := store.Open(ctx, path)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, path))
	require.NoError(t, store.Delete(ctx, path))

	_, err = store.Open(ctx, path)
	assert.ErrorIs(t, err, ErrBannerNotFound)
}

func TestLocalBannerStore_RejectsEscapingPaths(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalBannerStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(ctx, "../evil", "image/png", []byte("x"))
	assert.Error(t, err)

	_, err = store.Open(ctx, "../../etc/passwd")
	assert.Error(t, err)

	assert.Error(t, store.Delete(ctx, "/etc/passwd"))
}
