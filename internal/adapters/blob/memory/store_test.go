package memory

import (
	"context"
	"testing"

	"pet-shelter/internal/ports/blobstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutGet_CreateOnly(t *testing.T) {
	s := New()
	ctx := context.Background()

	info, err := s.Put(ctx, "contracts/a1.txt", []byte("hola"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, int64(4), info.Size)
	assert.Nil(t, info.Body)

	_, err = s.Put(ctx, "contracts/a1.txt", []byte("otro"), "text/plain")
	assert.ErrorIs(t, err, blobstore.ErrExists)

	got, err := s.Get(ctx, "contracts/a1.txt")
	require.NoError(t, err)
	assert.Equal(t, "hola", string(got.Body))
	assert.Equal(t, "text/plain", got.ContentType)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
