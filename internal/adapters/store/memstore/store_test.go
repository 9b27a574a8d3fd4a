package memstore

import (
	"context"
	"testing"

	"flathunter-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, found, err := s.Get(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)
	assert.ErrorIs(t, s.MarkSent(ctx, "1"), domain.ErrExposeNotFound)

	photos := []string{"a", "b"}
	require.NoError(t, s.Put(ctx, domain.StoreEntry{ID: "1", Photos: photos, TotalPrice: "900", FreeFrom: "-"}))
	photos[0] = "mutated"

	require.NoError(t, s.MarkSent(ctx, "1"))
	entry, found, err := s.Get(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []string{"a", "b"}, entry.Photos)
	assert.True(t, entry.Sent)
}
