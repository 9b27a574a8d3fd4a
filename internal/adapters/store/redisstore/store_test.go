package redisstore

import (
	"context"
	"testing"

	"flathunter-service/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := New(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestNewRequiresClient(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestKeyUsesPrefix(t *testing.T) {
	s := &Store{prefix: "flathunter:expose:"}
	assert.Equal(t, "flathunter:expose:123456", s.key("123456"))
}

func TestPutAndGet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	entry := domain.NewStoreEntry("123456", "immobilienscout", domain.ExposeDetails{
		Photos:     []string{"a.jpg", "b.jpg"},
		TotalPrice: "1.100 €",
		FreeFrom:   domain.FreeFromImmediately,
	})
	require.NoError(t, s.Put(ctx, entry))

	assert.True(t, mr.Exists("flathunter:expose:123456"))
	assert.Zero(t, mr.TTL("flathunter:expose:123456"))

	got, found, err := s.Get(ctx, "123456")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, entry, got)
}

func TestGetMissingEntry(t *testing.T) {
	s, _ := newTestStore(t)

	_, found, err := s.Get(context.Background(), "404")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetCorruptedEntry(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, mr.Set("flathunter:expose:1", "{not json"))

	_, _, err := s.Get(context.Background(), "1")
	assert.ErrorContains(t, err, "corrupted entry 1")
}

func TestMarkSentKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	entry := domain.NewPendingStoreEntry("1", "immobilienscout", domain.DefaultExposeDetails())
	require.NoError(t, s.Put(ctx, entry))
	require.NoError(t, s.MarkSent(ctx, "1"))

	got, found, err := s.Get(ctx, "1")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Sent)
	assert.False(t, got.DetailsFetched)
	assert.Equal(t, domain.NotSpecified, got.TotalPrice)
}

func TestMarkSentMissingEntry(t *testing.T) {
	s, mr := newTestStore(t)

	assert.ErrorIs(t, s.MarkSent(context.Background(), "404"), domain.ErrExposeNotFound)
	assert.False(t, mr.Exists("flathunter:expose:404"))
}

func TestStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)
	mr.Close()

	_, _, err := s.Get(ctx, "1")
	assert.ErrorContains(t, err, "redis store: failed to read 1")

	err = s.MarkSent(ctx, "1")
	assert.ErrorContains(t, err, "redis store: failed to mark 1 as sent")
	assert.NotErrorIs(t, err, domain.ErrExposeNotFound)
}
