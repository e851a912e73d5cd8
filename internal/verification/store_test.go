package verification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	reg := Registration{
		Nome:    "Ana",
		Email:   "ana@example.com",
		Code:    123456,
		Expires: time.Now().Add(15 * time.Minute),
	}
	require.NoError(t, s.Put(ctx, reg.Email, reg))

	got, ok, err := s.Get(ctx, reg.Email)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, reg.Code, got.Code)
	assert.Equal(t, "Ana", got.Nome)

	require.NoError(t, s.Delete(ctx, reg.Email))
	_, ok, err = s.Get(ctx, reg.Email)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreKeepsExpiredEntryUntilFetched(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	reg := Registration{Email: "b@example.com", Code: 1, Expires: time.Now().Add(-time.Minute)}
	require.NoError(t, s.Put(ctx, reg.Email, reg))

	got, ok, err := s.Get(ctx, reg.Email)
	require.NoError(t, err)
	require.True(t, ok, "expired entries stay visible so the caller can report expiry")
	assert.True(t, time.Now().After(got.Expires))
}

func TestMemoryStoreReplace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "c@example.com", Registration{Code: 111111}))
	require.NoError(t, s.Put(ctx, "c@example.com", Registration{Code: 222222}))

	got, ok, err := s.Get(ctx, "c@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 222222, got.Code)
}
