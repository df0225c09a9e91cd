package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query/memstore"
)

func newStoreBlacklist(now time.Time) (*StoreTokenBlacklist, *memstore.Store) {
	store := memstore.New(memstore.WithUniqueIndex(models.CollectionTokenBlacklist, "key", false))
	bl := NewStoreTokenBlacklist(store)
	bl.now = func() time.Time { return now }
	return bl, store
}

func TestStoreTokenBlacklistRevoke(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bl, store := newStoreBlacklist(now)
	ctx := context.Background()

	revoked, err := bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	require.NoError(t, bl.Revoke(ctx, "jti-1", now.Add(time.Hour)))
	assert.Equal(t, 1, store.Len(models.CollectionTokenBlacklist))

	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	bl.now = func() time.Time { return now.Add(2 * time.Hour) }
	revoked, err = bl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestStoreTokenBlacklistRevokeAll(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	bl, store := newStoreBlacklist(now)
	ctx := context.Background()

	_, ok, err := bl.RevokedBefore(ctx, models.RoleTeacher, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, bl.RevokeAll(ctx, models.RoleTeacher, "u1", now, 24*time.Hour))
	require.NoError(t, bl.RevokeAll(ctx, models.RoleTeacher, "u1", now.Add(time.Minute), 24*time.Hour))
	assert.Equal(t, 1, store.Len(models.CollectionTokenBlacklist))

	at, ok, err := bl.RevokedBefore(ctx, models.RoleTeacher, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Minute), at)

	_, ok, err = bl.RevokedBefore(ctx, models.RoleStudent, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
