package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
)

// RedisTokenBlacklist keeps revoked token ids and logout-all markers in
// Redis with a TTL so entries expire with the tokens they cover.
type RedisTokenBlacklist struct {
	client *redis.Client
	prefix string
}

// NewRedisTokenBlacklist constructs the Redis blacklist.
func NewRedisTokenBlacklist(client *redis.Client, prefix string) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, prefix: prefix}
}

func (b *RedisTokenBlacklist) tokenKey(jti string) string {
	return fmt.Sprintf("%sblacklist:%s", b.prefix, jti)
}

func (b *RedisTokenBlacklist) userKey(role models.UserRole, userID string) string {
	return fmt.Sprintf("%srevoked:%s:%s", b.prefix, role, userID)
}

// Revoke blacklists jti until expiresAt.
func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.tokenKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether jti was blacklisted.
func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.tokenKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis check token: %w", err)
	}
	return n > 0, nil
}

// RevokeAll rejects every token of the user issued before at. The marker
// lives for ttl, the longest lifetime of an affected token.
func (b *RedisTokenBlacklist) RevokeAll(ctx context.Context, role models.UserRole, userID string, at time.Time, ttl time.Duration) error {
	value := strconv.FormatInt(at.UnixNano(), 10)
	if err := b.client.Set(ctx, b.userKey(role, userID), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis revoke user tokens: %w", err)
	}
	return nil
}

// RevokedBefore returns the logout-all marker of the user, if any.
func (b *RedisTokenBlacklist) RevokedBefore(ctx context.Context, role models.UserRole, userID string) (time.Time, bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(role, userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("redis read user revocation: %w", err)
	}
	nanos, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse user revocation: %w", err)
	}
	return time.Unix(0, nanos).UTC(), true, nil
}

// StoreTokenBlacklist keeps the same entries as documents of the
// tokenBlacklist collection. Expired entries are ignored on read.
type StoreTokenBlacklist struct {
	store query.Store
	now   func() time.Time
}

// NewStoreTokenBlacklist constructs a blacklist over store.
func NewStoreTokenBlacklist(store query.Store) *StoreTokenBlacklist {
	return &StoreTokenBlacklist{store: store, now: func() time.Time { return time.Now().UTC() }}
}

func tokenEntryKey(jti string) string {
	return "jti:" + jti
}

func userEntryKey(role models.UserRole, userID string) string {
	return fmt.Sprintf("user:%s:%s", role, userID)
}

// Revoke blacklists jti until expiresAt. Revoking twice is not an error.
func (b *StoreTokenBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := b.store.Insert(ctx, models.CollectionTokenBlacklist, query.Document{
		"key":       tokenEntryKey(jti),
		"expiresAt": expiresAt.UTC(),
	})
	if err != nil && !query.IsDuplicate(err) {
		return fmt.Errorf("store revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether an unexpired entry exists for jti.
func (b *StoreTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok, err := b.active(ctx, tokenEntryKey(jti))
	return ok, err
}

// RevokeAll records a logout-all marker for the user.
func (b *StoreTokenBlacklist) RevokeAll(ctx context.Context, role models.UserRole, userID string, at time.Time, ttl time.Duration) error {
	key := userEntryKey(role, userID)
	fields := query.Document{
		"revokedBefore": at.UTC(),
		"expiresAt":     at.Add(ttl).UTC(),
	}
	existing, err := query.FindOne(ctx, b.store, models.CollectionTokenBlacklist, query.Eq{Field: "key", Value: key}, query.Fields("key"))
	switch {
	case err == nil:
		_, err = b.store.Update(ctx, models.CollectionTokenBlacklist, existing.ID(), fields)
	case query.IsNotFound(err):
		fields["key"] = key
		_, err = b.store.Insert(ctx, models.CollectionTokenBlacklist, fields)
	}
	if err != nil {
		return fmt.Errorf("store revoke user tokens: %w", err)
	}
	return nil
}

// RevokedBefore returns the unexpired logout-all marker of the user.
func (b *StoreTokenBlacklist) RevokedBefore(ctx context.Context, role models.UserRole, userID string) (time.Time, bool, error) {
	doc, ok, err := b.active(ctx, userEntryKey(role, userID))
	if err != nil || !ok {
		return time.Time{}, false, err
	}
	at, ok := doc.Time("revokedBefore")
	return at, ok, nil
}

func (b *StoreTokenBlacklist) active(ctx context.Context, key string) (query.Document, bool, error) {
	filter := query.And{
		query.Eq{Field: "key", Value: key},
		query.Range{Field: "expiresAt", Gt: b.now()},
	}
	doc, err := query.FindOne(ctx, b.store, models.CollectionTokenBlacklist, filter, query.Projection{})
	if err != nil {
		if query.IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("store read blacklist: %w", err)
	}
	return doc, true, nil
}
