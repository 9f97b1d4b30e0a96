//go:build unit
// +build unit

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rpsg-tech/clm-sub005/internal/domain/contracts"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/config"
	"github.com/rpsg-tech/clm-sub005/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContract() *contracts.Contract {
	now := time.Now().UTC().Truncate(time.Second)
	return &contracts.Contract{
		ID:              uuid.NewString(),
		OrganizationID:  uuid.NewString(),
		Title:           "Distribution Agreement",
		Counterparty:    "Soylent",
		Status:          contracts.StatusDraft,
		OwnerID:         uuid.NewString(),
		CurrentVersion:  1,
		Currency:        "EUR",
		DateTimeCreated: now,
		DateTimeUpdated: now,
	}
}

func newRedisCache(t *testing.T) (contracts.ContractCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisContractCache(client, time.Minute, testutil.SetupTestLogger(t)), mr
}

func TestRedisContractCache_SetGetDelete(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	contract := newTestContract()

	_, ok := cache.Get(ctx, contract.OrganizationID, contract.ID)
	assert.False(t, ok)

	cache.Set(ctx, contract)
	assert.True(t, mr.Exists(Key(contract.OrganizationID, contract.ID)))

	cached, ok := cache.Get(ctx, contract.OrganizationID, contract.ID)
	require.True(t, ok)
	assert.Equal(t, contract.Title, cached.Title)
	assert.True(t, contract.DateTimeCreated.Equal(cached.DateTimeCreated))

	cache.Delete(ctx, contract.OrganizationID, contract.ID)
	_, ok = cache.Get(ctx, contract.OrganizationID, contract.ID)
	assert.False(t, ok)
}

func TestRedisContractCache_Expires(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	contract := newTestContract()

	cache.Set(ctx, contract)
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, contract.OrganizationID, contract.ID)
	assert.False(t, ok)
}

func TestRedisContractCache_IgnoresGarbageAndForeignTenant(t *testing.T) {
	cache, mr := newRedisCache(t)
	ctx := context.Background()
	contract := newTestContract()

	require.NoError(t, mr.Set(Key(contract.OrganizationID, contract.ID), "{not json"))
	_, ok := cache.Get(ctx, contract.OrganizationID, contract.ID)
	assert.False(t, ok)

	cache.Set(ctx, contract)
	otherOrg := uuid.NewString()
	require.NoError(t, mr.Set(Key(otherOrg, contract.ID), mustGet(t, mr, Key(contract.OrganizationID, contract.ID))))
	_, ok = cache.Get(ctx, otherOrg, contract.ID)
	assert.False(t, ok)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}

func TestRedisContractCache_ServerDownIsAMiss(t *testing.T) {
	cache, mr := newRedisCache(t)
	contract := newTestContract()
	mr.Close()

	cache.Set(context.Background(), contract)
	_, ok := cache.Get(context.Background(), contract.OrganizationID, contract.ID)
	assert.False(t, ok)
	cache.Delete(context.Background(), contract.OrganizationID, contract.ID)
}

func TestConnect(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	disabled, closeFn := Connect(context.Background(), config.RedisSettings{}, log)
	assert.IsType(t, noopContractCache{}, disabled)
	assert.NoError(t, closeFn())

	unreachable, closeFn := Connect(context.Background(), config.RedisSettings{Addr: "127.0.0.1:1", TTL: time.Minute}, log)
	assert.IsType(t, noopContractCache{}, unreachable)
	assert.NoError(t, closeFn())

	mr := miniredis.RunT(t)
	live, closeFn := Connect(context.Background(), config.RedisSettings{Addr: mr.Addr(), TTL: time.Minute}, log)
	assert.IsType(t, &redisContractCache{}, live)
	assert.NoError(t, closeFn())
}

func TestNoopContractCache(t *testing.T) {
	cache := NewNoopContractCache()
	contract := newTestContract()

	cache.Set(context.Background(), contract)
	_, ok := cache.Get(context.Background(), contract.OrganizationID, contract.ID)
	assert.False(t, ok)
	cache.Delete(context.Background(), contract.OrganizationID, contract.ID)
}
