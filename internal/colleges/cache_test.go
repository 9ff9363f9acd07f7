// internal/colleges/cache_test.go
package colleges

import (
	"context"
	"testing"
	"time"

	"college-match-workers/internal/scoring"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupCache(t *testing.T) (*StatsCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStatsCache(client, time.Hour), mr
}

func testStats(name string) *scoring.UniversityData {
	rate := 0.45
	return &scoring.UniversityData{
		Name:           name,
		State:          "CA",
		AcceptanceRate: &rate,
		HasMajor:       true,
	}
}

func TestStatsCache_RoundTrip(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	cache.Set(ctx, testStats("Test University"))

	got := cache.Get(ctx, "Test University")
	assert.NotNil(t, got)
	assert.Equal(t, "Test University", got.Name)
	assert.Equal(t, 0.45, *got.AcceptanceRate)
	assert.True(t, got.HasMajor)
}

func TestStatsCache_MissReturnsNil(t *testing.T) {
	cache, _ := setupCache(t)

	assert.Nil(t, cache.Get(context.Background(), "Never Cached U"))
}

func TestStatsCache_EntriesExpire(t *testing.T) {
	cache, mr := setupCache(t)
	ctx := context.Background()

	cache.Set(ctx, testStats("Test University"))
	mr.FastForward(2 * time.Hour)

	assert.Nil(t, cache.Get(ctx, "Test University"))
}

func TestStatsCache_Invalidate(t *testing.T) {
	cache, _ := setupCache(t)
	ctx := context.Background()

	cache.Set(ctx, testStats("Test University"))
	assert.NoError(t, cache.Invalidate(ctx, "Test University"))
	assert.Nil(t, cache.Get(ctx, "Test University"))
}

func TestStatsCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := setupCache(t)

	mr.Set(statsKeyPrefix+"Broken U", "{not json")

	assert.Nil(t, cache.Get(context.Background(), "Broken U"))
}

func TestStatsCache_RedisErrorIsAMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet(statsKeyPrefix + "Test University").SetErr(context.DeadlineExceeded)

	cache := NewStatsCache(client, time.Hour)

	assert.Nil(t, cache.Get(context.Background(), "Test University"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
