package health

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDB struct{ err error }

func (f fakeDB) PingContext(context.Context) error { return f.err }

type fakeSchema struct{ version, latest int }

func (f fakeSchema) Version(context.Context) (int, error) { return f.version, nil }
func (f fakeSchema) Latest() int { return f.latest }

func newRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	return rdb, mr
}

func TestCollectHealth_WithoutRedis(t *testing.T) {
	result := CollectHealth(context.Background(), nil, fakeDB{}, fakeSchema{version: 4, latest: 4})
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "connected", result.Dependencies["database"].Status)
	assert.Equal(t, "disabled", result.Dependencies["redis"].Status)
	assert.True(t, result.Schema.Current)
	assert.Equal(t, 0, result.Traffic.TotalRequests)
}

func TestCollectHealth_ReportsIssues(t *testing.T) {
	result := CollectHealth(context.Background(), nil, nil, nil)
	assert.Equal(t, "issue", result.Status)
	assert.Equal(t, "disconnected", result.Dependencies["database"].Status)

	result = CollectHealth(context.Background(), nil, fakeDB{err: errors.New("closed")}, nil)
	assert.Equal(t, "error", result.Dependencies["database"].Status)
	assert.Equal(t, "issue", result.Status)

	result = CollectHealth(context.Background(), nil, fakeDB{}, fakeSchema{version: 2, latest: 4})
	assert.False(t, result.Schema.Current)
	assert.Equal(t, "issue", result.Status)
}

func TestCollectHealth_WithMiniredis(t *testing.T) {
	rdb, _ := newRedis(t)
	ctx := context.Background()

	result := CollectHealth(ctx, rdb, fakeDB{}, nil)
	assert.Equal(t, "connected", result.Dependencies["redis"].Status)
	assert.Equal(t, "ok", result.Status)
	assert.Equal(t, "100", result.Traffic.SuccessRate)

	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyReqErrors, "2", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResTime, "150.5", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyResCount, "10", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyStartTime, "1000000", 0).Err())
	require.NoError(t, rdb.Set(ctx, KeyLastReq, `{"method":"GET","path":"/api/v1/clients"}`, 0).Err())

	result = CollectHealth(ctx, rdb, fakeDB{}, nil)
	assert.Equal(t, 10, result.Traffic.TotalRequests)
	assert.Equal(t, 2, result.Traffic.FailedCount)
	assert.Equal(t, 8, result.Traffic.SuccessCount)
	assert.Equal(t, "80.0", result.Traffic.SuccessRate)
	assert.Equal(t, "15.05", result.Traffic.AvgResponseTime)
	assert.Equal(t, "/api/v1/clients", result.Traffic.LastRequest.(map[string]interface{})["path"])
}

func TestCollectHealth_RedisDown(t *testing.T) {
	rdb, mr := newRedis(t)
	mr.Close()
	result := CollectHealth(context.Background(), rdb, fakeDB{}, nil)
	assert.Equal(t, "error", result.Dependencies["redis"].Status)
	assert.Equal(t, "issue", result.Status)
}

func TestReset(t *testing.T) {
	rdb, mr := newRedis(t)
	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, KeyReqTotal, "7", 0).Err())

	require.NoError(t, Reset(ctx, rdb))
	assert.False(t, mr.Exists(KeyReqTotal))
	assert.True(t, mr.Exists(KeyStartTime))
}
