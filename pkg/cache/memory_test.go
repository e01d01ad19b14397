package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGetString(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Minute))

	var got string
	require.NoError(t, mc.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var got string
	err := mc.Get(context.Background(), "absent", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiration(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestMemoryCacheDeleteByPatternPrefix(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "report:a", "1", time.Minute))
	require.NoError(t, mc.Set(ctx, "report:b", "2", time.Minute))
	require.NoError(t, mc.Set(ctx, "other", "3", time.Minute))

	require.NoError(t, mc.DeleteByPattern(ctx, "report:*"))

	var got string
	assert.ErrorIs(t, mc.Get(ctx, "report:a", &got), ErrCacheMiss)
	assert.ErrorIs(t, mc.Get(ctx, "report:b", &got), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "other", &got))
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "report:all:3:10:none", GenerateKeyWithParams("report", "all", 3, 10, "none"))
	assert.Equal(t, "report:*", BuildPattern("report:"))
}
