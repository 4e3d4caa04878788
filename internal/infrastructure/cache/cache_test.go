package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopCache_NuncaAcierta(t *testing.T) {
	c := NoopCache{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	v, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

// Requiere un Redis real: BARSTOCK_TEST_REDIS_ADDR=localhost:6379
func TestRedisReportCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("BARSTOCK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("BARSTOCK_TEST_REDIS_ADDR no definido")
	}
	ctx := context.Background()
	c, err := NewRedisReportCache(ctx, addr, "", 0)
	require.NoError(t, err)
	defer c.Close()

	key := "barstock:test:" + time.Now().Format("150405.000000")
	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, key, []byte(`{"a":1}`), time.Minute))
	v, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(v))
}
