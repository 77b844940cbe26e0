package store

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the contract every backend must satisfy.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.True(t, errors.Is(err, ErrNotFound), "Get(missing) error = %v, want ErrNotFound", err)

	require.NoError(t, kv.Put(ctx, "a", []byte(`{"n":1}`)))
	require.NoError(t, kv.Put(ctx, "b", []byte(`[]`)))
	require.NoError(t, kv.Put(ctx, "a", []byte(`{"n":2}`)))

	got, err := kv.Get(ctx, "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"n":2}`, string(got))

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)

	require.NoError(t, kv.Delete(ctx, "a"))
	require.NoError(t, kv.Delete(ctx, "a"), "deleting a missing key is not an error")
	_, err = kv.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKVCopiesValues(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	buf := []byte("abc")
	require.NoError(t, kv.Put(ctx, "k", buf))
	buf[0] = 'x'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestSQLiteKV(t *testing.T) {
	exerciseKV(t, openTestStore(t).KV())
}

func TestSQLiteKVRevisionAdvances(t *testing.T) {
	ctx := context.Background()
	kv := openTestStore(t).KV()

	require.NoError(t, kv.Put(ctx, "k", []byte("1")))
	first, err := kv.Revision(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, kv.Put(ctx, "other", []byte("1")))
	require.NoError(t, kv.Put(ctx, "k", []byte("2")))
	second, err := kv.Revision(ctx, "k")
	require.NoError(t, err)

	assert.Greater(t, second, first)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"other", "k"}, keys)
}

// TestRedisKV runs against a live server when FACTA_TEST_REDIS_ADDR is set.
func TestRedisKV(t *testing.T) {
	addr := os.Getenv("FACTA_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FACTA_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	prefix := "facta-test-" + t.Name()
	kv, err := OpenRedis(ctx, RedisOptions{Addr: addr, Prefix: prefix})
	require.NoError(t, err)
	t.Cleanup(func() {
		keys, _ := kv.Keys(ctx)
		for _, k := range keys {
			kv.Delete(ctx, k)
		}
		kv.Close()
	})

	exerciseKV(t, kv)
}

func TestNewRedisKVDefaultPrefix(t *testing.T) {
	kv := NewRedisKV(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	defer kv.Close()
	assert.Equal(t, "facta:streak_data", kv.key("streak_data"))
}
