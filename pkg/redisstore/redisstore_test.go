package redisstore

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/staffhours/pkg/db"
)

func TestNewWithClient_KeyPrefix(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	assert.Equal(t, "staffhours:preferences", NewWithClient(client, "").key)
	assert.Equal(t, "test:preferences", NewWithClient(client, "test").key)
}

func TestField(t *testing.T) {
	assert.Equal(t, "42", field(42))
	assert.Equal(t, "1", field(1))
}

// TestPreferenceStore_Redis runs against a real server when STAFFHOURS_TEST_REDIS is set,
// e.g. STAFFHOURS_TEST_REDIS=localhost:6379
func TestPreferenceStore_Redis(t *testing.T) {
	addr := os.Getenv("STAFFHOURS_TEST_REDIS")
	if addr == "" {
		t.Skip("STAFFHOURS_TEST_REDIS not set")
	}

	ctx := context.Background()
	store, err := New(ctx, Options{Address: addr, KeyPrefix: "staffhours-test-" + t.Name()})
	require.NoError(t, err)
	defer store.Close()
	defer store.client.Del(ctx, store.key)

	var _ db.PreferenceStore = store

	_, ok, err := store.GetPreference(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetPreference(ctx, 1, "Mornings"))
	require.NoError(t, store.SetPreference(ctx, 2, "No Sundays"))

	value, ok, err := store.GetPreference(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Mornings", value)

	require.NoError(t, store.client.HSet(ctx, store.key, "not-an-id", "x").Err())

	all, err := store.ListPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{1: "Mornings", 2: "No Sundays"}, all)

	require.NoError(t, store.DeletePreference(ctx, 1))
	_, ok, err = store.GetPreference(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
