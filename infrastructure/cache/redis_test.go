package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Mes   string  `json:"mes"`
	Valor float64 `json:"valor"`
}

func setupTestRedis(t *testing.T) (*Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := &Client{
		Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()}),
	}
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}

func TestClient_SetGetJSON(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetJSON(ctx, "reports:financial:6", []payload{{Mes: "Jan/26", Valor: 1500.5}}, time.Minute))

	var got []payload
	found, err := client.GetJSON(ctx, "reports:financial:6", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []payload{{Mes: "Jan/26", Valor: 1500.5}}, got)

	mr.FastForward(2 * time.Minute)

	found, err = client.GetJSON(ctx, "reports:financial:6", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_GetJSONMissingKey(t *testing.T) {
	client, _ := setupTestRedis(t)

	var got payload
	found, err := client.GetJSON(context.Background(), "reports:funnel", &got)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestClient_DeletePattern(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, client.SetJSON(ctx, "reports:funnel", payload{}, time.Minute))
	require.NoError(t, client.SetJSON(ctx, "reports:dashboard", payload{}, time.Minute))
	require.NoError(t, client.SetJSON(ctx, "other:key", payload{}, time.Minute))

	deleted, err := client.DeletePattern(ctx, "reports:*")

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.False(t, mr.Exists("reports:funnel"))
	assert.True(t, mr.Exists("other:key"))
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://sem-esquema")
	assert.Error(t, err)
}
