package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/morph/pkg/adapters/redis"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/ports"
	"github.com/aretw0/morph/pkg/value"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunResultStoreContract(t, store)
}

func TestRedisStore_PreservesKinds(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	result := value.Map{"whole": value.Float(2), "int": value.Integer(2)}
	require.NoError(t, store.Save(ctx, "kinds", result))

	loaded, err := store.Load(ctx, "kinds")
	require.NoError(t, err)
	assert.Equal(t, value.KindInteger, loaded["int"].Kind())
	// JSON has no float/int distinction for whole numbers.
	assert.Equal(t, value.KindInteger, loaded["whole"].Kind())
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "short-lived", value.Map{"a": value.Text("b")}))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, "short-lived")

	mr.FastForward(2 * time.Second)

	_, err = store.Load(ctx, "short-lived")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	require.NoError(t, store.Save(context.Background(), "r1", value.Map{}))

	assert.True(t, mr.Exists("custom:data:r1"))
	assert.False(t, mr.Exists("morph:result:data:r1"))
}

func TestRedisStore_NameMatchingIndexKey(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "prod", value.Map{"a": value.Integer(1)}))
	require.NoError(t, store.Save(ctx, "index", value.Map{"b": value.Integer(2)}))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"prod", "index"}, names)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, value.Map{"b": value.Integer(2)}, loaded)

	require.NoError(t, store.Delete(ctx, "index"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"prod"}, names)
}
