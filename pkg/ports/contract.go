package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/value"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore
// implementation adheres to the interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	name := "contract-" + time.Now().Format("20060102150405")

	result := value.Map{
		"multiply": value.Integer(24),
		"ratio":    value.Float(6.28),
		"textData": value.Text("THIS MIGHT BE AN ERROR MESSAGE"),
		"listData": value.Sequence(value.Integer(15), value.Text("olleh"), value.Float(3.14)),
		"nested":   value.Mapping(value.Map{"innerInt": value.Integer(15)}),
	}

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, name, result)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")
		assert.True(t, result.Equal(loaded), "loaded %s, saved %s", loaded, result)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrResultNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		replacement := value.Map{"add": value.Integer(30)}
		require.NoError(t, store.Save(ctx, name, replacement))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.True(t, replacement.Equal(loaded))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, result))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrResultNotFound, "Load after Delete should return ErrResultNotFound")

		assert.NoError(t, store.Delete(ctx, name), "Delete of missing result should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, result)
		_ = store.Save(ctx, id2, result)

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})
}
