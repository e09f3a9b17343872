package etl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStoresCreatesMissing(t *testing.T) {
	ds := newFakeDatastore()

	rows := []Row{
		{"store": "001"},
		{"store": " 002 "},
		{"store": "001"},
		{},
	}

	storeMap, codes, err := resolveStores(context.Background(), ds, 1, rows)
	require.NoError(t, err)

	assert.Len(t, storeMap, 2)
	assert.ElementsMatch(t, []string{"001", "002"}, codes)
	assert.Equal(t, 2, ds.storesCreated)
}

func TestResolveStoresIdempotentAcrossBatches(t *testing.T) {
	ds := newFakeDatastore()
	ctx := context.Background()

	first, _, err := resolveStores(ctx, ds, 1, []Row{{"store": "001"}, {"store": "002"}})
	require.NoError(t, err)

	// Overlapping second batch must not create a second store for 001/002.
	second, _, err := resolveStores(ctx, ds, 1, []Row{{"store": "002"}, {"store": "003"}})
	require.NoError(t, err)

	assert.Equal(t, 3, ds.storesCreated)
	assert.Equal(t, first["002"], second["002"])
}

func TestResolveStoresScopedByCustomer(t *testing.T) {
	ds := newFakeDatastore()
	ctx := context.Background()

	a, _, err := resolveStores(ctx, ds, 1, []Row{{"store": "001"}})
	require.NoError(t, err)
	b, _, err := resolveStores(ctx, ds, 2, []Row{{"store": "001"}})
	require.NoError(t, err)

	// Same code for different customers resolves to different stores.
	assert.NotEqual(t, a["001"], b["001"])
	assert.Equal(t, 2, ds.storesCreated)
}
