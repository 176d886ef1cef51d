package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Style    string `json:"style"`
	Category string `json:"category"`
	Price    float64
}

func TestMemoryGetMiss(t *testing.T) {
	s := NewMemory()
	var out testDoc
	err := s.Get(context.Background(), ProductsBucket, "AN209", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpsertAndGet(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	require.NoError(t, s.Upsert(ctx, ProductsBucket, "AN209", testDoc{Style: "AN209", Category: "Apparel", Price: 29.99}))
	require.NoError(t, s.Upsert(ctx, ProductsBucket, "AN209", testDoc{Style: "AN209", Category: "Apparel", Price: 34.99}))

	var out testDoc
	require.NoError(t, s.Get(ctx, ProductsBucket, "AN209", &out))
	assert.Equal(t, 34.99, out.Price, "upsert replaces the previous document")
}

func TestMemoryQuery(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, d := range []testDoc{
		{Style: "AN209", Category: "Apparel"},
		{Style: "AN100", Category: "Apparel"},
		{Style: "AN101", Category: "Apparel"},
		{Style: "BL001", Category: "Bottoms"},
	} {
		require.NoError(t, s.Upsert(ctx, ProductsBucket, d.Style, d))
	}

	hits, err := s.Query(ctx, ProductsBucket, "category", "Apparel", "AN209", 10)
	require.NoError(t, err)
	require.Len(t, hits, 2, "excludes the given key and the other category")

	styles := make([]string, 0, len(hits))
	for _, h := range hits {
		var d testDoc
		require.NoError(t, json.Unmarshal(h, &d))
		styles = append(styles, d.Style)
	}
	assert.Equal(t, []string{"AN100", "AN101"}, styles)
}

func TestMemoryQueryLimit(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	for _, style := range []string{"AN1", "AN2", "AN3"} {
		require.NoError(t, s.Upsert(ctx, ProductsBucket, style, testDoc{Style: style, Category: "Apparel"}))
	}
	hits, err := s.Query(ctx, ProductsBucket, "category", "Apparel", "", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}
