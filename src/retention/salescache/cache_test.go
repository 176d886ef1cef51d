package salescache

import (
	"context"
	"errors"
	"testing"

	"github.com/retainworks/retainbot/src/retention/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsLoadsOnce(t *testing.T) {
	loads := 0
	c := New(func(ctx context.Context) (*types.SalesStats, error) {
		loads++
		return &types.SalesStats{
			StyleStatusCount: map[string]types.StyleStats{
				"AN209": {TotalCount: 12, StatusCounts: map[string]int{"Delivered": 10, "Cancelled": 2}},
			},
		}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		st, err := c.StyleStats(ctx, "AN209")
		require.NoError(t, err)
		assert.Equal(t, 12, st.TotalCount)
	}
	assert.Equal(t, 1, loads)
}

func TestStyleStatsUnknownStyle(t *testing.T) {
	c := New(func(ctx context.Context) (*types.SalesStats, error) {
		return &types.SalesStats{}, nil
	})
	st, err := c.StyleStats(context.Background(), "ZZ999")
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalCount)
	assert.NotNil(t, st.StatusCounts)
}

func TestInvalidateReloads(t *testing.T) {
	loads := 0
	c := New(func(ctx context.Context) (*types.SalesStats, error) {
		loads++
		return &types.SalesStats{}, nil
	})

	ctx := context.Background()
	_, err := c.Stats(ctx)
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestLoaderErrorNotCached(t *testing.T) {
	fail := true
	c := New(func(ctx context.Context) (*types.SalesStats, error) {
		if fail {
			return nil, errors.New("store down")
		}
		return &types.SalesStats{}, nil
	})

	ctx := context.Background()
	_, err := c.Stats(ctx)
	require.Error(t, err)

	fail = false
	_, err = c.Stats(ctx)
	require.NoError(t, err)
}
