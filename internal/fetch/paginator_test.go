package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelays() Options {
	return Options{}
}

func pagesOf(items [][]int, total int) RequestFunc[int] {
	return func(_ context.Context, page int) (Page[int], error) {
		if page > len(items) {
			return Page[int]{TotalCount: -1}, nil
		}
		return Page[int]{
			Items:      items[page-1],
			HasMore:    page < len(items),
			TotalCount: total,
		}, nil
	}
}

func TestAllWalksEveryPage(t *testing.T) {
	res, err := All(context.Background(), pagesOf([][]int{{1, 2}, {3, 4}, {5}}, 5), nil, noDelays())

	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, res.Items)
	assert.Equal(t, 5, res.TotalCount)
}

func TestAllRetriesSamePageOnRateLimit(t *testing.T) {
	attempts := map[int]int{}
	req := func(_ context.Context, page int) (Page[int], error) {
		attempts[page]++
		if page == 2 && attempts[2] == 1 {
			return Page[int]{}, fmt.Errorf("status 429: %w", ErrRateLimited)
		}
		pages := [][]int{{1, 2}, {3, 4}}
		return Page[int]{Items: pages[page-1], HasMore: page < 2, TotalCount: 4}, nil
	}

	res, err := All(context.Background(), req, nil, Options{RetryDelay: time.Millisecond})

	require.NoError(t, err)
	// Every item exactly once, no duplicates or gaps, despite the 429.
	assert.Equal(t, []int{1, 2, 3, 4}, res.Items)
	assert.Equal(t, 2, attempts[2])
}

func TestAllStopsOnFirstMatchingItem(t *testing.T) {
	fetched := 0
	req := func(_ context.Context, page int) (Page[int], error) {
		fetched = page
		// Strictly decreasing values, like call instants.
		pages := [][]int{{9, 8}, {7, 6}, {5, 4}}
		return Page[int]{Items: pages[page-1], HasMore: page < 3, TotalCount: -1}, nil
	}

	res, err := All(context.Background(), req, func(v int) bool { return v < 7 }, noDelays())

	require.NoError(t, err)
	assert.Equal(t, []int{9, 8, 7}, res.Items, "items at or after the cutoff only")
	assert.Equal(t, 2, fetched, "must not fetch pages past the first match")
}

func TestAllKeepsFirstTotalCountHint(t *testing.T) {
	req := func(_ context.Context, page int) (Page[int], error) {
		totals := []int{10, 99}
		return Page[int]{Items: []int{page}, HasMore: page < 2, TotalCount: totals[page-1]}, nil
	}

	res, err := All(context.Background(), req, nil, noDelays())

	require.NoError(t, err)
	assert.Equal(t, 10, res.TotalCount, "only the first page's total is authoritative")
}

func TestAllTotalCountUnknown(t *testing.T) {
	res, err := All(context.Background(), pagesOf([][]int{{1}}, -1), nil, noDelays())

	require.NoError(t, err)
	assert.Equal(t, -1, res.TotalCount)
}

func TestAllStopsOnEmptyBatch(t *testing.T) {
	calls := 0
	req := func(_ context.Context, page int) (Page[int], error) {
		calls++
		// Provider claims more pages but returns nothing.
		return Page[int]{HasMore: true, TotalCount: -1}, nil
	}

	res, err := All(context.Background(), req, nil, noDelays())

	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.Equal(t, 1, calls)
}

func TestAllPropagatesFatalErrors(t *testing.T) {
	boom := errors.New("provider down")
	req := func(_ context.Context, page int) (Page[int], error) {
		if page == 2 {
			return Page[int]{}, boom
		}
		return Page[int]{Items: []int{1}, HasMore: true, TotalCount: -1}, nil
	}

	_, err := All(context.Background(), req, nil, noDelays())

	assert.ErrorIs(t, err, boom)
}

func TestAllHonorsContextDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	req := func(_ context.Context, page int) (Page[int], error) {
		cancel()
		return Page[int]{}, fmt.Errorf("status 429: %w", ErrRateLimited)
	}

	_, err := All(ctx, req, nil, Options{RetryDelay: time.Minute})

	assert.ErrorIs(t, err, context.Canceled)
}
