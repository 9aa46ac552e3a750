// Package fetch implements resumable pagination over external list APIs
// with rate-limit backoff. Pages are always fetched sequentially so the
// backoff applies to the whole stream.
package fetch

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrRateLimited marks a provider "too many requests" response. It is the
// only retryable error class: the same page is re-issued after RetryDelay,
// with no attempt cap. Wrap it so callers can match with errors.Is.
var ErrRateLimited = errors.New("rate limited by provider")

const (
	// SuccessDelay is applied after each successful page to stay under
	// provider rate limits.
	SuccessDelay = 500 * time.Millisecond
	// RetryDelay is the fixed backoff after a rate-limit response.
	RetryDelay = 15 * time.Second
)

// Page is one batch returned by a RequestFunc. TotalCount is the
// provider-reported total for the whole listing, or -1 when absent.
type Page[T any] struct {
	Items      []T
	HasMore    bool
	TotalCount int
}

// RequestFunc fetches one page, numbered from 1.
type RequestFunc[T any] func(ctx context.Context, page int) (Page[T], error)

// StopFunc is an optional early-stop predicate. The first item it matches
// ends the run; that item and everything after it is discarded. Correct
// only when the source returns items in non-increasing time order.
type StopFunc[T any] func(item T) bool

// Options carries the inter-page delays. Tests inject zero delays.
type Options struct {
	SuccessDelay time.Duration
	RetryDelay   time.Duration
}

// DefaultOptions returns the production delays.
func DefaultOptions() Options {
	return Options{SuccessDelay: SuccessDelay, RetryDelay: RetryDelay}
}

// Result is the accumulated listing. TotalCount is the first-seen provider
// hint (-1 when never reported); later hints are ignored.
type Result[T any] struct {
	Items      []T
	TotalCount int
}

// All walks every page starting at 1 and accumulates the items in order.
// Rate-limit responses retry the same page forever; any other error is
// fatal and returned as-is. Advances only while the last batch was
// non-empty and the provider signals more pages.
func All[T any](ctx context.Context, req RequestFunc[T], stop StopFunc[T], opts Options) (Result[T], error) {
	res := Result[T]{TotalCount: -1}
	page := 1

	for {
		p, err := req(ctx, page)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				log.Printf("page %d: rate limited, waiting %s then retrying same page", page, opts.RetryDelay)
				if err := wait(ctx, opts.RetryDelay); err != nil {
					return res, err
				}
				continue
			}
			return res, err
		}

		if res.TotalCount < 0 && p.TotalCount >= 0 {
			res.TotalCount = p.TotalCount
		}

		for _, item := range p.Items {
			if stop != nil && stop(item) {
				return res, nil
			}
			res.Items = append(res.Items, item)
		}

		log.Printf("page %d: fetched %d items so far", page, len(res.Items))

		if len(p.Items) == 0 || !p.HasMore {
			return res, nil
		}

		page++
		if err := wait(ctx, opts.SuccessDelay); err != nil {
			return res, err
		}
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
