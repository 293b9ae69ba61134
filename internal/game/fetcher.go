package game

import (
	"context"
	"sync"
)

// FetchOutcome tags a fetch result as a fresh asset or the exhaustion placeholder
type FetchOutcome int

const (
	// FetchFound means a previously unused asset was returned
	FetchFound FetchOutcome = iota

	// FetchExhausted means the distinct-asset pool ran out and the
	// placeholder was returned instead
	FetchExhausted
)

// AssetProvider returns one randomly chosen asset of the requested kind.
// It has no memory of past picks; non-repetition is the Fetcher's job.
type AssetProvider interface {
	RandomAsset(ctx context.Context, kind string) (Asset, error)
}

// Fetcher wraps an AssetProvider with session-scoped duplicate avoidance.
// Used URLs are shared across kinds, so the cap bounds the whole session.
type Fetcher struct {
	provider AssetProvider
	limit    int

	mu   sync.Mutex
	used map[string]struct{}
}

// NewFetcher creates a fetcher that returns at most limit distinct assets
// before degrading to the placeholder
func NewFetcher(provider AssetProvider, limit int) *Fetcher {
	return &Fetcher{
		provider: provider,
		limit:    limit,
		used:     make(map[string]struct{}),
	}
}

func placeholderAsset() Asset {
	return Asset{
		URL:         PlaceholderURL,
		Description: PlaceholderDescription,
		Placeholder: true,
	}
}

// Fetch returns an unused asset of the given kind. Duplicates are retried
// with a bounded loop; once the session has consumed the full distinct-asset
// budget the placeholder is returned. Transport errors are returned as-is,
// never retried.
func (f *Fetcher) Fetch(ctx context.Context, kind string) (Asset, FetchOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.used) >= f.limit {
		return placeholderAsset(), FetchExhausted, nil
	}

	for attempt := 0; attempt < f.limit; attempt++ {
		asset, err := f.provider.RandomAsset(ctx, kind)
		if err != nil {
			return Asset{}, FetchFound, err
		}

		if _, seen := f.used[asset.URL]; seen {
			continue
		}

		f.used[asset.URL] = struct{}{}
		return asset, FetchFound, nil
	}

	return placeholderAsset(), FetchExhausted, nil
}

// UsedCount reports how many distinct assets the session has consumed
func (f *Fetcher) UsedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.used)
}
