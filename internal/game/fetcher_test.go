package game

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// cyclingProvider serves URLs from a fixed pool round-robin, so duplicates
// appear as soon as the pool wraps around
type cyclingProvider struct {
	pool []string
	next int
}

func (p *cyclingProvider) RandomAsset(context.Context, string) (Asset, error) {
	url := p.pool[p.next%len(p.pool)]
	p.next++
	return Asset{URL: url, Description: "desc for " + url}, nil
}

func poolOf(n int) []string {
	pool := make([]string, n)
	for i := range pool {
		pool[i] = fmt.Sprintf("/uploads/img-%d.png", i)
	}
	return pool
}

func TestFetchNeverReturnsDuplicates(t *testing.T) {
	f := NewFetcher(&cyclingProvider{pool: poolOf(20)}, MaxDistinctAssets)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		asset, outcome, err := f.Fetch(context.Background(), "real")
		if err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
		if outcome != FetchFound {
			t.Fatalf("fetch %d outcome = %v, want FetchFound", i+1, outcome)
		}
		if seen[asset.URL] {
			t.Fatalf("fetch %d returned duplicate URL %q", i+1, asset.URL)
		}
		seen[asset.URL] = true
	}

	if f.UsedCount() != 20 {
		t.Errorf("UsedCount() = %d, want 20", f.UsedCount())
	}
}

func TestFetchDegradesToPlaceholderWhenExhausted(t *testing.T) {
	f := NewFetcher(&cyclingProvider{pool: poolOf(20)}, MaxDistinctAssets)

	for i := 0; i < 20; i++ {
		if _, _, err := f.Fetch(context.Background(), "real"); err != nil {
			t.Fatalf("Fetch() error = %v", err)
		}
	}

	// Calls 21 and 22 must return the placeholder, not an error
	for i := 0; i < 2; i++ {
		asset, outcome, err := f.Fetch(context.Background(), "ai")
		if err != nil {
			t.Fatalf("exhausted Fetch() error = %v", err)
		}
		if outcome != FetchExhausted {
			t.Errorf("outcome = %v, want FetchExhausted", outcome)
		}
		if asset.URL != PlaceholderURL {
			t.Errorf("asset.URL = %q, want %q", asset.URL, PlaceholderURL)
		}
		if asset.Description != PlaceholderDescription {
			t.Errorf("asset.Description = %q, want %q", asset.Description, PlaceholderDescription)
		}
	}
}

func TestFetchSmallPoolHitsAttemptCap(t *testing.T) {
	f := NewFetcher(&cyclingProvider{pool: poolOf(3)}, MaxDistinctAssets)

	for i := 0; i < 3; i++ {
		if _, outcome, _ := f.Fetch(context.Background(), "real"); outcome != FetchFound {
			t.Fatalf("fetch %d should find an unused asset", i+1)
		}
	}

	asset, outcome, err := f.Fetch(context.Background(), "real")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if outcome != FetchExhausted || asset.URL != PlaceholderURL {
		t.Errorf("small pool should degrade to placeholder, got outcome=%v url=%q", outcome, asset.URL)
	}
}

type failingProvider struct{ err error }

func (p failingProvider) RandomAsset(context.Context, string) (Asset, error) {
	return Asset{}, p.err
}

func TestFetchPropagatesTransportErrors(t *testing.T) {
	wantErr := errors.New("connection refused")
	f := NewFetcher(failingProvider{err: wantErr}, MaxDistinctAssets)

	_, _, err := f.Fetch(context.Background(), "real")
	if !errors.Is(err, wantErr) {
		t.Errorf("Fetch() error = %v, want %v", err, wantErr)
	}
	if f.UsedCount() != 0 {
		t.Errorf("failed fetch should not record anything, UsedCount() = %d", f.UsedCount())
	}
}
