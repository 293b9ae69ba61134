package game

import (
	"context"
	"fmt"
	"sync"
)

// HintGenerator produces a spotting hint for one asset description
type HintGenerator interface {
	GenerateHint(ctx context.Context, description string) (string, error)
}

// HintCache memoizes hints per round so reopening the hint view within a
// round never re-calls the generator. Entries are write-once and live as
// long as the game session.
type HintCache struct {
	generator HintGenerator

	mu    sync.Mutex
	hints map[string]string
}

// NewHintCache creates a hint cache over the given generator
func NewHintCache(generator HintGenerator) *HintCache {
	return &HintCache{
		generator: generator,
		hints:     make(map[string]string),
	}
}

// Hint returns the hint for a round's two candidate descriptions. Identical
// descriptions produce a single generator call; otherwise the left-hand
// description is requested first and the two hints are joined by a blank
// line. The same round and pair always returns the cached text.
func (c *HintCache) Hint(ctx context.Context, round int, left, right string) (string, error) {
	key := fmt.Sprintf("%d:%s|%s", round, left, right)

	c.mu.Lock()
	if cached, ok := c.hints[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var hint string
	if left == right {
		single, err := c.generator.GenerateHint(ctx, left)
		if err != nil {
			return "", err
		}
		hint = single
	} else {
		first, err := c.generator.GenerateHint(ctx, left)
		if err != nil {
			return "", err
		}
		second, err := c.generator.GenerateHint(ctx, right)
		if err != nil {
			return "", err
		}
		hint = first + "\n\n" + second
	}

	c.mu.Lock()
	// First writer wins if two requests raced for the same key
	if cached, ok := c.hints[key]; ok {
		hint = cached
	} else {
		c.hints[key] = hint
	}
	c.mu.Unlock()

	return hint, nil
}
