package game

import (
	"context"
	"errors"
	"testing"
)

type countingGenerator struct {
	calls []string
	err   error
}

func (g *countingGenerator) GenerateHint(_ context.Context, description string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.calls = append(g.calls, description)
	return "hint about " + description, nil
}

func TestHintJoinsTwoDescriptionsLeftFirst(t *testing.T) {
	gen := &countingGenerator{}
	cache := NewHintCache(gen)

	hint, err := cache.Hint(context.Background(), 1, "a lake", "a robot")
	if err != nil {
		t.Fatalf("Hint() error = %v", err)
	}

	want := "hint about a lake\n\nhint about a robot"
	if hint != want {
		t.Errorf("Hint() = %q, want %q", hint, want)
	}
	if len(gen.calls) != 2 || gen.calls[0] != "a lake" || gen.calls[1] != "a robot" {
		t.Errorf("generator calls = %v, want left description first", gen.calls)
	}
}

func TestHintIdenticalDescriptionsSingleCall(t *testing.T) {
	gen := &countingGenerator{}
	cache := NewHintCache(gen)

	hint, err := cache.Hint(context.Background(), 1, "a lake", "a lake")
	if err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if hint != "hint about a lake" {
		t.Errorf("Hint() = %q", hint)
	}
	if len(gen.calls) != 1 {
		t.Errorf("generator called %d times, want 1", len(gen.calls))
	}
}

func TestHintCachedWithinRoundButNotAcrossRounds(t *testing.T) {
	gen := &countingGenerator{}
	cache := NewHintCache(gen)

	if _, err := cache.Hint(context.Background(), 3, "a lake", "a robot"); err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if _, err := cache.Hint(context.Background(), 3, "a lake", "a robot"); err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if len(gen.calls) != 2 {
		t.Fatalf("repeat within a round made %d calls, want 2 total", len(gen.calls))
	}

	// A different round with the same pair is a fresh key
	if _, err := cache.Hint(context.Background(), 4, "a lake", "a robot"); err != nil {
		t.Fatalf("Hint() error = %v", err)
	}
	if len(gen.calls) != 4 {
		t.Errorf("new round made %d calls total, want 4", len(gen.calls))
	}
}

func TestHintPropagatesGeneratorErrors(t *testing.T) {
	wantErr := errors.New("completion API down")
	cache := NewHintCache(&countingGenerator{err: wantErr})

	if _, err := cache.Hint(context.Background(), 1, "a", "b"); !errors.Is(err, wantErr) {
		t.Errorf("Hint() error = %v, want %v", err, wantErr)
	}
}
