package game

import (
	"context"
	"time"
)

const (
	// TotalRounds is the number of rounds in one play-through
	TotalRounds = 10

	// GameDuration is the wall-clock budget for a whole game
	GameDuration = 600 * time.Second

	// MaxDistinctAssets caps how many distinct assets one session may consume
	// before the fetcher degrades to the placeholder
	MaxDistinctAssets = 20

	// PlaceholderURL and PlaceholderDescription stand in once the asset pool
	// is exhausted
	PlaceholderURL         = "/placeholder.png"
	PlaceholderDescription = "No description available."
)

// NoSelection marks a round with no answer chosen yet
const NoSelection = -1

// Asset is one image payload retrieved for a round
type Asset struct {
	URL         string
	Description string
	Placeholder bool
}

// Option is one selectable candidate within a round. Image rounds carry an
// image URL and description; quiz rounds carry only a label.
type Option struct {
	Label       string
	ImageURL    string
	Description string
}

// Round is one unit of gameplay requiring a single decision
type Round struct {
	Prompt       string
	Options      []Option
	CorrectIndex int
	Explanation  string
}

// RoundSource produces the next round's content
type RoundSource interface {
	NextRound(ctx context.Context) (*Round, error)
}
