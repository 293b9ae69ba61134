package game

import (
	"context"
	"fmt"
	"math/rand"

	"scamsavvy/internal/models"
)

// ImageStore supplies random game images by type
type ImageStore interface {
	GetRandomImage(imageType string) (*models.GameImage, error)
}

// QuestionStore supplies random quiz questions
type QuestionStore interface {
	GetRandomQuestion() (*models.QuizQuestion, error)
}

type imageProvider struct {
	images ImageStore
}

func (p imageProvider) RandomAsset(_ context.Context, kind string) (Asset, error) {
	img, err := p.images.GetRandomImage(kind)
	if err != nil {
		return Asset{}, err
	}
	if img == nil {
		return Asset{}, fmt.Errorf("no %s images available", kind)
	}

	description := img.Description
	if description == "" {
		description = PlaceholderDescription
	}
	return Asset{URL: img.URL, Description: description}, nil
}

// ImageRoundSource builds "Real vs AI" rounds: one real photo and one
// AI-generated image in random left/right order. Duplicate avoidance is
// session-wide across both kinds via a shared Fetcher.
type ImageRoundSource struct {
	fetcher *Fetcher
	pick    func(n int) int
}

// NewImageRoundSource creates a round source over the image store
func NewImageRoundSource(images ImageStore) *ImageRoundSource {
	return &ImageRoundSource{
		fetcher: NewFetcher(imageProvider{images: images}, MaxDistinctAssets),
		pick:    rand.Intn,
	}
}

// NextRound fetches a real and an AI image and assigns them random sides.
// The correct answer is the side holding the real photo.
func (s *ImageRoundSource) NextRound(ctx context.Context) (*Round, error) {
	photo, _, err := s.fetcher.Fetch(ctx, models.ImageTypeReal)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch real image: %w", err)
	}
	generated, _, err := s.fetcher.Fetch(ctx, models.ImageTypeAI)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ai image: %w", err)
	}

	realIndex := s.pick(2)
	options := make([]Option, 2)
	options[realIndex] = Option{ImageURL: photo.URL, Description: photo.Description}
	options[1-realIndex] = Option{ImageURL: generated.URL, Description: generated.Description}

	return &Round{
		Prompt:       "Which image is real?",
		Options:      options,
		CorrectIndex: realIndex,
	}, nil
}

// QuizRoundSource builds "Have I Been Scammed" rounds from the question bank
type QuizRoundSource struct {
	questions QuestionStore
}

// NewQuizRoundSource creates a round source over the question store
func NewQuizRoundSource(questions QuestionStore) *QuizRoundSource {
	return &QuizRoundSource{questions: questions}
}

// NextRound samples one question. Questions may repeat across rounds; the
// bank is sampled uniformly on each call.
func (s *QuizRoundSource) NextRound(context.Context) (*Round, error) {
	q, err := s.questions.GetRandomQuestion()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quiz question: %w", err)
	}
	if q == nil {
		return nil, fmt.Errorf("no quiz questions available")
	}

	options := make([]Option, len(q.Options))
	for i, label := range q.Options {
		options[i] = Option{Label: label}
	}

	return &Round{
		Prompt:       q.Question,
		Options:      options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}, nil
}
