package service

import (
	"errors"
	"fmt"
	"time"

	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
)

var (
	ErrUnknownGame  = errors.New("unknown game")
	ErrInvalidScore = errors.New("score out of range")
)

// ScoreService records finished games and serves leaderboards
type ScoreService struct {
	scores *repository.ScoreRepository
}

// NewScoreService creates a score service
func NewScoreService(scores *repository.ScoreRepository) *ScoreService {
	return &ScoreService{scores: scores}
}

// formatDuration renders an elapsed time as m:ss for display and tie-breaks.
// Lexicographic order on the result matches chronological order for games
// under ten minutes, which the wall-clock budget guarantees.
func formatDuration(elapsed time.Duration) string {
	seconds := int(elapsed.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// SubmitScore validates and records a finished game. Satisfies the game
// engine's score sink.
func (s *ScoreService) SubmitScore(userID int64, score, total int, elapsed time.Duration, game string) error {
	if !models.ValidGame(game) {
		return ErrUnknownGame
	}
	if score < 0 || total <= 0 || score > total {
		return ErrInvalidScore
	}

	if _, err := s.scores.CreateScore(userID, score, total, formatDuration(elapsed), game); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// Leaderboard returns the top entries for a game. An empty game name means
// the image game's board.
func (s *ScoreService) Leaderboard(game string) ([]*models.LeaderboardEntry, error) {
	if game == "" {
		game = models.GameRealVsAI
	}
	if !models.ValidGame(game) {
		return nil, ErrUnknownGame
	}
	return s.scores.GetLeaderboard(game)
}

// RecentScores returns a user's latest results for a game
func (s *ScoreService) RecentScores(userID int64, game string, limit int) ([]*models.Score, error) {
	if !models.ValidGame(game) {
		return nil, ErrUnknownGame
	}
	if limit <= 0 {
		limit = 10
	}
	return s.scores.GetUserScores(userID, game, limit)
}
