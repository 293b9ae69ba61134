package repository

import (
	"fmt"

	"scamsavvy/internal/database"
	"scamsavvy/internal/models"
)

// Leaderboards show the best six results per game.
const leaderboardSize = 6

// ScoreRepository handles database operations for game scores
type ScoreRepository struct {
	db *database.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *database.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// CreateScore records a finished game for a user
func (r *ScoreRepository) CreateScore(userID int64, score, total int, elapsed, game string) (*models.Score, error) {
	query := `
		INSERT INTO scores (user_id, score, total, time, game)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, userID, score, total, elapsed, game)
	if err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	return &models.Score{
		ID:     id,
		UserID: userID,
		Score:  score,
		Total:  total,
		Time:   elapsed,
		Game:   game,
	}, nil
}

// GetLeaderboard returns the top entries for a game, best score first,
// faster time breaking ties
func (r *ScoreRepository) GetLeaderboard(game string) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT s.score, s.total, s.time, u.username, COALESCE(u.profile_image_url, '')
		FROM scores s
		JOIN users u ON u.id = s.user_id
		WHERE s.game = ?
		ORDER BY s.score DESC, s.time ASC
		LIMIT ?
	`
	rows, err := r.db.Query(query, game, leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		if err := rows.Scan(&entry.Score, &entry.Total, &entry.Time, &entry.Username, &entry.ProfileImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		if entry.ProfileImageURL == "" {
			entry.ProfileImageURL = models.DefaultProfileImage
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// GetUserScores returns a user's recorded scores for a game, newest first
func (r *ScoreRepository) GetUserScores(userID int64, game string, limit int) ([]*models.Score, error) {
	query := `
		SELECT id, user_id, score, total, time, game, created_at
		FROM scores
		WHERE user_id = ? AND game = ?
		ORDER BY created_at DESC
		LIMIT ?
	`
	rows, err := r.db.Query(query, userID, game, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get user scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.Score
	for rows.Next() {
		s := &models.Score{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.Score, &s.Total, &s.Time, &s.Game, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
