package models

import "time"

// Game identifiers accepted by the score endpoint and leaderboard.
const (
	GameRealVsAI = "real-vs-ai"
	GameQuiz     = "quiz"
)

// ValidGame reports whether id names a known game
func ValidGame(id string) bool {
	return id == GameRealVsAI || id == GameQuiz
}

// Image types for the Real vs AI game.
const (
	ImageTypeReal = "real"
	ImageTypeAI   = "ai"
)

// ValidImageType reports whether t is a known image type
func ValidImageType(t string) bool {
	return t == ImageTypeReal || t == ImageTypeAI
}

// GameImage is one image in the Real vs AI pool
type GameImage struct {
	ID          int64
	URL         string
	Type        string
	Description string
	CreatedAt   time.Time
}

// QuizQuestion is one question in the scam quiz pool.
// Options always holds exactly three answers; CorrectIndex is 0-2.
type QuizQuestion struct {
	ID           int64
	Question     string
	Options      []string
	CorrectIndex int
	Explanation  string
	CreatedAt    time.Time
}

// Score is one completed play recorded for the leaderboard
type Score struct {
	ID        int64
	UserID    int64
	Score     int
	Total     int
	Time      string // formatted m:ss
	Game      string
	CreatedAt time.Time
}

// LeaderboardEntry is a score joined with its player for display
type LeaderboardEntry struct {
	Score           int
	Total           int
	Time            string
	Username        string
	ProfileImageURL string
}
