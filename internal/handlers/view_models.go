package handlers

import (
	"scamsavvy/internal/game"
	"scamsavvy/internal/models"
	"scamsavvy/internal/service"
)

// BaseViewData carries what every page template needs
type BaseViewData struct {
	Title     string
	User      *models.User
	Error     string
	Flash     string
	CSRFToken string
}

// AuthViewData backs the login and register forms
type AuthViewData struct {
	BaseViewData
	Email    string
	Username string
}

// ResetViewData backs the password reset form
type ResetViewData struct {
	BaseViewData
	Token string
}

// LeaderboardViewData backs the leaderboard page
type LeaderboardViewData struct {
	BaseViewData
	Game    string
	Entries []*models.LeaderboardEntry
}

// GameViewData backs the two game play pages
type GameViewData struct {
	BaseViewData
	Game     string
	Snapshot game.Snapshot
	Playing  bool
}

// AccountViewData backs the account page
type AccountViewData struct {
	BaseViewData
	ImageScores []*models.Score
	QuizScores  []*models.Score
}

// InfoListViewData backs the information hub index
type InfoListViewData struct {
	BaseViewData
	Pages      []*models.InfoPage
	Page       int
	TotalPages int
	PrevPage   int
	NextPage   int
}

// InfoPageViewData backs a single information page
type InfoPageViewData struct {
	BaseViewData
	Content *models.InfoPage
}

// AdminViewData backs the admin dashboard
type AdminViewData struct {
	BaseViewData
	Stats      service.Stats
	RealImages []*models.GameImage
	AIImages   []*models.GameImage
	Questions  []*models.QuizQuestion
	Pages      []*models.InfoPage
}

// AdminInfoFormViewData backs the information page editor
type AdminInfoFormViewData struct {
	BaseViewData
	Content *models.InfoPage
}
