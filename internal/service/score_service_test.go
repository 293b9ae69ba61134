package service

import (
	"errors"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "0:00"},
		{"seconds only", 42 * time.Second, "0:42"},
		{"exact minute", time.Minute, "1:00"},
		{"minutes and seconds", 3*time.Minute + 7*time.Second, "3:07"},
		{"full game budget", 10 * time.Minute, "10:00"},
		{"sub-second rounds", 1500 * time.Millisecond, "0:02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.elapsed); got != tt.want {
				t.Errorf("formatDuration(%v) = %q, want %q", tt.elapsed, got, tt.want)
			}
		})
	}
}

func TestSubmitScoreRejectsBadInput(t *testing.T) {
	s := NewScoreService(nil)

	if err := s.SubmitScore(1, 5, 10, time.Minute, "pacman"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("unknown game error = %v, want ErrUnknownGame", err)
	}
	if err := s.SubmitScore(1, 11, 10, time.Minute, "quiz"); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("score > total error = %v, want ErrInvalidScore", err)
	}
	if err := s.SubmitScore(1, -1, 10, time.Minute, "quiz"); !errors.Is(err, ErrInvalidScore) {
		t.Errorf("negative score error = %v, want ErrInvalidScore", err)
	}
}

func TestLeaderboardRejectsUnknownGame(t *testing.T) {
	s := NewScoreService(nil)
	if _, err := s.Leaderboard("pacman"); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("Leaderboard() error = %v, want ErrUnknownGame", err)
	}
}
