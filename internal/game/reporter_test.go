package game

import (
	"sync"
	"testing"
	"time"

	"scamsavvy/internal/models"
)

type recordingSink struct {
	mu    sync.Mutex
	calls []submittedScore
}

type submittedScore struct {
	userID int64
	score  int
	total  int
	game   string
}

func (s *recordingSink) SubmitScore(userID int64, score, total int, _ time.Duration, game string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, submittedScore{userID: userID, score: score, total: total, game: game})
	return nil
}

func TestReporterSubmitsOnceForSignedInPlayer(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(sink, models.GameRealVsAI, 7)

	r.Report(7, 10, 3*time.Minute)
	r.Report(7, 10, 3*time.Minute)
	<-r.Done()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.calls) != 1 {
		t.Fatalf("sink called %d times, want 1", len(sink.calls))
	}
	got := sink.calls[0]
	if got.userID != 7 || got.score != 7 || got.total != 10 || got.game != models.GameRealVsAI {
		t.Errorf("submitted %+v", got)
	}
}

func TestReporterSkipsGuests(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(sink, models.GameQuiz, 0)

	r.Report(5, 10, time.Minute)
	<-r.Done()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.calls) != 0 {
		t.Errorf("guest games must not submit scores, sink called %d times", len(sink.calls))
	}
}

func TestReporterRedirectPaths(t *testing.T) {
	if got := NewReporter(nil, models.GameRealVsAI, 0).RedirectPath(); got != "/leaderboard" {
		t.Errorf("real-vs-ai redirect = %q, want /leaderboard", got)
	}
	if got := NewReporter(nil, models.GameQuiz, 0).RedirectPath(); got != "/leaderboard?game=quiz" {
		t.Errorf("quiz redirect = %q, want /leaderboard?game=quiz", got)
	}
}
