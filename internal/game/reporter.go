package game

import (
	"log"
	"sync"
	"time"

	"scamsavvy/internal/models"
)

// ScoreSink records a finished game's result
type ScoreSink interface {
	SubmitScore(userID int64, score, total int, elapsed time.Duration, game string) error
}

// Reporter submits a finished game's score at most once. Guests never
// submit; for signed-in players the submission is fire-and-forget, so a
// failed write never blocks the player's redirect to the leaderboard.
type Reporter struct {
	sink   ScoreSink
	game   string
	userID int64 // 0 for guests

	once sync.Once
	done chan struct{}
}

// NewReporter creates a reporter for one game session. userID of 0 means
// the player is a guest.
func NewReporter(sink ScoreSink, game string, userID int64) *Reporter {
	return &Reporter{
		sink:   sink,
		game:   game,
		userID: userID,
		done:   make(chan struct{}),
	}
}

// Report submits the result. Repeated calls after the first are no-ops.
func (r *Reporter) Report(score, total int, elapsed time.Duration) {
	r.once.Do(func() {
		if r.userID == 0 {
			close(r.done)
			return
		}
		go func() {
			defer close(r.done)
			if err := r.sink.SubmitScore(r.userID, score, total, elapsed, r.game); err != nil {
				log.Printf("failed to submit score for user %d: %v", r.userID, err)
			}
		}()
	})
}

// Done is closed once the submission attempt (or guest skip) has completed.
// Useful for tests; callers never need to wait on it.
func (r *Reporter) Done() <-chan struct{} {
	return r.done
}

// RedirectPath is where the player lands after the game ends
func (r *Reporter) RedirectPath() string {
	if r.game == models.GameRealVsAI {
		return "/leaderboard"
	}
	return "/leaderboard?game=" + r.game
}
