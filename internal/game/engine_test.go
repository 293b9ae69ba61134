package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// scriptedSource hands out rounds with a known correct index. Specific
// calls can be made to fail, and all calls can be made to park on a channel.
type scriptedSource struct {
	mu     sync.Mutex
	calls  int
	failOn map[int]bool
	block  chan struct{} // if set, NextRound waits on it
}

func (s *scriptedSource) NextRound(context.Context) (*Round, error) {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.failOn[s.calls] {
		return nil, errors.New("database gone")
	}
	return &Round{
		Prompt:       "pick zero",
		Options:      []Option{{Label: "a"}, {Label: "b"}},
		CorrectIndex: 0,
	}, nil
}

func startedEngine(t *testing.T, onFinish FinishFunc) *Engine {
	t.Helper()
	e := NewEngine(&scriptedSource{}, TotalRounds, GameDuration, onFinish)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	return e
}

func playRound(t *testing.T, e *Engine, selection int) Feedback {
	t.Helper()
	if err := e.Select(selection); err != nil {
		t.Fatalf("Select(%d) error = %v", selection, err)
	}
	fb, err := e.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	return fb
}

func TestScoreNeverExceedsRound(t *testing.T) {
	e := startedEngine(t, nil)

	for round := 1; round <= TotalRounds; round++ {
		snap := e.Snapshot()
		if snap.Score > snap.Round {
			t.Fatalf("before round %d: score %d exceeds round %d", round, snap.Score, snap.Round)
		}

		playRound(t, e, 0)

		snap = e.Snapshot()
		if snap.Score > snap.Round {
			t.Fatalf("after round %d: score %d exceeds round %d", round, snap.Score, snap.Round)
		}

		if err := e.Next(); err != nil {
			t.Fatalf("Next() round %d error = %v", round, err)
		}
	}

	if e.Snapshot().State != StateGameOver {
		t.Error("game should be over after the final round")
	}
}

func TestSubmitWithoutSelectionIsRejected(t *testing.T) {
	e := startedEngine(t, nil)

	before := e.Snapshot()
	if _, err := e.Submit(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("Submit() error = %v, want ErrNoSelection", err)
	}

	after := e.Snapshot()
	if after.State != StateAwaitingSelection {
		t.Errorf("state = %v, want StateAwaitingSelection", after.State)
	}
	if after.Round != before.Round || after.Score != before.Score {
		t.Error("rejected submit must not change round or score")
	}
}

func TestSelectionLastWriteWins(t *testing.T) {
	e := startedEngine(t, nil)

	if err := e.Select(1); err != nil {
		t.Fatalf("Select(1) error = %v", err)
	}
	if err := e.Select(0); err != nil {
		t.Fatalf("Select(0) error = %v", err)
	}

	fb, err := e.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !fb.Correct {
		t.Error("replacing the selection before submit should use the latest choice")
	}
}

func TestSevenOfTenScenario(t *testing.T) {
	var gotScore, gotTotal int
	var finished int
	e := startedEngine(t, func(score, total int, elapsed time.Duration) {
		gotScore, gotTotal = score, total
		finished++
	})

	for round := 1; round <= TotalRounds; round++ {
		selection := 0 // correct
		if round > 7 {
			selection = 1 // incorrect
		}
		playRound(t, e, selection)
		if err := e.Next(); err != nil {
			t.Fatalf("Next() round %d error = %v", round, err)
		}
	}

	if finished != 1 {
		t.Fatalf("finish callback ran %d times, want 1", finished)
	}
	if gotScore != 7 || gotTotal != 10 {
		t.Errorf("reported %d/%d, want 7/10", gotScore, gotTotal)
	}
}

func TestTimeoutAndCompletionFinishOnce(t *testing.T) {
	var finished int
	var mu sync.Mutex
	e := startedEngine(t, func(int, int, time.Duration) {
		mu.Lock()
		finished++
		mu.Unlock()
	})

	for round := 1; round <= TotalRounds; round++ {
		playRound(t, e, 0)
		if err := e.Next(); err != nil {
			t.Fatalf("Next() round %d error = %v", round, err)
		}
	}

	// The wall-clock path firing after natural completion must be ignored
	e.Timeout()
	e.Timeout()

	mu.Lock()
	defer mu.Unlock()
	if finished != 1 {
		t.Errorf("finish callback ran %d times, want 1", finished)
	}
}

func TestTimeoutEndsGameMidRound(t *testing.T) {
	var finished int
	e := startedEngine(t, func(int, int, time.Duration) { finished++ })

	playRound(t, e, 0)
	e.Timeout()

	if e.Snapshot().State != StateGameOver {
		t.Error("state should be GameOver after timeout")
	}
	if finished != 1 {
		t.Errorf("finish callback ran %d times, want 1", finished)
	}
	if err := e.Next(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Next() after timeout error = %v, want ErrGameOver", err)
	}
	if _, err := e.Submit(); !errors.Is(err, ErrGameOver) {
		t.Errorf("Submit() after timeout error = %v, want ErrGameOver", err)
	}
}

func TestReentrantNextIsRejected(t *testing.T) {
	source := &scriptedSource{block: make(chan struct{})}
	// Unblock the first fetch only, so the prefetch stays in flight
	go func() { source.block <- struct{}{} }()

	e := NewEngine(source, TotalRounds, GameDuration, nil)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	playRound(t, e, 0)

	firstDone := make(chan error, 1)
	go func() { firstDone <- e.Next() }()

	// Give the first transition time to park on the unresolved prefetch
	time.Sleep(50 * time.Millisecond)
	if err := e.Next(); !errors.Is(err, ErrTransitionPending) {
		t.Fatalf("second Next() error = %v, want ErrTransitionPending", err)
	}

	// Let the prefetch resolve and the first transition complete
	source.block <- struct{}{}
	if err := <-firstDone; err != nil {
		t.Fatalf("first Next() error = %v", err)
	}
	if snap := e.Snapshot(); snap.Round != 2 {
		t.Errorf("round = %d, want 2", snap.Round)
	}
}

func TestNextSurfacesPrefetchFailureAndAllowsRetry(t *testing.T) {
	// Call 1 loads round one; call 2 is the prefetch of round two and fails
	source := &scriptedSource{failOn: map[int]bool{2: true}}
	e := NewEngine(source, TotalRounds, GameDuration, nil)
	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	playRound(t, e, 0)
	if err := e.Next(); err == nil {
		t.Fatal("Next() should surface a failed prefetch")
	}

	snap := e.Snapshot()
	if snap.State != StateAnswered || snap.Round != 1 {
		t.Fatalf("failed transition should leave the round answered, got state=%v round=%d", snap.State, snap.Round)
	}

	if err := e.Next(); err != nil {
		t.Fatalf("retried Next() error = %v", err)
	}
	if snap := e.Snapshot(); snap.Round != 2 || snap.State != StateAwaitingSelection {
		t.Errorf("after retry: round=%d state=%v, want 2/AwaitingSelection", snap.Round, snap.State)
	}
}

func TestSelectRejectsOutOfRange(t *testing.T) {
	e := startedEngine(t, nil)

	if err := e.Select(2); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Select(2) error = %v, want ErrInvalidSelection", err)
	}
	if err := e.Select(-1); !errors.Is(err, ErrInvalidSelection) {
		t.Errorf("Select(-1) error = %v, want ErrInvalidSelection", err)
	}
}
