package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the round state machine's current phase
type State int

const (
	// StateLoading covers the initial asset fetch before round one
	StateLoading State = iota

	// StateAwaitingSelection means the round is displayed and unanswered
	StateAwaitingSelection

	// StateAnswered means the round was submitted and feedback is showing
	StateAnswered

	// StateGameOver is terminal
	StateGameOver
)

var (
	ErrNoSelection       = errors.New("no answer selected")
	ErrAlreadyAnswered   = errors.New("round already answered")
	ErrNotAnswered       = errors.New("round not answered yet")
	ErrGameOver          = errors.New("game is over")
	ErrTransitionPending = errors.New("round transition already in progress")
	ErrInvalidSelection  = errors.New("selection out of range")
)

// Feedback is what a submitted round reveals
type Feedback struct {
	Correct      bool
	CorrectIndex int
	Explanation  string
	Score        int
}

// FinishFunc is invoked exactly once when the game ends, whether by playing
// out all rounds or by the wall-clock timer
type FinishFunc func(score, total int, elapsed time.Duration)

type prefetchResult struct {
	round *Round
	err   error
}

// Engine drives one play-through: it pulls rounds from a RoundSource,
// prefetching the next round while the current one is live, scores
// submissions, and terminates on round exhaustion or timeout, whichever
// comes first.
type Engine struct {
	source      RoundSource
	totalRounds int
	duration    time.Duration
	onFinish    FinishFunc

	mu        sync.Mutex
	state     State
	round     int // 1-based, set when a round becomes playable
	score     int
	current   *Round
	selection int
	feedback  Feedback
	advancing bool
	finished  bool

	prefetch chan prefetchResult
	start    time.Time
	timer    *time.Timer
	ctx      context.Context
	cancel   context.CancelFunc

	finishOnce sync.Once
}

// NewEngine creates an engine over the given source. onFinish may be nil.
func NewEngine(source RoundSource, totalRounds int, duration time.Duration, onFinish FinishFunc) *Engine {
	return &Engine{
		source:      source,
		totalRounds: totalRounds,
		duration:    duration,
		onFinish:    onFinish,
		state:       StateLoading,
		selection:   NoSelection,
		prefetch:    make(chan prefetchResult, 1),
	}
}

// Start fetches round one, kicks off the prefetch of round two, and arms the
// game timer. It must be called once before any other method.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateLoading {
		return fmt.Errorf("game already started")
	}

	first, err := e.source.NextRound(ctx)
	if err != nil {
		return fmt.Errorf("failed to load first round: %w", err)
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.current = first
	e.round = 1
	e.state = StateAwaitingSelection
	e.start = time.Now()
	e.timer = time.AfterFunc(e.duration, e.Timeout)
	e.kickPrefetch()

	return nil
}

// kickPrefetch starts fetching the next round in the background.
// Callers must hold the mutex.
func (e *Engine) kickPrefetch() {
	ctx := e.ctx
	go func() {
		round, err := e.source.NextRound(ctx)
		select {
		case e.prefetch <- prefetchResult{round: round, err: err}:
		case <-ctx.Done():
		}
	}()
}

// Select marks an option as the candidate answer. Selecting again before
// submitting replaces the previous choice.
func (e *Engine) Select(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateGameOver:
		return ErrGameOver
	case StateAnswered:
		return ErrAlreadyAnswered
	case StateLoading:
		return fmt.Errorf("game not started")
	}

	if index < 0 || index >= len(e.current.Options) {
		return ErrInvalidSelection
	}
	e.selection = index
	return nil
}

// Submit scores the current round against the selection. Submitting without
// a selection changes nothing and returns ErrNoSelection.
func (e *Engine) Submit() (Feedback, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateGameOver:
		return Feedback{}, ErrGameOver
	case StateAnswered:
		return Feedback{}, ErrAlreadyAnswered
	case StateLoading:
		return Feedback{}, fmt.Errorf("game not started")
	}

	if e.selection == NoSelection {
		return Feedback{}, ErrNoSelection
	}

	correct := e.selection == e.current.CorrectIndex
	if correct {
		e.score++
	}

	e.state = StateAnswered
	e.feedback = Feedback{
		Correct:      correct,
		CorrectIndex: e.current.CorrectIndex,
		Explanation:  e.current.Explanation,
		Score:        e.score,
	}
	return e.feedback, nil
}

// Next advances to the following round, swapping in the prefetched content
// and starting the prefetch after that. On the last round it ends the game
// instead. Transitions are serialized: a second Next while one is in flight
// returns ErrTransitionPending.
func (e *Engine) Next() error {
	e.mu.Lock()

	if e.state == StateGameOver {
		e.mu.Unlock()
		return ErrGameOver
	}
	if e.advancing {
		e.mu.Unlock()
		return ErrTransitionPending
	}
	if e.state != StateAnswered {
		e.mu.Unlock()
		return ErrNotAnswered
	}

	if e.round >= e.totalRounds {
		e.mu.Unlock()
		e.finish()
		return nil
	}

	e.advancing = true
	ctx := e.ctx
	e.mu.Unlock()

	// The prefetch was kicked off at the start of the current round; wait
	// for it here if it has not resolved yet.
	var result prefetchResult
	select {
	case result = <-e.prefetch:
	case <-ctx.Done():
		e.mu.Lock()
		e.advancing = false
		e.mu.Unlock()
		return ErrGameOver
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.advancing = false

	if e.finished {
		return ErrGameOver
	}

	if result.err != nil {
		// Leave the round answered so the player can retry the
		// transition; queue a fresh prefetch for that retry.
		e.kickPrefetch()
		return fmt.Errorf("failed to load next round: %w", result.err)
	}

	e.current = result.round
	e.round++
	e.selection = NoSelection
	e.feedback = Feedback{}
	e.state = StateAwaitingSelection

	if e.round < e.totalRounds {
		e.kickPrefetch()
	}
	return nil
}

// Timeout ends the game because the wall-clock budget expired. Safe to call
// at any time; only the first termination wins.
func (e *Engine) Timeout() {
	e.finish()
}

// finish transitions to GameOver exactly once, cancels the timer and any
// in-flight prefetch, and reports the result.
func (e *Engine) finish() {
	e.finishOnce.Do(func() {
		e.mu.Lock()
		e.state = StateGameOver
		e.finished = true
		e.selection = NoSelection
		score := e.score
		elapsed := time.Since(e.start)
		if e.timer != nil {
			e.timer.Stop()
		}
		if e.cancel != nil {
			e.cancel()
		}
		onFinish := e.onFinish
		e.mu.Unlock()

		if onFinish != nil {
			onFinish(score, e.totalRounds, elapsed)
		}
	})
}

// Snapshot is a point-in-time view of the engine for rendering
type Snapshot struct {
	State       State
	Round       int
	TotalRounds int
	Score       int
	Options     []Option
	Prompt      string
	Selection   int
	Feedback    Feedback
	Elapsed     time.Duration
}

// Answered reports whether the current round has been submitted
func (s Snapshot) Answered() bool {
	return s.State == StateAnswered
}

// Snapshot returns the current game state for display
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:       e.state,
		Round:       e.round,
		TotalRounds: e.totalRounds,
		Score:       e.score,
		Selection:   e.selection,
		Feedback:    e.feedback,
	}
	if !e.start.IsZero() {
		snap.Elapsed = time.Since(e.start)
	}
	if e.current != nil && e.state != StateGameOver {
		snap.Options = e.current.Options
		snap.Prompt = e.current.Prompt
	}
	return snap
}
