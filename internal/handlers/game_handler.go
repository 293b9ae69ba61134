package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"scamsavvy/internal/ai"
	"scamsavvy/internal/game"
	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/security"
	"scamsavvy/internal/service"
)

// Game page paths. The JSON endpoints below only answer requests referred
// from these pages.
const (
	RealVsAIPagePath = "/real-vs-ai-game"
	QuizPagePath     = "/have-i-been-scammed"
)

// GameHandler runs the two games: it owns the play sessions that drive the
// round engine and serves the game-facing JSON API.
type GameHandler struct {
	manager      *game.Manager
	images       *repository.ImageRepository
	questions    *repository.QuestionRepository
	scoreService *service.ScoreService
	aiClient     *ai.Client
	templates    *template.Template
}

// NewGameHandler creates a new game handler
func NewGameHandler(manager *game.Manager, images *repository.ImageRepository, questions *repository.QuestionRepository, scoreService *service.ScoreService, aiClient *ai.Client, templates *template.Template) *GameHandler {
	return &GameHandler{
		manager:      manager,
		images:       images,
		questions:    questions,
		scoreService: scoreService,
		aiClient:     aiClient,
		templates:    templates,
	}
}

func pagePathFor(gameName string) string {
	if gameName == models.GameQuiz {
		return QuizPagePath
	}
	return RealVsAIPagePath
}

// currentSession resolves the play cookie to an active session of the
// given game, or nil
func (h *GameHandler) currentSession(r *http.Request, gameName string) *game.Session {
	cookie, err := r.Cookie(PlayCookieName)
	if err != nil {
		return nil
	}
	session := h.manager.Get(cookie.Value)
	if session == nil || session.Game != gameName {
		return nil
	}
	return session
}

// ShowGame renders a game page: a start screen without an active session,
// the current round with one
func (h *GameHandler) ShowGame(w http.ResponseWriter, r *http.Request, gameName, templateName string) {
	user := GetUserFromContext(r.Context())
	session := h.currentSession(r, gameName)

	title := "Real vs AI - ScamSavvy"
	if gameName == models.GameQuiz {
		title = "Have I Been Scammed? - ScamSavvy"
	}

	data := GameViewData{
		BaseViewData: BaseViewData{Title: title, User: user},
		Game:         gameName,
	}
	if session != nil {
		snap := session.Engine.Snapshot()
		if snap.State == game.StateGameOver {
			h.manager.Remove(session.ID)
			http.Redirect(w, r, session.Reporter.RedirectPath(), http.StatusSeeOther)
			return
		}
		data.Playing = true
		data.Snapshot = snap
	}

	if err := h.templates.ExecuteTemplate(w, templateName, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering game template", err)
	}
}

// ShowRealVsAI renders the image game page
func (h *GameHandler) ShowRealVsAI(w http.ResponseWriter, r *http.Request) {
	h.ShowGame(w, r, models.GameRealVsAI, "real_vs_ai.tmpl")
}

// ShowQuiz renders the quiz game page
func (h *GameHandler) ShowQuiz(w http.ResponseWriter, r *http.Request) {
	h.ShowGame(w, r, models.GameQuiz, "quiz.tmpl")
}

// StartGame creates a fresh play session for a game and loads round one
func (h *GameHandler) StartGame(w http.ResponseWriter, r *http.Request, gameName string) {
	user := GetUserFromContext(r.Context())

	var userID int64
	if user != nil {
		userID = user.ID
	}

	var source game.RoundSource
	if gameName == models.GameQuiz {
		source = game.NewQuizRoundSource(h.questions)
	} else {
		source = game.NewImageRoundSource(h.images)
	}

	reporter := game.NewReporter(h.scoreService, gameName, userID)
	engine := game.NewEngine(source, game.TotalRounds, game.GameDuration, reporter.Report)

	if err := engine.Start(r.Context()); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Could not start the game", "Error starting game", err)
		return
	}

	var hints *game.HintCache
	if gameName == models.GameRealVsAI {
		hints = game.NewHintCache(h.aiClient)
	}

	session := h.manager.Create(userID, gameName, engine, hints, reporter)
	http.SetCookie(w, &http.Cookie{
		Name:     PlayCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(game.GameDuration.Seconds()),
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, pagePathFor(gameName), http.StatusSeeOther)
}

// StartRealVsAI starts an image game
func (h *GameHandler) StartRealVsAI(w http.ResponseWriter, r *http.Request) {
	h.StartGame(w, r, models.GameRealVsAI)
}

// StartQuiz starts a quiz game
func (h *GameHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	h.StartGame(w, r, models.GameQuiz)
}

// sessionFromCookie resolves the play cookie for the action endpoints
func (h *GameHandler) sessionFromCookie(w http.ResponseWriter, r *http.Request) *game.Session {
	cookie, err := r.Cookie(PlayCookieName)
	if err != nil {
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return nil
	}
	session := h.manager.Get(cookie.Value)
	if session == nil {
		http.Redirect(w, r, "/games", http.StatusSeeOther)
		return nil
	}
	return session
}

// SubmitAnswer records the player's selection and scores the round
func (h *GameHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFromCookie(w, r)
	if session == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	page := pagePathFor(session.Game)

	selection := r.FormValue("selection")
	if selection != "" {
		index := -1
		switch selection {
		case "0":
			index = 0
		case "1":
			index = 1
		case "2":
			index = 2
		}
		if err := session.Engine.Select(index); err != nil {
			if errors.Is(err, game.ErrGameOver) {
				h.finishRedirect(w, r, session)
				return
			}
			http.Redirect(w, r, page, http.StatusSeeOther)
			return
		}
	}

	if _, err := session.Engine.Submit(); err != nil {
		switch {
		case errors.Is(err, game.ErrGameOver):
			h.finishRedirect(w, r, session)
			return
		case errors.Is(err, game.ErrNoSelection):
			// Round unchanged; the page shows the pick-an-answer prompt
		case errors.Is(err, game.ErrAlreadyAnswered):
			// Double submit, nothing to do
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error submitting answer", err)
			return
		}
	}

	http.Redirect(w, r, page, http.StatusSeeOther)
}

// NextRound advances the game to the next round, or ends it after the last
func (h *GameHandler) NextRound(w http.ResponseWriter, r *http.Request) {
	session := h.sessionFromCookie(w, r)
	if session == nil {
		return
	}

	err := session.Engine.Next()
	switch {
	case err == nil:
		if session.Engine.Snapshot().State == game.StateGameOver {
			h.finishRedirect(w, r, session)
			return
		}
		http.Redirect(w, r, pagePathFor(session.Game), http.StatusSeeOther)
	case errors.Is(err, game.ErrGameOver):
		h.finishRedirect(w, r, session)
	case errors.Is(err, game.ErrTransitionPending), errors.Is(err, game.ErrNotAnswered):
		http.Redirect(w, r, pagePathFor(session.Game), http.StatusSeeOther)
	default:
		log.Printf("Error advancing round: %v", err)
		http.Redirect(w, r, pagePathFor(session.Game), http.StatusSeeOther)
	}
}

// finishRedirect tears down a finished session and sends the player to the
// leaderboard
func (h *GameHandler) finishRedirect(w http.ResponseWriter, r *http.Request, session *game.Session) {
	h.manager.Remove(session.ID)
	http.SetCookie(w, security.CreateDeleteCookie(r, PlayCookieName))
	http.Redirect(w, r, session.Reporter.RedirectPath(), http.StatusSeeOther)
}

// QuitGame abandons the current session
func (h *GameHandler) QuitGame(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(PlayCookieName); err == nil {
		if session := h.manager.Get(cookie.Value); session != nil {
			session.Engine.Timeout()
			h.manager.Remove(session.ID)
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, PlayCookieName))
	http.Redirect(w, r, "/games", http.StatusSeeOther)
}

// RoundHint returns the cached or freshly generated hint for the current
// image round
func (h *GameHandler) RoundHint(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(PlayCookieName)
	if err != nil {
		respondJSONError(w, http.StatusBadRequest, "no active game")
		return
	}
	session := h.manager.Get(cookie.Value)
	if session == nil || session.Hints == nil {
		respondJSONError(w, http.StatusBadRequest, "no active game")
		return
	}

	snap := session.Engine.Snapshot()
	if snap.State == game.StateGameOver || len(snap.Options) != 2 {
		respondJSONError(w, http.StatusBadRequest, "no round in play")
		return
	}

	hint, err := session.Hints.Hint(r.Context(), snap.Round, snap.Options[0].Description, snap.Options[1].Description)
	if err != nil {
		log.Printf("Error generating hint: %v", err)
		respondJSON(w, http.StatusOK, map[string]string{"hint": ai.HintFallback})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"hint": hint})
}
