package handlers

import (
	"errors"
	"net/http"
	"time"

	"scamsavvy/internal/ai"
	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/service"
)

// APIHandler serves the JSON endpoints the game pages call directly
type APIHandler struct {
	images       *repository.ImageRepository
	questions    *repository.QuestionRepository
	scoreService *service.ScoreService
	aiClient     *ai.Client
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(images *repository.ImageRepository, questions *repository.QuestionRepository, scoreService *service.ScoreService, aiClient *ai.Client) *APIHandler {
	return &APIHandler{
		images:       images,
		questions:    questions,
		scoreService: scoreService,
		aiClient:     aiClient,
	}
}

// RandomImage returns one random image of the requested type.
// GET /api/image/{type}
func (h *APIHandler) RandomImage(w http.ResponseWriter, r *http.Request) {
	imageType := r.PathValue("type")
	if !models.ValidImageType(imageType) {
		http.NotFound(w, r)
		return
	}

	img, err := h.images.GetRandomImage(imageType)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error fetching random image", err)
		return
	}
	if img == nil {
		http.NotFound(w, r)
		return
	}

	description := img.Description
	if description == "" {
		description = "No description available."
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"url":         img.URL,
		"description": description,
	})
}

// RandomQuestion returns one random quiz question.
// GET /api/scam-quiz
func (h *APIHandler) RandomQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.questions.GetRandomQuestion()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error fetching quiz question", err)
		return
	}
	if q == nil {
		http.NotFound(w, r)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"question": map[string]interface{}{
			"id":           q.ID,
			"question":     q.Question,
			"options":      q.Options,
			"correctIndex": q.CorrectIndex,
			"explanation":  q.Explanation,
		},
	})
}

// Hint generates a spotting hint for an image description.
// GET /api/hint/{description}
func (h *APIHandler) Hint(w http.ResponseWriter, r *http.Request) {
	description := r.PathValue("description")
	if description == "" {
		http.NotFound(w, r)
		return
	}

	hint, err := h.aiClient.GenerateHint(r.Context(), description)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Server Error: Failed to get hint.", "Error generating hint", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"hint": hint})
}

// Joke returns a scammer joke.
// GET /api/joke
func (h *APIHandler) Joke(w http.ResponseWriter, r *http.Request) {
	joke, err := h.aiClient.GenerateJoke(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to get joke", "Error generating joke", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"joke": joke})
}

type scoreSubmission struct {
	Score     int    `json:"score"`
	Total     int    `json:"total"`
	TimeTaken int    `json:"timeTaken"`
	Game      string `json:"game"`
}

// SubmitScore records a finished game for the signed-in player.
// POST /api/score
func (h *APIHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondJSONError(w, http.StatusUnauthorized, ErrUnauthorized)
		return
	}

	var body scoreSubmission
	if err := decodeJSONBody(r, &body); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	elapsed := time.Duration(body.TimeTaken) * time.Second
	if err := h.scoreService.SubmitScore(user.ID, body.Score, body.Total, elapsed, body.Game); err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownGame):
			http.Error(w, "Invalid game type.", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidScore):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to save score.", "Error recording score", err)
		}
		return
	}
	w.Write([]byte("Score saved successfully."))
}
