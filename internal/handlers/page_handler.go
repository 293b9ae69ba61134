package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/service"
	"scamsavvy/internal/storage"
	"scamsavvy/internal/validation"
)

// PageHandler renders the consumer-facing pages
type PageHandler struct {
	scoreService  *service.ScoreService
	infoService   *service.InfoService
	users         *repository.UserRepository
	uploads       *storage.UploadStore
	middleware    *Middleware
	templates     *template.Template
	uploadMaxSize int64
}

// NewPageHandler creates a new page handler
func NewPageHandler(scoreService *service.ScoreService, infoService *service.InfoService, users *repository.UserRepository, uploads *storage.UploadStore, middleware *Middleware, templates *template.Template, uploadMaxSize int64) *PageHandler {
	return &PageHandler{
		scoreService:  scoreService,
		infoService:   infoService,
		users:         users,
		uploads:       uploads,
		middleware:    middleware,
		templates:     templates,
		uploadMaxSize: uploadMaxSize,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering "+name, err)
	}
}

// Home renders the landing page
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}
	data := BaseViewData{Title: "ScamSavvy", User: GetUserFromContext(r.Context())}
	h.render(w, "home.tmpl", data)
}

// Games renders the game picker page
func (h *PageHandler) Games(w http.ResponseWriter, r *http.Request) {
	data := BaseViewData{Title: "Games - ScamSavvy", User: GetUserFromContext(r.Context())}
	h.render(w, "games.tmpl", data)
}

// About renders the about page
func (h *PageHandler) About(w http.ResponseWriter, r *http.Request) {
	data := BaseViewData{Title: "About - ScamSavvy", User: GetUserFromContext(r.Context())}
	h.render(w, "about.tmpl", data)
}

// Leaderboard renders the top scores for a game.
// GET /leaderboard?game={id}
func (h *PageHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	gameName := r.URL.Query().Get("game")
	if gameName == "" {
		gameName = models.GameRealVsAI
	}

	entries, err := h.scoreService.Leaderboard(gameName)
	if err != nil {
		if errors.Is(err, service.ErrUnknownGame) {
			h.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading leaderboard", err)
		return
	}

	data := LeaderboardViewData{
		BaseViewData: BaseViewData{Title: "Leaderboard - ScamSavvy", User: GetUserFromContext(r.Context())},
		Game:         gameName,
		Entries:      entries,
	}
	h.render(w, "leaderboard.tmpl", data)
}

// InformationList renders one page of the scam-awareness hub
func (h *PageHandler) InformationList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.NotFound(w, r)
			return
		}
		page = parsed
	}

	pages, totalPages, err := h.infoService.ListPages(page)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing information pages", err)
		return
	}

	data := InfoListViewData{
		BaseViewData: BaseViewData{Title: "Information Hub - ScamSavvy", User: GetUserFromContext(r.Context())},
		Pages:        pages,
		Page:         page,
		TotalPages:   totalPages,
		PrevPage:     page - 1,
		NextPage:     page + 1,
	}
	if data.NextPage > totalPages {
		data.NextPage = 0
	}
	h.render(w, "information_list.tmpl", data)
}

// InformationPage renders one hub entry by slug
func (h *PageHandler) InformationPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := validation.ValidateSlug(slug); err != nil {
		h.NotFound(w, r)
		return
	}

	content, err := h.infoService.GetPage(slug)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading information page", err)
		return
	}
	if content == nil {
		h.NotFound(w, r)
		return
	}

	data := InfoPageViewData{
		BaseViewData: BaseViewData{Title: content.Title + " - ScamSavvy", User: GetUserFromContext(r.Context())},
		Content:      content,
	}
	h.render(w, "information_page.tmpl", data)
}

// Account renders the signed-in player's profile and recent results
func (h *PageHandler) Account(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	imageScores, err := h.scoreService.RecentScores(user.ID, models.GameRealVsAI, 5)
	if err != nil {
		log.Printf("Error loading image game scores: %v", err)
	}
	quizScores, err := h.scoreService.RecentScores(user.ID, models.GameQuiz, 5)
	if err != nil {
		log.Printf("Error loading quiz scores: %v", err)
	}

	data := AccountViewData{
		BaseViewData: BaseViewData{Title: "My Account - ScamSavvy", User: user, CSRFToken: h.middleware.CSRFToken(r)},
		ImageScores:  imageScores,
		QuizScores:   quizScores,
	}
	h.render(w, "account.tmpl", data)
}

// UpdateAccount changes the player's username and profile image.
// POST /account/update
func (h *PageHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	removeImage := r.FormValue("removeProfileImage") == "true"
	file, header, fileErr := r.FormFile("profileImage")
	hasNewImage := fileErr == nil
	if hasNewImage {
		defer file.Close()
	}

	if err := validation.ValidateUsername(username); err != nil {
		h.renderAccount(w, r, user, err.Error(), "", http.StatusBadRequest)
		return
	}

	if username == user.Username && !removeImage && !hasNewImage {
		h.renderAccount(w, r, user, "", "No changes made.", http.StatusOK)
		return
	}

	imageURL := user.ProfileImageURL
	if removeImage || hasNewImage {
		if user.ProfileImageURL != "" {
			if err := h.uploads.Delete(user.ProfileImageURL); err != nil {
				log.Printf("Error deleting old profile image: %v", err)
			}
		}
		imageURL = ""
	}
	if hasNewImage {
		url, err := h.uploads.Save(file, header)
		if err != nil {
			h.renderAccount(w, r, user, "Could not store the profile image", "", http.StatusBadRequest)
			return
		}
		imageURL = url
	}

	if err := h.users.UpdateProfile(user.ID, username, imageURL); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error updating profile", err)
		return
	}
	http.Redirect(w, r, "/account", http.StatusSeeOther)
}

func (h *PageHandler) renderAccount(w http.ResponseWriter, r *http.Request, user *models.User, errMsg, flash string, status int) {
	imageScores, _ := h.scoreService.RecentScores(user.ID, models.GameRealVsAI, 5)
	quizScores, _ := h.scoreService.RecentScores(user.ID, models.GameQuiz, 5)

	data := AccountViewData{
		BaseViewData: BaseViewData{
			Title:     "My Account - ScamSavvy",
			User:      user,
			Error:     errMsg,
			Flash:     flash,
			CSRFToken: h.middleware.CSRFToken(r),
		},
		ImageScores: imageScores,
		QuizScores:  quizScores,
	}
	w.WriteHeader(status)
	h.render(w, "account.tmpl", data)
}

// NotFound renders the 404 page
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := BaseViewData{Title: "Page Not Found - ScamSavvy", User: GetUserFromContext(r.Context())}
	if err := h.templates.ExecuteTemplate(w, "404.tmpl", data); err != nil {
		log.Printf("Error rendering 404 template: %v", err)
	}
}
