package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"scamsavvy/internal/models"
	"scamsavvy/internal/service"
	"scamsavvy/internal/validation"
)

// AdminHandler serves the content management pages
type AdminHandler struct {
	contentService *service.ContentService
	infoService    *service.InfoService
	middleware     *Middleware
	templates      *template.Template
	uploadMaxSize  int64
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(contentService *service.ContentService, infoService *service.InfoService, middleware *Middleware, templates *template.Template, uploadMaxSize int64) *AdminHandler {
	return &AdminHandler{
		contentService: contentService,
		infoService:    infoService,
		middleware:     middleware,
		templates:      templates,
		uploadMaxSize:  uploadMaxSize,
	}
}

// Dashboard renders the admin overview with all managed content
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	stats, err := h.contentService.ContentStats()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading content stats", err)
		return
	}

	realImages, err := h.contentService.ListImages(models.ImageTypeReal)
	if err != nil {
		log.Printf("Error listing real images: %v", err)
	}
	aiImages, err := h.contentService.ListImages(models.ImageTypeAI)
	if err != nil {
		log.Printf("Error listing ai images: %v", err)
	}
	questions, err := h.contentService.ListQuestions()
	if err != nil {
		log.Printf("Error listing questions: %v", err)
	}
	pages, _, err := h.infoService.ListPages(1)
	if err != nil {
		log.Printf("Error listing information pages: %v", err)
	}

	data := AdminViewData{
		BaseViewData: BaseViewData{Title: "Admin - ScamSavvy", User: user, CSRFToken: h.middleware.CSRFToken(r)},
		Stats:        stats,
		RealImages:   realImages,
		AIImages:     aiImages,
		Questions:    questions,
		Pages:        pages,
	}
	if err := h.templates.ExecuteTemplate(w, "admin_dashboard.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering admin dashboard", err)
	}
}

// UploadImage stores a new game image.
// POST /admin/images
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.uploadMaxSize); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageType := r.FormValue("type")
	description := r.FormValue("description")

	if _, err := h.contentService.AddImage(file, header, imageType, description); err != nil {
		respondWithError(w, http.StatusBadRequest, "Could not store the image", "Error adding image", err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteImage removes a game image.
// POST /admin/images/{id}/delete
func (h *AdminHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid image ID", http.StatusBadRequest)
		return
	}

	if err := h.contentService.RemoveImage(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting image", err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AddQuestion stores a new quiz question.
// POST /admin/questions
func (h *AdminHandler) AddQuestion(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	question := r.FormValue("question")
	options := []string{
		r.FormValue("option1"),
		r.FormValue("option2"),
		r.FormValue("option3"),
	}
	correctIndex, err := strconv.Atoi(r.FormValue("correctIndex"))
	if err != nil {
		http.Error(w, "Invalid correct answer index", http.StatusBadRequest)
		return
	}
	explanation := r.FormValue("explanation")

	if _, err := h.contentService.AddQuestion(question, options, correctIndex, explanation); err != nil {
		var validationErr validation.ValidationError
		if errors.As(err, &validationErr) {
			http.Error(w, validationErr.Message, http.StatusBadRequest)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding question", err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteQuestion removes a quiz question.
// POST /admin/questions/{id}/delete
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid question ID", http.StatusBadRequest)
		return
	}

	if err := h.contentService.RemoveQuestion(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting question", err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ShowInfoForm renders the information page editor, blank or pre-filled
func (h *AdminHandler) ShowInfoForm(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	data := AdminInfoFormViewData{
		BaseViewData: BaseViewData{Title: "Edit Information Page - ScamSavvy", User: user, CSRFToken: h.middleware.CSRFToken(r)},
	}

	if idStr := r.PathValue("id"); idStr != "" {
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid page ID", http.StatusBadRequest)
			return
		}
		content, err := h.infoService.GetPageByID(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error loading information page", err)
			return
		}
		if content == nil {
			http.NotFound(w, r)
			return
		}
		data.Content = content
	}

	if err := h.templates.ExecuteTemplate(w, "admin_info_form.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering info form", err)
	}
}

// SaveInfoPage creates or updates an information page.
// POST /admin/information and POST /admin/information/{id}
func (h *AdminHandler) SaveInfoPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	title := r.FormValue("title")
	slug := r.FormValue("slug")
	description := r.FormValue("description")
	body := r.FormValue("body")
	imageURL := r.FormValue("imageUrl")

	var err error
	if idStr := r.PathValue("id"); idStr != "" {
		var id int64
		id, err = strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid page ID", http.StatusBadRequest)
			return
		}
		err = h.infoService.UpdatePage(id, title, slug, description, body, imageURL)
	} else {
		_, err = h.infoService.CreatePage(title, slug, description, body, imageURL)
	}

	if err != nil {
		var validationErr validation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			http.Error(w, validationErr.Message, http.StatusBadRequest)
		case errors.Is(err, service.ErrSlugTaken):
			http.Error(w, "That slug is already in use", http.StatusBadRequest)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error saving information page", err)
		}
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteInfoPage removes an information page.
// POST /admin/information/{id}/delete
func (h *AdminHandler) DeleteInfoPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid page ID", http.StatusBadRequest)
		return
	}

	if err := h.infoService.DeletePage(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting information page", err)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}
