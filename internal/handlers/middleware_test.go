package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestFromGamePage(t *testing.T) {
	handler := FromGamePage(okHandler, RealVsAIPagePath, QuizPagePath)

	tests := []struct {
		name       string
		referer    string
		wantStatus int
	}{
		{"no referer", "", http.StatusNotFound},
		{"image game page", "http://localhost:8080/real-vs-ai-game", http.StatusOK},
		{"quiz page", "http://localhost:8080/have-i-been-scammed", http.StatusOK},
		{"other page", "http://localhost:8080/leaderboard", http.StatusNotFound},
		{"external site", "https://evil.example.com/real-vs-ai-game", http.StatusOK},
		{"prefix trick", "http://localhost:8080/real-vs-ai-gamer", http.StatusNotFound},
		{"unparseable referer", "http://bad host/x", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/image/real", nil)
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()

			handler(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("referer %q: status = %d, want %d", tt.referer, rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestAPIRejectsInvalidImageType(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/image/{type}", h.RandomImage)

	req := httptest.NewRequest(http.MethodGet, "/api/image/fake", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("invalid image type status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestSubmitScoreRequiresAuth(t *testing.T) {
	h := NewAPIHandler(nil, nil, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/score", nil)
	rec := httptest.NewRecorder()
	h.SubmitScore(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("guest score submission status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
