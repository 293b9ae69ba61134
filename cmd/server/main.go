package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"scamsavvy/internal/ai"
	"scamsavvy/internal/config"
	"scamsavvy/internal/database"
	"scamsavvy/internal/game"
	"scamsavvy/internal/handlers"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/security"
	"scamsavvy/internal/service"
	"scamsavvy/internal/storage"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Upload storage
	uploads, err := storage.NewUploadStore(cfg.UploadsPath, "/uploads", cfg.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize upload store: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	infoRepo := repository.NewInfoRepository(db)

	// Email delivery is optional; without a sender reset links are logged
	var emailSender service.EmailSender
	if cfg.SESFromEmail != "" {
		sesSender, err := service.NewSESEmailSender(context.Background(), cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
		if err != nil {
			log.Fatalf("Failed to initialize SES: %v", err)
		}
		emailSender = sesSender
	} else {
		log.Println("SES_FROM_EMAIL not set, password reset links will be logged")
	}

	// Initialize services
	resetTokens := security.NewResetTokenIssuer(cfg.ResetTokenSecret, time.Hour)
	authService := service.NewAuthService(userRepo, resetTokens, emailSender, cfg.SessionDuration, cfg.AppBaseURL)
	scoreService := service.NewScoreService(scoreRepo)
	infoService := service.NewInfoService(infoRepo)
	contentService := service.NewContentService(imageRepo, questionRepo, uploads)
	googleOAuth := service.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.AppBaseURL+"/auth/google/callback")
	if googleOAuth == nil {
		log.Println("GOOGLE_CLIENT_ID not set, Google sign-in disabled")
	}

	aiClient := ai.NewClient(cfg.CompletionBaseURL, cfg.CompletionAPIKey, cfg.CompletionModel)

	// Game sessions stay registered slightly past the wall-clock budget so
	// the final redirect still finds them
	gameManager := game.NewManager(game.GameDuration + time.Minute)

	// Initialize handlers
	limiter := security.NewRateLimiter(20, time.Minute)
	csrf := security.NewCSRFGenerator(cfg.CSRFSecret)
	middleware := handlers.NewMiddleware(authService, limiter, csrf)
	authHandler := handlers.NewAuthHandler(authService, templates)
	oauthHandler := handlers.NewOAuthHandler(authService, googleOAuth)
	pageHandler := handlers.NewPageHandler(scoreService, infoService, userRepo, uploads, middleware, templates, cfg.UploadMaxSize)
	gameHandler := handlers.NewGameHandler(gameManager, imageRepo, questionRepo, scoreService, aiClient, templates)
	apiHandler := handlers.NewAPIHandler(imageRepo, questionRepo, scoreService, aiClient)
	adminHandler := handlers.NewAdminHandler(contentService, infoService, middleware, templates, cfg.UploadMaxSize)

	// Setup routes
	mux := http.NewServeMux()

	// Static files and uploads
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsPath))))
	mux.Handle("GET /icons/", http.StripPrefix("/icons/", http.FileServer(http.Dir(filepath.Join(cfg.StaticFilesPath, "icons")))))
	mux.HandleFunc("GET /placeholder.png", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(cfg.StaticFilesPath, "placeholder.png"))
	})

	// Public pages
	mux.HandleFunc("GET /", middleware.WithUser(pageHandler.Home))
	mux.HandleFunc("GET /games", middleware.WithUser(pageHandler.Games))
	mux.HandleFunc("GET /about", middleware.WithUser(pageHandler.About))
	mux.HandleFunc("GET /leaderboard", middleware.WithUser(pageHandler.Leaderboard))
	mux.HandleFunc("GET /information", middleware.WithUser(pageHandler.InformationList))
	mux.HandleFunc("GET /information/{slug}", middleware.WithUser(pageHandler.InformationPage))

	// Auth
	mux.HandleFunc("GET /login", middleware.WithUser(authHandler.ShowLogin))
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", middleware.WithUser(authHandler.ShowRegister))
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /reset-password", middleware.RateLimit(authHandler.ResetPassword))
	mux.HandleFunc("GET /auth/google", oauthHandler.GoogleLogin)
	mux.HandleFunc("GET /auth/google/callback", oauthHandler.GoogleCallback)

	// Account
	mux.HandleFunc("GET /account", middleware.RequireAuth(pageHandler.Account))
	mux.HandleFunc("POST /account/update", middleware.RequireAuth(middleware.CSRFProtect(pageHandler.UpdateAccount)))

	// Game pages and play actions
	mux.HandleFunc("GET "+handlers.RealVsAIPagePath, middleware.WithUser(gameHandler.ShowRealVsAI))
	mux.HandleFunc("GET "+handlers.QuizPagePath, middleware.WithUser(gameHandler.ShowQuiz))
	mux.HandleFunc("POST "+handlers.RealVsAIPagePath+"/start", middleware.WithUser(gameHandler.StartRealVsAI))
	mux.HandleFunc("POST "+handlers.QuizPagePath+"/start", middleware.WithUser(gameHandler.StartQuiz))
	mux.HandleFunc("POST /play/submit", gameHandler.SubmitAnswer)
	mux.HandleFunc("POST /play/next", gameHandler.NextRound)
	mux.HandleFunc("POST /play/quit", gameHandler.QuitGame)
	mux.HandleFunc("GET /play/hint", gameHandler.RoundHint)

	// Game-facing JSON API, only reachable from the game pages
	mux.HandleFunc("GET /api/image/{type}", handlers.FromGamePage(apiHandler.RandomImage, handlers.RealVsAIPagePath))
	mux.HandleFunc("GET /api/scam-quiz", handlers.FromGamePage(apiHandler.RandomQuestion, handlers.QuizPagePath))
	mux.HandleFunc("GET /api/hint/{description}", handlers.FromGamePage(apiHandler.Hint, handlers.RealVsAIPagePath))
	mux.HandleFunc("GET /api/joke", apiHandler.Joke)
	mux.HandleFunc("POST /api/score", middleware.WithUser(apiHandler.SubmitScore))

	// Admin
	mux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("POST /admin/images", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.UploadImage)))
	mux.HandleFunc("POST /admin/images/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteImage)))
	mux.HandleFunc("POST /admin/questions", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.AddQuestion)))
	mux.HandleFunc("POST /admin/questions/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteQuestion)))
	mux.HandleFunc("GET /admin/information/new", middleware.RequireAdmin(adminHandler.ShowInfoForm))
	mux.HandleFunc("GET /admin/information/{id}/edit", middleware.RequireAdmin(adminHandler.ShowInfoForm))
	mux.HandleFunc("POST /admin/information", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SaveInfoPage)))
	mux.HandleFunc("POST /admin/information/{id}", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.SaveInfoPage)))
	mux.HandleFunc("POST /admin/information/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteInfoPage)))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background session cleanup
	go cleanupExpiredSessions(authService, userRepo)

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	patterns := []string{
		filepath.Join(templatesPath, "*.tmpl"),
		filepath.Join(templatesPath, "admin/*.tmpl"),
	}

	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesPath)
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// cleanupExpiredSessions periodically removes expired sessions and old
// used reset tokens
func cleanupExpiredSessions(authService *service.AuthService, users *repository.UserRepository) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		} else {
			log.Println("Expired sessions cleaned up")
		}

		if err := users.DeleteOldResetTokens(time.Now().Add(-24 * time.Hour)); err != nil {
			log.Printf("Error pruning used reset tokens: %v", err)
		}
	}
}
