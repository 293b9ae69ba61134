package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"scamsavvy/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Images     []ImageBackup    `json:"images"`
	Questions  []QuestionBackup `json:"questions"`
	Scores     []ScoreBackup    `json:"scores"`
	InfoPages  []InfoBackup     `json:"information"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"password_hash"`
	Role            string    `json:"role"`
	OAuthProvider   string    `json:"oauth_provider"`
	OAuthSubject    string    `json:"oauth_subject"`
	ProfileImageURL string    `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// ImageBackup represents a game image record for backup
type ImageBackup struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// QuestionBackup represents a quiz question record for backup
type QuestionBackup struct {
	ID           int64     `json:"id"`
	Question     string    `json:"question"`
	Options      []string  `json:"options"`
	CorrectIndex int       `json:"correct_index"`
	Explanation  string    `json:"explanation"`
	CreatedAt    time.Time `json:"created_at"`
}

// ScoreBackup represents a score record for backup
type ScoreBackup struct {
	UserID    int64     `json:"user_id"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	Time      string    `json:"time"`
	Game      string    `json:"game"`
	CreatedAt time.Time `json:"created_at"`
}

// InfoBackup represents an information page record for backup
type InfoBackup struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Body        string    `json:"body"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportImages(backup); err != nil {
		return fmt.Errorf("failed to export images: %w", err)
	}
	if err := s.exportQuestions(backup); err != nil {
		return fmt.Errorf("failed to export questions: %w", err)
	}
	if err := s.exportScores(backup); err != nil {
		return fmt.Errorf("failed to export scores: %w", err)
	}
	if err := s.exportInfoPages(backup); err != nil {
		return fmt.Errorf("failed to export information pages: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d images, %d questions, %d scores, %d information pages",
		len(backup.Users), len(backup.Images), len(backup.Questions),
		len(backup.Scores), len(backup.InfoPages))

	return nil
}

// Import restores a database from a backup file. Records are merged by
// natural key; users keep their original IDs so score ownership survives.
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var backup BackupData
	if err := json.NewDecoder(file).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	if err := s.importUsers(&backup); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importImages(&backup); err != nil {
		return fmt.Errorf("failed to import images: %w", err)
	}
	if err := s.importQuestions(&backup); err != nil {
		return fmt.Errorf("failed to import questions: %w", err)
	}
	if err := s.importScores(&backup); err != nil {
		return fmt.Errorf("failed to import scores: %w", err)
	}
	if err := s.importInfoPages(&backup); err != nil {
		return fmt.Errorf("failed to import information pages: %w", err)
	}

	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, username, email, password_hash, role,
			COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''),
			COALESCE(profile_image_url, ''), created_at
		FROM users ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&u.OAuthProvider, &u.OAuthSubject, &u.ProfileImageURL, &u.CreatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportImages(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, url, type, COALESCE(description, ''), created_at
		FROM images ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var img ImageBackup
		if err := rows.Scan(&img.ID, &img.URL, &img.Type, &img.Description, &img.CreatedAt); err != nil {
			return err
		}
		backup.Images = append(backup.Images, img)
	}
	return rows.Err()
}

func (s *BackupService) exportQuestions(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, question, options_json, correct_index, explanation, created_at
		FROM questions ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var q QuestionBackup
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.Question, &optionsJSON, &q.CorrectIndex, &q.Explanation, &q.CreatedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return fmt.Errorf("failed to decode options for question %d: %w", q.ID, err)
		}
		backup.Questions = append(backup.Questions, q)
	}
	return rows.Err()
}

func (s *BackupService) exportScores(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT user_id, score, total, time, game, created_at
		FROM scores ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sc ScoreBackup
		if err := rows.Scan(&sc.UserID, &sc.Score, &sc.Total, &sc.Time, &sc.Game, &sc.CreatedAt); err != nil {
			return err
		}
		backup.Scores = append(backup.Scores, sc)
	}
	return rows.Err()
}

func (s *BackupService) exportInfoPages(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, title, slug, description, body, COALESCE(image_url, ''), created_at
		FROM information ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var p InfoBackup
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return err
		}
		backup.InfoPages = append(backup.InfoPages, p)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(backup *BackupData) error {
	for _, u := range backup.Users {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", u.Email).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Skipping existing user: %s", u.Email)
			continue
		}

		provider := nullable(u.OAuthProvider)
		subject := nullable(u.OAuthSubject)
		profileImage := nullable(u.ProfileImageURL)
		_, err := s.db.Exec(`
			INSERT INTO users (id, username, email, password_hash, role,
				oauth_provider, oauth_subject, profile_image_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Username, u.Email, u.PasswordHash, u.Role,
			provider, subject, profileImage, u.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.Email, err)
		}
	}
	log.Printf("Imported %d users", len(backup.Users))
	return nil
}

func (s *BackupService) importImages(backup *BackupData) error {
	for _, img := range backup.Images {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM images WHERE url = ?", img.URL).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		_, err := s.db.Exec(`
			INSERT INTO images (url, type, description, created_at)
			VALUES (?, ?, ?, ?)`,
			img.URL, img.Type, nullable(img.Description), img.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import image %s: %w", img.URL, err)
		}
	}
	log.Printf("Imported %d images", len(backup.Images))
	return nil
}

func (s *BackupService) importQuestions(backup *BackupData) error {
	for _, q := range backup.Questions {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM questions WHERE question = ?", q.Question).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		optionsJSON, err := json.Marshal(q.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options for question %d: %w", q.ID, err)
		}
		_, err = s.db.Exec(`
			INSERT INTO questions (question, options_json, correct_index, explanation, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			q.Question, string(optionsJSON), q.CorrectIndex, q.Explanation, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import question %d: %w", q.ID, err)
		}
	}
	log.Printf("Imported %d questions", len(backup.Questions))
	return nil
}

func (s *BackupService) importScores(backup *BackupData) error {
	for _, sc := range backup.Scores {
		_, err := s.db.Exec(`
			INSERT INTO scores (user_id, score, total, time, game, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			sc.UserID, sc.Score, sc.Total, sc.Time, sc.Game, sc.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import score for user %d: %w", sc.UserID, err)
		}
	}
	log.Printf("Imported %d scores", len(backup.Scores))
	return nil
}

func (s *BackupService) importInfoPages(backup *BackupData) error {
	for _, p := range backup.InfoPages {
		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM information WHERE slug = ?", p.Slug).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			log.Printf("Skipping existing information page: %s", p.Slug)
			continue
		}

		_, err := s.db.Exec(`
			INSERT INTO information (title, slug, description, body, image_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			p.Title, p.Slug, p.Description, p.Body, nullable(p.ImageURL), p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import information page %s: %w", p.Slug, err)
		}
	}
	log.Printf("Imported %d information pages", len(backup.InfoPages))
	return nil
}

// nullable maps empty strings to NULL for optional columns
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
