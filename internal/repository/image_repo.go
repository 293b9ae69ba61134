package repository

import (
	"database/sql"
	"fmt"

	"scamsavvy/internal/database"
	"scamsavvy/internal/models"
)

// ImageRepository handles database operations for game images
type ImageRepository struct {
	db *database.DB
}

// NewImageRepository creates a new image repository
func NewImageRepository(db *database.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// GetRandomImage returns a random image of the given type, or nil if none exist
func (r *ImageRepository) GetRandomImage(imageType string) (*models.GameImage, error) {
	query := `
		SELECT id, url, type, COALESCE(description, ''), created_at
		FROM images
		WHERE type = ?
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT 1
	`
	img := &models.GameImage{}
	err := r.db.QueryRow(query, imageType).Scan(
		&img.ID,
		&img.URL,
		&img.Type,
		&img.Description,
		&img.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get random image: %w", err)
	}
	return img, nil
}

// CreateImage inserts a new game image
func (r *ImageRepository) CreateImage(url, imageType, description string) (*models.GameImage, error) {
	query := "INSERT INTO images (url, type, description) VALUES (?, ?, ?)"
	id, err := r.db.ExecReturningID(query, url, imageType, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create image: %w", err)
	}
	return &models.GameImage{ID: id, URL: url, Type: imageType, Description: description}, nil
}

// CountImages returns the number of stored images of the given type
func (r *ImageRepository) CountImages(imageType string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM images WHERE type = ?", imageType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count images: %w", err)
	}
	return count, nil
}

// ListImages returns all images of the given type, newest first
func (r *ImageRepository) ListImages(imageType string) ([]*models.GameImage, error) {
	query := `
		SELECT id, url, type, COALESCE(description, ''), created_at
		FROM images
		WHERE type = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, imageType)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	var images []*models.GameImage
	for rows.Next() {
		img := &models.GameImage{}
		if err := rows.Scan(&img.ID, &img.URL, &img.Type, &img.Description, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// DeleteImage removes an image by ID and returns its URL so the caller
// can remove the underlying file
func (r *ImageRepository) DeleteImage(id int64) (string, error) {
	var url string
	err := r.db.QueryRow("SELECT url FROM images WHERE id = ?", id).Scan(&url)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("image not found")
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up image: %w", err)
	}

	if _, err := r.db.Exec("DELETE FROM images WHERE id = ?", id); err != nil {
		return "", fmt.Errorf("failed to delete image: %w", err)
	}
	return url, nil
}
