package repository

import (
	"database/sql"
	"fmt"

	"scamsavvy/internal/database"
	"scamsavvy/internal/models"
)

// InfoRepository handles database operations for information pages
type InfoRepository struct {
	db *database.DB
}

// NewInfoRepository creates a new information page repository
func NewInfoRepository(db *database.DB) *InfoRepository {
	return &InfoRepository{db: db}
}

const infoColumns = `id, title, slug, description, body, COALESCE(image_url, ''), created_at, updated_at`

func scanInfoPage(row *sql.Row) (*models.InfoPage, error) {
	page := &models.InfoPage{}
	err := row.Scan(
		&page.ID,
		&page.Title,
		&page.Slug,
		&page.Description,
		&page.Body,
		&page.ImageURL,
		&page.CreatedAt,
		&page.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan information page: %w", err)
	}
	return page, nil
}

// CreatePage inserts a new information page
func (r *InfoRepository) CreatePage(title, slug, description, body, imageURL string) (*models.InfoPage, error) {
	query := `
		INSERT INTO information (title, slug, description, body, image_url)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, title, slug, description, body, imageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create information page: %w", err)
	}

	return &models.InfoPage{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: description,
		Body:        body,
		ImageURL:    imageURL,
	}, nil
}

// GetPageBySlug retrieves an information page by its slug, or nil if absent
func (r *InfoRepository) GetPageBySlug(slug string) (*models.InfoPage, error) {
	query := "SELECT " + infoColumns + " FROM information WHERE slug = ?"
	return scanInfoPage(r.db.QueryRow(query, slug))
}

// GetPageByID retrieves an information page by ID, or nil if absent
func (r *InfoRepository) GetPageByID(id int64) (*models.InfoPage, error) {
	query := "SELECT " + infoColumns + " FROM information WHERE id = ?"
	return scanInfoPage(r.db.QueryRow(query, id))
}

// ListPages returns one page of information entries, newest first
func (r *InfoRepository) ListPages(page, perPage int) ([]*models.InfoPage, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * perPage

	query := "SELECT " + infoColumns + ` FROM information
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	rows, err := r.db.Query(query, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list information pages: %w", err)
	}
	defer rows.Close()

	var pages []*models.InfoPage
	for rows.Next() {
		p := &models.InfoPage{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.Body, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan information page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// CountPages returns the total number of information pages
func (r *InfoRepository) CountPages() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM information").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count information pages: %w", err)
	}
	return count, nil
}

// UpdatePage updates an existing information page
func (r *InfoRepository) UpdatePage(id int64, title, slug, description, body, imageURL string) error {
	query := `
		UPDATE information
		SET title = ?, slug = ?, description = ?, body = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, title, slug, description, body, imageURL, id)
	if err != nil {
		return fmt.Errorf("failed to update information page: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("information page not found")
	}
	return nil
}

// DeletePage removes an information page by ID
func (r *InfoRepository) DeletePage(id int64) error {
	if _, err := r.db.Exec("DELETE FROM information WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete information page: %w", err)
	}
	return nil
}
