package service

import (
	"errors"
	"fmt"

	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/validation"
)

// InfoPagesPerPage is how many hub entries one listing page shows
const InfoPagesPerPage = 10

var ErrSlugTaken = errors.New("slug is already in use")

// InfoService manages the scam-awareness information hub
type InfoService struct {
	pages *repository.InfoRepository
}

// NewInfoService creates an information hub service
func NewInfoService(pages *repository.InfoRepository) *InfoService {
	return &InfoService{pages: pages}
}

// CreatePage validates and stores a new information page
func (s *InfoService) CreatePage(title, slug, description, body, imageURL string) (*models.InfoPage, error) {
	if err := validation.ValidateInfoPage(title, slug, description, body); err != nil {
		return nil, err
	}

	existing, err := s.pages.GetPageBySlug(slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	return s.pages.CreatePage(title, slug, description, body, imageURL)
}

// UpdatePage validates and applies changes to an existing page
func (s *InfoService) UpdatePage(id int64, title, slug, description, body, imageURL string) error {
	if err := validation.ValidateInfoPage(title, slug, description, body); err != nil {
		return err
	}

	existing, err := s.pages.GetPageBySlug(slug)
	if err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if existing != nil && existing.ID != id {
		return ErrSlugTaken
	}

	return s.pages.UpdatePage(id, title, slug, description, body, imageURL)
}

// DeletePage removes a page
func (s *InfoService) DeletePage(id int64) error {
	return s.pages.DeletePage(id)
}

// GetPage returns the page with the given slug, or nil
func (s *InfoService) GetPage(slug string) (*models.InfoPage, error) {
	return s.pages.GetPageBySlug(slug)
}

// GetPageByID returns the page with the given ID, or nil
func (s *InfoService) GetPageByID(id int64) (*models.InfoPage, error) {
	return s.pages.GetPageByID(id)
}

// ListPages returns one listing page of hub entries plus the total page count
func (s *InfoService) ListPages(page int) ([]*models.InfoPage, int, error) {
	entries, err := s.pages.ListPages(page, InfoPagesPerPage)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.pages.CountPages()
	if err != nil {
		return nil, 0, err
	}

	totalPages := (total + InfoPagesPerPage - 1) / InfoPagesPerPage
	if totalPages == 0 {
		totalPages = 1
	}
	return entries, totalPages, nil
}
