package service

import (
	"fmt"
	"log"
	"mime/multipart"

	"scamsavvy/internal/models"
	"scamsavvy/internal/repository"
	"scamsavvy/internal/storage"
	"scamsavvy/internal/validation"
)

// ContentService manages the game's image bank and quiz question bank
type ContentService struct {
	images    *repository.ImageRepository
	questions *repository.QuestionRepository
	uploads   *storage.UploadStore
}

// NewContentService creates a content service
func NewContentService(images *repository.ImageRepository, questions *repository.QuestionRepository, uploads *storage.UploadStore) *ContentService {
	return &ContentService{images: images, questions: questions, uploads: uploads}
}

// AddImage stores an uploaded image file and registers it for the game
func (s *ContentService) AddImage(file multipart.File, header *multipart.FileHeader, imageType, description string) (*models.GameImage, error) {
	if !models.ValidImageType(imageType) {
		return nil, fmt.Errorf("invalid image type: %s", imageType)
	}

	url, err := s.uploads.Save(file, header)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	img, err := s.images.CreateImage(url, imageType, description)
	if err != nil {
		if removeErr := s.uploads.Delete(url); removeErr != nil {
			log.Printf("failed to clean up orphaned upload %s: %v", url, removeErr)
		}
		return nil, fmt.Errorf("failed to register image: %w", err)
	}
	return img, nil
}

// RemoveImage deletes an image record and its stored file
func (s *ContentService) RemoveImage(id int64) error {
	url, err := s.images.DeleteImage(id)
	if err != nil {
		return err
	}
	if err := s.uploads.Delete(url); err != nil {
		log.Printf("failed to remove image file %s: %v", url, err)
	}
	return nil
}

// ListImages returns all stored images of a type
func (s *ContentService) ListImages(imageType string) ([]*models.GameImage, error) {
	if !models.ValidImageType(imageType) {
		return nil, fmt.Errorf("invalid image type: %s", imageType)
	}
	return s.images.ListImages(imageType)
}

// AddQuestion validates and stores a new quiz question
func (s *ContentService) AddQuestion(question string, options []string, correctIndex int, explanation string) (*models.QuizQuestion, error) {
	if err := validation.ValidateQuizQuestion(question, options, correctIndex, explanation); err != nil {
		return nil, err
	}
	return s.questions.CreateQuestion(question, options, correctIndex, explanation)
}

// RemoveQuestion deletes a quiz question
func (s *ContentService) RemoveQuestion(id int64) error {
	return s.questions.DeleteQuestion(id)
}

// ListQuestions returns the whole question bank
func (s *ContentService) ListQuestions() ([]*models.QuizQuestion, error) {
	return s.questions.ListQuestions()
}

// Stats summarizes stored content for the admin dashboard
type Stats struct {
	RealImages int
	AIImages   int
	Questions  int
}

// ContentStats counts the stored images and questions
func (s *ContentService) ContentStats() (Stats, error) {
	realCount, err := s.images.CountImages(models.ImageTypeReal)
	if err != nil {
		return Stats{}, err
	}
	aiCount, err := s.images.CountImages(models.ImageTypeAI)
	if err != nil {
		return Stats{}, err
	}
	questionCount, err := s.questions.CountQuestions()
	if err != nil {
		return Stats{}, err
	}
	return Stats{RealImages: realCount, AIImages: aiCount, Questions: questionCount}, nil
}
