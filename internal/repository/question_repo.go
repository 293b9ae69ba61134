package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"scamsavvy/internal/database"
	"scamsavvy/internal/models"
)

// QuestionRepository handles database operations for quiz questions
type QuestionRepository struct {
	db *database.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *database.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetRandomQuestion returns a random quiz question, or nil if none exist
func (r *QuestionRepository) GetRandomQuestion() (*models.QuizQuestion, error) {
	query := `
		SELECT id, question, options_json, correct_index, explanation, created_at
		FROM questions
		ORDER BY ` + r.db.Dialect.RandomFunc() + `
		LIMIT 1
	`
	return r.scanQuestion(r.db.QueryRow(query))
}

// GetQuestionByID retrieves a question by ID
func (r *QuestionRepository) GetQuestionByID(id int64) (*models.QuizQuestion, error) {
	query := `
		SELECT id, question, options_json, correct_index, explanation, created_at
		FROM questions
		WHERE id = ?
	`
	return r.scanQuestion(r.db.QueryRow(query, id))
}

func (r *QuestionRepository) scanQuestion(row *sql.Row) (*models.QuizQuestion, error) {
	q := &models.QuizQuestion{}
	var optionsJSON string
	err := row.Scan(&q.ID, &q.Question, &optionsJSON, &q.CorrectIndex, &q.Explanation, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan question: %w", err)
	}
	if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
		return nil, fmt.Errorf("failed to decode question options: %w", err)
	}
	return q, nil
}

// CreateQuestion inserts a new quiz question
func (r *QuestionRepository) CreateQuestion(question string, options []string, correctIndex int, explanation string) (*models.QuizQuestion, error) {
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode question options: %w", err)
	}

	query := `
		INSERT INTO questions (question, options_json, correct_index, explanation)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, question, string(optionsJSON), correctIndex, explanation)
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	return &models.QuizQuestion{
		ID:           id,
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		Explanation:  explanation,
	}, nil
}

// CountQuestions returns the number of stored quiz questions
func (r *QuestionRepository) CountQuestions() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// ListQuestions returns all quiz questions, newest first
func (r *QuestionRepository) ListQuestions() ([]*models.QuizQuestion, error) {
	query := `
		SELECT id, question, options_json, correct_index, explanation, created_at
		FROM questions
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.QuizQuestion
	for rows.Next() {
		q := &models.QuizQuestion{}
		var optionsJSON string
		if err := rows.Scan(&q.ID, &q.Question, &optionsJSON, &q.CorrectIndex, &q.Explanation, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &q.Options); err != nil {
			return nil, fmt.Errorf("failed to decode question options: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// DeleteQuestion removes a question by ID
func (r *QuestionRepository) DeleteQuestion(id int64) error {
	if _, err := r.db.Exec("DELETE FROM questions WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	return nil
}
