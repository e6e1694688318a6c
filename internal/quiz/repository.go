package quiz

import (
	"errors"

	"gorm.io/gorm"

	"quizapp/internal/models"
)

// QuizRepository is the quiz store contract. FindByID returns (nil, nil)
// when no such quiz exists.
type QuizRepository interface {
	Create(quiz *models.Quiz) error
	FindAll() ([]models.Quiz, error)
	FindByID(id uint) (*models.Quiz, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

// Create inserts the quiz and all of its questions as one transaction.
func (r *quizRepository) Create(quiz *models.Quiz) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
}

// FindAll returns quiz metadata only; questions are not loaded for the list
// view.
func (r *quizRepository) FindAll() ([]models.Quiz, error) {
	var quizzes []models.Quiz
	if err := r.db.Order("created_at DESC").Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) FindByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}
