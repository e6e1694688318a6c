package auth

import (
	"errors"

	"gorm.io/gorm"

	"quizapp/internal/models"
)

// UserRepository is the credential store contract. FindByUsername returns
// (nil, nil) when no such user exists.
type UserRepository interface {
	FindByUsername(username string) (*models.User, error)
	Create(user *models.User) error
	CountByRole(role string) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) CountByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
