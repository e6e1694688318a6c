package auth

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"quizapp/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidRole        = errors.New("invalid role")
)

type Service struct {
	repo   UserRepository
	tokens *TokenService
}

func NewService(repo UserRepository, tokens *TokenService) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login checks the submitted credentials and issues a bearer token. Unknown
// users and wrong passwords produce the same error so callers cannot probe
// which usernames exist.
func (s *Service) Login(username, password string) (*models.AuthResponse, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	role := user.Role
	if role == "" {
		role = models.RoleStudent
	}

	token, err := s.tokens.Generate(user.Username, role)
	if err != nil {
		return nil, err
	}

	logrus.WithField("username", user.Username).Info("user logged in")
	return &models.AuthResponse{Token: token, Role: role}, nil
}

func (s *Service) Register(username, password, role string) error {
	normalized, err := normalizeRole(role)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Username: username,
		Password: string(hashed),
		Role:     normalized,
	}
	if err := s.repo.Create(user); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"username": username,
		"role":     normalized,
	}).Info("user registered")
	return nil
}

// normalizeRole defaults a blank role to STUDENT and rejects anything that
// is not a known role instead of persisting it verbatim.
func normalizeRole(role string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(role)) {
	case "":
		return models.RoleStudent, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	case models.RoleStudent:
		return models.RoleStudent, nil
	default:
		return "", ErrInvalidRole
	}
}
