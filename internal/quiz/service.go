package quiz

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"quizapp/internal/auth"
	"quizapp/internal/models"
)

var (
	ErrQuizNotFound = errors.New("quiz not found")
	ErrInvalidQuiz  = errors.New("invalid quiz payload")
	ErrForbidden    = errors.New("admin role required")
)

type Service struct {
	repo     QuizRepository
	validate *validator.Validate
}

func NewService(repo QuizRepository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
	}
}

// CreateFullQuiz persists a quiz together with its full question set.
// Authoring is an admin capability; the check lives here so it holds no
// matter how the routes are wired. Any malformed question fails the whole
// creation.
func (s *Service) CreateFullQuiz(req *models.CreateQuizRequest, requester *auth.Claims) (uint, error) {
	if requester == nil || requester.Role != models.RoleAdmin {
		return 0, ErrForbidden
	}

	if err := s.validate.Struct(req); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidQuiz, err)
	}

	quiz := &models.Quiz{
		Title:     req.Title,
		Category:  req.Category,
		Questions: make([]models.Question, len(req.Questions)),
	}
	for i, q := range req.Questions {
		quiz.Questions[i] = models.Question{
			Text:     q.Text,
			Options:  models.EncodeOptions(q.Options),
			Answer:   q.Answer,
			Position: i,
		}
	}

	if err := s.repo.Create(quiz); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{
		"quiz_id":   quiz.ID,
		"questions": len(quiz.Questions),
		"author":    requester.Subject,
	}).Info("quiz created")
	return quiz.ID, nil
}

func (s *Service) GetAllQuizzes() ([]models.Quiz, error) {
	return s.repo.FindAll()
}

// GetQuizQuestions returns the quiz's questions in authoring order with the
// answer stripped.
func (s *Service) GetQuizQuestions(id uint) ([]models.QuestionWrapper, error) {
	quiz, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	wrappers := make([]models.QuestionWrapper, len(quiz.Questions))
	for i, q := range quiz.Questions {
		wrappers[i] = q.Wrapper()
	}
	return wrappers, nil
}

// CalculateResult counts exact-match correct answers. Responses that point
// at questions outside the quiz are skipped, not rejected, and a question
// scores at most once no matter how often it appears. Pure read; no state
// is recorded.
func (s *Service) CalculateResult(id uint, responses []models.Response) (int, error) {
	quiz, err := s.repo.FindByID(id)
	if err != nil {
		return 0, err
	}
	if quiz == nil {
		return 0, ErrQuizNotFound
	}

	answers := make(map[uint]string, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers[q.ID] = q.Answer
	}

	score := 0
	counted := make(map[uint]bool)
	for _, resp := range responses {
		correct, ok := answers[resp.QuestionID]
		if !ok || counted[resp.QuestionID] {
			continue
		}
		if resp.Answer == correct {
			score++
			counted[resp.QuestionID] = true
		}
	}
	return score, nil
}
