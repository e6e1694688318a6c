package quiz

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"quizapp/internal/auth"
	"quizapp/internal/models"
)

type QuizService interface {
	CreateFullQuiz(req *models.CreateQuizRequest, requester *auth.Claims) (uint, error)
	GetAllQuizzes() ([]models.Quiz, error)
	GetQuizQuestions(id uint) ([]models.QuestionWrapper, error)
	CalculateResult(id uint, responses []models.Response) (int, error)
}

type Handler struct {
	service QuizService
}

func NewHandler(service QuizService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.service.GetAllQuizzes()
	if err != nil {
		logrus.WithError(err).Error("listing quizzes failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(quizzes)
}

func (h *Handler) CreateFullQuiz(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if _, err := h.service.CreateFullQuiz(&req, claims); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			http.Error(w, "Admin role required", http.StatusForbidden)
		case errors.Is(err, ErrInvalidQuiz):
			http.Error(w, "Invalid quiz payload", http.StatusBadRequest)
		default:
			logrus.WithError(err).Error("quiz creation failed")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	fmt.Fprint(w, "Quiz created successfully")
}

func (h *Handler) GetQuizQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := quizID(r)
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	questions, err := h.service.GetQuizQuestions(id)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("fetching quiz questions failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(questions)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := quizID(r)
	if err != nil {
		http.Error(w, "Invalid quiz id", http.StatusBadRequest)
		return
	}

	var responses []models.Response
	if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	score, err := h.service.CalculateResult(id, responses)
	if err != nil {
		if errors.Is(err, ErrQuizNotFound) {
			http.Error(w, "Quiz not found", http.StatusNotFound)
			return
		}
		logrus.WithError(err).Error("scoring quiz failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(score)
}

func quizID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
