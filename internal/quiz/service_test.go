package quiz

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"quizapp/internal/auth"
	"quizapp/internal/models"
)

type fakeQuizRepo struct {
	quizzes map[uint]*models.Quiz
	nextID  uint
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[uint]*models.Quiz), nextID: 1}
}

func (f *fakeQuizRepo) Create(quiz *models.Quiz) error {
	quiz.ID = f.nextID
	f.nextID++
	for i := range quiz.Questions {
		quiz.Questions[i].ID = f.nextID
		quiz.Questions[i].QuizID = quiz.ID
		f.nextID++
	}
	f.quizzes[quiz.ID] = quiz
	return nil
}

func (f *fakeQuizRepo) FindAll() ([]models.Quiz, error) {
	all := make([]models.Quiz, 0, len(f.quizzes))
	for _, quiz := range f.quizzes {
		q := *quiz
		q.Questions = nil
		all = append(all, q)
	}
	return all, nil
}

func (f *fakeQuizRepo) FindByID(id uint) (*models.Quiz, error) {
	return f.quizzes[id], nil
}

func claimsFor(username, role string) *auth.Claims {
	return &auth.Claims{
		Role:             role,
		RegisteredClaims: jwt.RegisteredClaims{Subject: username},
	}
}

func seedQuiz(t *testing.T, service *Service) uint {
	t.Helper()

	id, err := service.CreateFullQuiz(&models.CreateQuizRequest{
		Title:    "Capitals",
		Category: "Geography",
		Questions: []models.CreateQuestionRequest{
			{Text: "Capital of France?", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, Answer: "Paris"},
			{Text: "Answer to everything?", Options: []string{"7", "42"}, Answer: "42"},
		},
	}, claimsFor("root", models.RoleAdmin))
	if err != nil {
		t.Fatalf("CreateFullQuiz failed: %v", err)
	}
	return id
}

func TestCreateFullQuiz(t *testing.T) {
	t.Run("RequiresAdmin", func(t *testing.T) {
		service := NewService(newFakeQuizRepo())

		req := &models.CreateQuizRequest{Title: "t", Category: "c"}
		if _, err := service.CreateFullQuiz(req, claimsFor("alice", models.RoleStudent)); !errors.Is(err, ErrForbidden) {
			t.Errorf("student err = %v, want ErrForbidden", err)
		}
		if _, err := service.CreateFullQuiz(req, nil); !errors.Is(err, ErrForbidden) {
			t.Errorf("nil requester err = %v, want ErrForbidden", err)
		}
	})

	t.Run("MalformedQuestionFailsWholeCreation", func(t *testing.T) {
		repo := newFakeQuizRepo()
		service := NewService(repo)

		reqs := []*models.CreateQuizRequest{
			{Title: "", Category: "c"},
			{Title: "t", Category: "c", Questions: []models.CreateQuestionRequest{
				{Text: "", Options: []string{"a", "b"}, Answer: "a"},
			}},
			{Title: "t", Category: "c", Questions: []models.CreateQuestionRequest{
				{Text: "q", Options: []string{"only-one"}, Answer: "only-one"},
			}},
			{Title: "t", Category: "c", Questions: []models.CreateQuestionRequest{
				{Text: "ok", Options: []string{"a", "b"}, Answer: "a"},
				{Text: "bad", Options: []string{"a", "b"}, Answer: ""},
			}},
		}
		for _, req := range reqs {
			if _, err := service.CreateFullQuiz(req, claimsFor("root", models.RoleAdmin)); !errors.Is(err, ErrInvalidQuiz) {
				t.Errorf("err = %v, want ErrInvalidQuiz for %+v", err, req)
			}
		}
		if len(repo.quizzes) != 0 {
			t.Errorf("%d quizzes persisted, want none", len(repo.quizzes))
		}
	})

	t.Run("EmptyQuestionListIsValid", func(t *testing.T) {
		service := NewService(newFakeQuizRepo())

		id, err := service.CreateFullQuiz(&models.CreateQuizRequest{
			Title:    "Empty",
			Category: "Misc",
		}, claimsFor("root", models.RoleAdmin))
		if err != nil {
			t.Fatalf("CreateFullQuiz failed: %v", err)
		}

		questions, err := service.GetQuizQuestions(id)
		if err != nil {
			t.Fatalf("GetQuizQuestions failed: %v", err)
		}
		if len(questions) != 0 {
			t.Errorf("got %d questions, want 0", len(questions))
		}
	})

	t.Run("PreservesQuestionOrder", func(t *testing.T) {
		repo := newFakeQuizRepo()
		service := NewService(repo)

		id := seedQuiz(t, service)
		quiz := repo.quizzes[id]
		for i, q := range quiz.Questions {
			if q.Position != i {
				t.Errorf("question %d has position %d", i, q.Position)
			}
		}
	})
}

func TestGetQuizQuestions(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		service := NewService(newFakeQuizRepo())

		if _, err := service.GetQuizQuestions(99); !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("err = %v, want ErrQuizNotFound", err)
		}
	})

	t.Run("StripsAnswers", func(t *testing.T) {
		service := NewService(newFakeQuizRepo())
		id := seedQuiz(t, service)

		questions, err := service.GetQuizQuestions(id)
		if err != nil {
			t.Fatalf("GetQuizQuestions failed: %v", err)
		}
		if len(questions) != 2 {
			t.Fatalf("got %d questions, want 2", len(questions))
		}
		if questions[0].Text != "Capital of France?" {
			t.Errorf("question order not preserved: %q first", questions[0].Text)
		}
		if got := questions[0].Options; len(got) != 4 || got[0] != "Paris" {
			t.Errorf("options = %v, want the four authored options", got)
		}

		encoded, err := json.Marshal(questions)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if strings.Contains(strings.ToLower(string(encoded)), "answer") {
			t.Errorf("answers leaked into serving payload: %s", encoded)
		}
	})
}

func TestCalculateResult(t *testing.T) {
	service := NewService(newFakeQuizRepo())
	id := seedQuiz(t, service)

	questions, err := service.GetQuizQuestions(id)
	if err != nil {
		t.Fatalf("GetQuizQuestions failed: %v", err)
	}
	q1, q2 := questions[0].ID, questions[1].ID

	t.Run("NotFound", func(t *testing.T) {
		if _, err := service.CalculateResult(99, nil); !errors.Is(err, ErrQuizNotFound) {
			t.Errorf("err = %v, want ErrQuizNotFound", err)
		}
	})

	t.Run("CountsExactMatchesOnly", func(t *testing.T) {
		score, err := service.CalculateResult(id, []models.Response{
			{QuestionID: q1, Answer: "Paris"},
			{QuestionID: q2, Answer: "7"},
		})
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		if score != 1 {
			t.Errorf("score = %d, want 1", score)
		}
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		score, err := service.CalculateResult(id, []models.Response{
			{QuestionID: q1, Answer: "paris"},
			{QuestionID: q2, Answer: "42"},
		})
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		if score != 1 {
			t.Errorf("score = %d, want 1", score)
		}
	})

	t.Run("ForeignQuestionIgnored", func(t *testing.T) {
		score, err := service.CalculateResult(id, []models.Response{
			{QuestionID: q1, Answer: "Paris"},
			{QuestionID: 9999, Answer: "Paris"},
		})
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		if score != 1 {
			t.Errorf("score = %d, want 1", score)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		responses := []models.Response{
			{QuestionID: q1, Answer: "Paris"},
			{QuestionID: q2, Answer: "42"},
		}
		first, err := service.CalculateResult(id, responses)
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		second, err := service.CalculateResult(id, responses)
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		if first != second {
			t.Errorf("scores differ across calls: %d then %d", first, second)
		}
		if first != 2 {
			t.Errorf("score = %d, want 2", first)
		}
	})

	t.Run("ScoreBoundedByQuestionCount", func(t *testing.T) {
		// A question scores at most once, so duplicated correct responses
		// cannot push the score past the question count.
		score, err := service.CalculateResult(id, []models.Response{
			{QuestionID: q1, Answer: "Paris"},
			{QuestionID: q1, Answer: "Paris"},
			{QuestionID: q2, Answer: "42"},
			{QuestionID: q2, Answer: "42"},
		})
		if err != nil {
			t.Fatalf("CalculateResult failed: %v", err)
		}
		if score != len(questions) {
			t.Errorf("score = %d, want %d", score, len(questions))
		}
	})
}
