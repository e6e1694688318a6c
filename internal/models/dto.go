package models

// QuestionWrapper is the taker-facing view of a question with the answer
// stripped.
type QuestionWrapper struct {
	ID      uint     `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

func (q Question) Wrapper() QuestionWrapper {
	return QuestionWrapper{
		ID:      q.ID,
		Text:    q.Text,
		Options: q.OptionList(),
	}
}

// Response is a taker's submitted answer for one question. It is scored and
// discarded, never persisted.
type Response struct {
	QuestionID uint   `json:"questionId"`
	Answer     string `json:"answer"`
}

type AuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type CreateQuizRequest struct {
	Title     string                  `json:"title" validate:"required"`
	Category  string                  `json:"category" validate:"required"`
	Questions []CreateQuestionRequest `json:"questions" validate:"dive"`
}

type CreateQuestionRequest struct {
	Text    string   `json:"text" validate:"required"`
	Options []string `json:"options" validate:"required,min=2,dive,required"`
	Answer  string   `json:"answer" validate:"required"`
}
