package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Quiz struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Title     string     `json:"title" gorm:"not null"`
	Category  string     `json:"category"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

// Question stores its options as a jsonb array because that is the shape
// they travel in over the wire. Answer is never serialized; takers only
// ever see a QuestionWrapper.
type Question struct {
	ID       uint           `json:"id" gorm:"primaryKey"`
	QuizID   uint           `json:"quiz_id" gorm:"not null;index"`
	Text     string         `json:"text" gorm:"not null"`
	Options  datatypes.JSON `json:"options" gorm:"type:jsonb;not null"`
	Answer   string         `json:"-" gorm:"not null"`
	Position int            `json:"position" gorm:"not null"`
}

// OptionList decodes the jsonb options column into the wire shape.
func (q Question) OptionList() []string {
	var opts []string
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return nil
	}
	return opts
}

func EncodeOptions(opts []string) datatypes.JSON {
	data, _ := json.Marshal(opts)
	return datatypes.JSON(data)
}
