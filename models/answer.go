package models

import "time"

// Answer carries a denormalized QuizID copied from its question at write
// time; clients never supply it directly.
type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuizID     uint      `json:"quiz_id" gorm:"not null"`
	QuestionID uint      `json:"question_id" gorm:"not null"`
	AnswerText string    `json:"answer_text" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	ImageURL   *string   `json:"imageUrl" gorm:"column:image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Question Question `json:"question,omitempty"`
}

func (Answer) TableName() string {
	return "answers"
}
