package models

import "time"

type Question struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	QuizID       uint      `json:"quiz_id" gorm:"not null"`
	QuestionText string    `json:"question_text" gorm:"not null"`
	QuestionType string    `json:"question_type" gorm:"not null;default:multiple_choice"`
	TimeLimit    int       `json:"time_limit" gorm:"not null;default:30"` // seconds
	ImageURL     *string   `json:"imageUrl" gorm:"column:image_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Quiz    Quiz     `json:"quiz,omitempty"`
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID"`
}

func (Question) TableName() string {
	return "quiz_questions"
}

// QuestionTypes is the allowed set for question_type.
var QuestionTypes = []string{"multiple_choice", "true_false", "text"}
