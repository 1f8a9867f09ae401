package model

import "time"

// The study material tables below are part of the schema but have no
// handlers yet. They only get automigrated so generated quizzes and
// flashcards have somewhere to land.

type Quiz struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID  uint      `gorm:"index" json:"document_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	QuizName    string    `gorm:"size:255" json:"quiz_name"`
	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generated_at"`

	Questions []Question    `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
	Attempts  []QuizAttempt `gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE" json:"-"`
}

type Question struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID       uint   `gorm:"index" json:"quiz_id"`
	QuestionText string `gorm:"type:text;not null" json:"question_text"`
	QuestionType string `gorm:"size:50;not null" json:"question_type"`
	// Nullable, open ended questions may not have a canonical answer
	CorrectAnswer *string   `gorm:"type:text" json:"correct_answer"`
	GeneratedAt   time.Time `gorm:"autoCreateTime" json:"generated_at"`

	Options []MCOption `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE" json:"-"`
}

type MCOption struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	QuestionID uint   `gorm:"index" json:"question_id"`
	OptionText string `gorm:"type:text;not null" json:"option_text"`
	IsCorrect  bool   `gorm:"not null" json:"is_correct"`
}

type Flashcard struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	DocumentID  uint      `gorm:"index" json:"document_id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Term        string    `gorm:"type:text;not null" json:"term"`
	Definition  string    `gorm:"type:text;not null" json:"definition"`
	GeneratedAt time.Time `gorm:"autoCreateTime" json:"generated_at"`
}

type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"index" json:"user_id"`
	QuizID         uint      `gorm:"index" json:"quiz_id"`
	Score          *int      `json:"score"`
	TotalQuestions *int      `json:"total_questions"`
	AttemptedAt    time.Time `gorm:"autoCreateTime" json:"attempted_at"`

	Answers []UserAnswer `gorm:"foreignKey:AttemptID;constraint:OnDelete:CASCADE" json:"-"`
}

type UserAnswer struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AttemptID            uint      `gorm:"index" json:"attempt_id"`
	QuestionID           uint      `gorm:"index" json:"question_id"`
	UserSelectedOptionID *uint     `json:"user_selected_option_id"`
	UserOpenEndedAnswer  *string   `gorm:"type:text" json:"user_open_ended_answer"`
	IsCorrect            *bool     `json:"is_correct"`
	AnsweredAt           time.Time `gorm:"autoCreateTime" json:"answered_at"`
}
