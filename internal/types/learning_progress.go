package types

import (
	"time"
)

// LearningProgress holds per-user aggregate counters for the learn flow.
type LearningProgress struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             string    `gorm:"uniqueIndex;not null;column:user_id" json:"user_id"`
	User               *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	WordsStudied       int       `gorm:"not null;default:0;column:words_studied" json:"words_studied"`
	FlashcardsReviewed int       `gorm:"not null;default:0;column:flashcards_reviewed" json:"flashcards_reviewed"`
	QuizzesTaken       int       `gorm:"not null;default:0;column:quizzes_taken" json:"quizzes_taken"`
	QuizzesCorrect     int       `gorm:"not null;default:0;column:quizzes_correct" json:"quizzes_correct"`
	DifficultyLevel    string    `gorm:"not null;default:'beginner';column:difficulty_level" json:"difficulty_level"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null" json:"updated_at"`
}

func (LearningProgress) TableName() string { return "learning_progress" }

// WordProgress tracks one user's history with one baby name.
type WordProgress struct {
	ID              uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string     `gorm:"not null;index:idx_user_word,unique;column:user_id" json:"user_id"`
	BabyNameID      uint       `gorm:"not null;index:idx_user_word,unique;column:baby_name_id" json:"baby_name_id"`
	BabyName        *BabyName  `gorm:"foreignKey:BabyNameID;references:ID" json:"baby_name,omitempty"`
	ReviewCount     int        `gorm:"not null;default:0;column:review_count" json:"review_count"`
	ConfidenceLevel int        `gorm:"not null;default:0;column:confidence_level" json:"confidence_level"`
	LastReviewedAt  *time.Time `gorm:"column:last_reviewed_at" json:"last_reviewed_at,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"not null" json:"updated_at"`
}

func (WordProgress) TableName() string { return "word_progress" }
