package types

import (
	"time"

	"github.com/google/uuid"
)

// QuizAttempt is append-only; stats are derived from the aggregate counters
// on LearningProgress, attempts are kept for future analysis.
type QuizAttempt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"not null;index;column:user_id" json:"user_id"`
	BabyNameID   uint      `gorm:"not null;column:baby_name_id" json:"baby_name_id"`
	BabyName     *BabyName `gorm:"foreignKey:BabyNameID;references:ID" json:"baby_name,omitempty"`
	Correct      bool      `gorm:"not null;column:correct" json:"correct"`
	Difficulty   string    `gorm:"column:difficulty" json:"difficulty"`
	AnsweredInMs int       `gorm:"column:answered_in_ms" json:"answered_in_ms"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (QuizAttempt) TableName() string { return "quiz_attempts" }
