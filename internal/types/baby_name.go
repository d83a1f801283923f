package types

import (
	"time"
)

// BabyName is a lexeme promoted to the name directory after the enrichment
// pipeline judged it suitable. Created once per qualifying lexeme, never
// regenerated.
type BabyName struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"not null;column:name" json:"name"`
	Slug          string    `gorm:"uniqueIndex;not null;column:slug" json:"slug"`
	Gender        string    `gorm:"not null;index;column:gender" json:"gender"`
	Meaning       string    `gorm:"column:meaning" json:"meaning"`
	Pronunciation string    `gorm:"column:pronunciation" json:"pronunciation"`
	Story         string    `gorm:"type:text;column:story" json:"story"`
	Reasoning     string    `gorm:"type:text;column:reasoning" json:"reasoning"`
	FirstLetter   string    `gorm:"index;column:first_letter" json:"first_letter"`
	LexemeID      uint      `gorm:"not null;column:lexeme_id" json:"lexeme_id"`
	Lexeme        *Lexeme   `gorm:"foreignKey:LexemeID;references:ID" json:"lexeme,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}

func (BabyName) TableName() string { return "baby_names" }
