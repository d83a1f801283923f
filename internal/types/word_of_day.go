package types

import (
	"time"
)

// WordOfDayState is a singleton row (id = 1) pointing at the currently
// featured lexeme. Cache validity is now - selected_at < 24h.
type WordOfDayState struct {
	ID         uint      `gorm:"primaryKey;column:id" json:"id"`
	LexemeID   uint      `gorm:"not null;column:lexeme_id" json:"lexeme_id"`
	Lexeme     *Lexeme   `gorm:"foreignKey:LexemeID;references:ID" json:"lexeme,omitempty"`
	SelectedAt time.Time `gorm:"not null;column:selected_at" json:"selected_at"`
}

func (WordOfDayState) TableName() string { return "word_of_day_state" }

// WordOfDayLog records every lexeme ever featured. Append-only until every
// lexeme has been used once, at which point it is cleared in full.
type WordOfDayLog struct {
	LexemeID   uint      `gorm:"primaryKey;column:lexeme_id" json:"lexeme_id"`
	Lexeme     *Lexeme   `gorm:"foreignKey:LexemeID;references:ID" json:"lexeme,omitempty"`
	SelectedAt time.Time `gorm:"not null;column:selected_at" json:"selected_at"`
}

func (WordOfDayLog) TableName() string { return "word_of_day_log" }
