package types

import (
	"time"

	"gorm.io/datatypes"
)

// Lexeme is one dictionary entry loaded from the wordlist. Rows are created
// by the ingest CLI and mutated only by the enrichment pipeline; the running
// system never deletes them.
type Lexeme struct {
	ID              uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Sanskrit        string `gorm:"not null;index;column:sanskrit" json:"sanskrit"`
	Transliteration string `gorm:"column:transliteration" json:"transliteration"`
	PrimaryMeaning  string `gorm:"column:primary_meaning" json:"primary_meaning"`
	// JSON array as written by ingest, but legacy rows may hold plain
	// comma separated text. Parsed leniently at the formatting boundary.
	EnglishMeanings string `gorm:"type:text;column:english_meanings" json:"english_meanings"`
	PartOfSpeech    string `gorm:"column:part_of_speech" json:"part_of_speech"`
	HindiMeaning    string `gorm:"column:hindi_meaning" json:"hindi_meaning"`
	Tags            string `gorm:"column:tags" json:"tags"`
	RawEntry        string `gorm:"uniqueIndex;column:raw_entry" json:"raw_entry"`

	BabyNameChecked  bool   `gorm:"not null;default:false;index;column:baby_name_checked" json:"baby_name_checked"`
	BabyNameSuitable bool   `gorm:"not null;default:false;column:baby_name_suitable" json:"baby_name_suitable"`
	BabyNameGender   string `gorm:"column:baby_name_gender" json:"baby_name_gender"`

	ImprovedTranslation string         `gorm:"column:improved_translation" json:"improved_translation"`
	ExamplePhrase       string         `gorm:"column:example_phrase" json:"example_phrase"`
	DifficultyLevel     string         `gorm:"column:difficulty_level" json:"difficulty_level"`
	QuizChoices         datatypes.JSON `gorm:"column:quiz_choices" json:"quiz_choices"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Lexeme) TableName() string { return "lexemes" }
