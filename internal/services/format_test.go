package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/keyvez/vaan-backend/internal/types"
)

func TestFormatLexemeMeaningParsing(t *testing.T) {
	tests := []struct {
		name     string
		meanings string
		want     []string
	}{
		{"json array", `["truth","reality"]`, []string{"truth", "reality"}},
		{"legacy comma text", "truth, reality", []string{"truth", "reality"}},
		{"legacy semicolons", "peace; calm ;tranquility", []string{"peace", "calm", "tranquility"}},
		{"empty", "", []string{}},
		{"json with blanks", `["truth","",""]`, []string{"truth"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lexeme := &types.Lexeme{
				Sanskrit:        "सत्यम्",
				EnglishMeanings: tt.meanings,
			}
			word := FormatLexeme(lexeme, time.Now())
			assert.Equal(t, tt.want, word.Meanings)
		})
	}
}

func TestFormatLexemeSelectedAt(t *testing.T) {
	selectedAt := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	word := FormatLexeme(&types.Lexeme{Sanskrit: "धर्म"}, selectedAt)
	assert.Equal(t, selectedAt, word.SelectedAt)

	// Zero time falls back to now.
	word = FormatLexeme(&types.Lexeme{Sanskrit: "धर्म"}, time.Time{})
	assert.WithinDuration(t, time.Now().UTC(), word.SelectedAt, time.Minute)
}

func TestFormatLearningWord(t *testing.T) {
	lexeme := &types.Lexeme{
		ID:                  7,
		Sanskrit:            "गुरु",
		Transliteration:     "guru",
		PrimaryMeaning:      "teacher",
		EnglishMeanings:     `["teacher","mentor"]`,
		ImprovedTranslation: "wise teacher",
		ExamplePhrase:       "गुरुर्ब्रह्मा",
		DifficultyLevel:     "beginner",
		QuizChoices:         datatypes.JSON(`["student","book","river"]`),
	}

	word := FormatLearningWord(lexeme)
	require.NotNil(t, word)
	assert.Equal(t, uint(7), word.ID)
	assert.Equal(t, "wise teacher", word.ImprovedTranslation)
	assert.Equal(t, []string{"student", "book", "river"}, word.QuizChoices)
}

func TestFormatLearningWordMalformedChoices(t *testing.T) {
	lexeme := &types.Lexeme{
		Sanskrit:    "गुरु",
		QuizChoices: datatypes.JSON(`not json`),
	}
	word := FormatLearningWord(lexeme)
	assert.Empty(t, word.QuizChoices)
}

func TestTagParsing(t *testing.T) {
	word := FormatLexeme(&types.Lexeme{Tags: "vedic, common , "}, time.Now())
	assert.Equal(t, []string{"vedic", "common"}, word.Tags)
}
