package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/keyvez/vaan-backend/internal/types"
)

// Word is the client-facing shape of a lexeme.
type Word struct {
	ID              uint      `json:"id"`
	Sanskrit        string    `json:"sanskrit"`
	Transliteration string    `json:"transliteration"`
	PrimaryMeaning  string    `json:"primaryMeaning"`
	Meanings        []string  `json:"meanings"`
	PartOfSpeech    string    `json:"partOfSpeech"`
	HindiMeaning    string    `json:"hindiMeaning"`
	Tags            []string  `json:"tags"`
	RawEntry        string    `json:"rawEntry"`
	SelectedAt      time.Time `json:"selectedAt"`
}

// LearningWord adds the enrichment outputs used by flashcards and quizzes.
type LearningWord struct {
	ID                  uint     `json:"id"`
	Sanskrit            string   `json:"sanskrit"`
	Transliteration     string   `json:"transliteration"`
	PrimaryMeaning      string   `json:"primaryMeaning"`
	Meanings            []string `json:"meanings"`
	ImprovedTranslation string   `json:"improvedTranslation"`
	ExamplePhrase       string   `json:"examplePhrase"`
	DifficultyLevel     string   `json:"difficultyLevel"`
	QuizChoices         []string `json:"quizChoices"`
}

func FormatLexeme(lexeme *types.Lexeme, selectedAt time.Time) *Word {
	if selectedAt.IsZero() {
		selectedAt = time.Now().UTC()
	}
	return &Word{
		ID:              lexeme.ID,
		Sanskrit:        lexeme.Sanskrit,
		Transliteration: lexeme.Transliteration,
		PrimaryMeaning:  lexeme.PrimaryMeaning,
		Meanings:        parseMeaningField(lexeme.EnglishMeanings),
		PartOfSpeech:    lexeme.PartOfSpeech,
		HindiMeaning:    lexeme.HindiMeaning,
		Tags:            parseTags(lexeme.Tags),
		RawEntry:        lexeme.RawEntry,
		SelectedAt:      selectedAt,
	}
}

func FormatLearningWord(lexeme *types.Lexeme) *LearningWord {
	var choices []string
	if len(lexeme.QuizChoices) > 0 {
		// Ignore malformed rows; the quiz simply has fewer distractors.
		_ = json.Unmarshal(lexeme.QuizChoices, &choices)
	}
	return &LearningWord{
		ID:                  lexeme.ID,
		Sanskrit:            lexeme.Sanskrit,
		Transliteration:     lexeme.Transliteration,
		PrimaryMeaning:      lexeme.PrimaryMeaning,
		Meanings:            parseMeaningField(lexeme.EnglishMeanings),
		ImprovedTranslation: lexeme.ImprovedTranslation,
		ExamplePhrase:       lexeme.ExamplePhrase,
		DifficultyLevel:     lexeme.DifficultyLevel,
		QuizChoices:         choices,
	}
}

// parseMeaningField accepts either a JSON array (as written by ingest) or
// legacy comma/semicolon separated text.
func parseMeaningField(value string) []string {
	if value == "" {
		return []string{}
	}

	var parsed []string
	if err := json.Unmarshal([]byte(value), &parsed); err == nil {
		out := make([]string, 0, len(parsed))
		for _, item := range parsed {
			if item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	return splitAndTrim(value, func(r rune) bool { return r == ',' || r == ';' })
}

func parseTags(value string) []string {
	if value == "" {
		return []string{}
	}
	return splitAndTrim(value, func(r rune) bool { return r == ',' })
}

func splitAndTrim(value string, sep func(rune) bool) []string {
	parts := strings.FieldsFunc(value, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
