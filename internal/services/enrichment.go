package services

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

// BatchSize bounds one enrichment pass to respect provider rate limits.
const BatchSize = 5

// EnrichmentService upgrades raw lexemes into baby-name candidates and
// learning material. The policy is at-most-once, best effort: a lexeme that
// fails enrichment is still marked checked and is never retried
// automatically. Concurrent triggers may pick overlapping batches; the
// resulting duplicate work is accepted rather than locked away.
type EnrichmentService interface {
	ProcessBatch(ctx context.Context, priorityLetter string) error
}

type enrichmentService struct {
	db           *gorm.DB
	log          *logger.Logger
	lexemeRepo   repos.LexemeRepo
	babyNameRepo repos.BabyNameRepo
	gemini       GeminiClient
}

func NewEnrichmentService(db *gorm.DB, log *logger.Logger, lexemeRepo repos.LexemeRepo, babyNameRepo repos.BabyNameRepo, gemini GeminiClient) EnrichmentService {
	serviceLog := log.With("service", "EnrichmentService")
	return &enrichmentService{
		db:           db,
		log:          serviceLog,
		lexemeRepo:   lexemeRepo,
		babyNameRepo: babyNameRepo,
		gemini:       gemini,
	}
}

func (es *enrichmentService) ProcessBatch(ctx context.Context, priorityLetter string) error {
	lexemes, err := es.lexemeRepo.GetUnchecked(ctx, nil, BatchSize, priorityLetter)
	if err != nil {
		return fmt.Errorf("load unchecked lexemes: %w", err)
	}
	if len(lexemes) == 0 {
		es.log.Debug("No unprocessed lexemes found")
		return nil
	}
	es.log.Info("Processing lexemes for enrichment", "count", len(lexemes), "priority_letter", priorityLetter)

	assessments, err := es.gemini.AssessLexemes(ctx, lexemes)
	if err != nil {
		// Whole-batch failure: mark everything checked without data so the
		// same rows are not hammered on every request.
		es.log.Error("Batch assessment failed, marking batch checked without enrichment", "error", err)
		for _, lexeme := range lexemes {
			if markErr := es.lexemeRepo.MarkChecked(ctx, nil, lexeme.ID); markErr != nil {
				es.log.Error("Failed to mark lexeme checked", "lexeme_id", lexeme.ID, "error", markErr)
			}
		}
		return err
	}

	for i, lexeme := range lexemes {
		if i >= len(assessments) {
			es.log.Error("No assessment for lexeme", "lexeme_id", lexeme.ID)
			continue
		}
		if err := es.saveResult(ctx, lexeme, assessments[i]); err != nil {
			es.log.Error("Failed to save enrichment result", "lexeme_id", lexeme.ID, "error", err)
			// Still mark checked to avoid retrying forever.
			if markErr := es.lexemeRepo.MarkChecked(ctx, nil, lexeme.ID); markErr != nil {
				es.log.Error("Failed to mark lexeme checked", "lexeme_id", lexeme.ID, "error", markErr)
			}
		}
	}
	return nil
}

func (es *enrichmentService) saveResult(ctx context.Context, lexeme *types.Lexeme, assessment NameAssessment) error {
	gender := normalizeGender(assessment.Gender)
	suitable := assessment.Suitable && gender != ""

	fields := map[string]any{
		"baby_name_suitable":   suitable,
		"baby_name_gender":     gender,
		"improved_translation": assessment.ImprovedTranslation,
		"example_phrase":       assessment.ExamplePhrase,
		"difficulty_level":     normalizeDifficulty(assessment.Difficulty),
	}
	if len(assessment.QuizChoices) > 0 {
		encoded, err := json.Marshal(assessment.QuizChoices)
		if err == nil {
			fields["quiz_choices"] = encoded
		}
	}

	if err := es.lexemeRepo.SaveEnrichment(ctx, nil, lexeme.ID, fields); err != nil {
		return fmt.Errorf("save enrichment: %w", err)
	}

	if !suitable {
		return nil
	}
	return es.saveBabyName(ctx, lexeme, gender, assessment)
}

func (es *enrichmentService) saveBabyName(ctx context.Context, lexeme *types.Lexeme, gender string, assessment NameAssessment) error {
	source := lexeme.Transliteration
	if source == "" {
		source = lexeme.Sanskrit
	}

	baseSlug := GenerateSlug(source, lexeme.ID)
	slug := baseSlug
	exists, err := es.babyNameRepo.SlugExists(ctx, nil, baseSlug)
	if err != nil {
		return fmt.Errorf("check slug: %w", err)
	}
	if exists {
		slug = fmt.Sprintf("%s-%d", baseSlug, lexeme.ID)
	}

	name := &types.BabyName{
		Name:          lexeme.Sanskrit,
		Slug:          slug,
		Gender:        gender,
		Meaning:       lexeme.PrimaryMeaning,
		Pronunciation: source,
		Story:         assessment.Story,
		Reasoning:     assessment.Reasoning,
		FirstLetter:   firstLetterOf(source),
		LexemeID:      lexeme.ID,
	}
	if err := es.babyNameRepo.Create(ctx, nil, name); err != nil {
		return fmt.Errorf("create baby name: %w", err)
	}

	es.log.Info("Added baby name", "name", lexeme.Sanskrit, "gender", gender, "slug", slug)
	return nil
}

var (
	slugStripRe    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRe    = regexp.MustCompile(`\s+`)
	slugCollapseRe = regexp.MustCompile(`-+`)
)

func slugify(text string) string {
	slug := strings.ToLower(text)
	slug = slugStripRe.ReplaceAllString(slug, "")
	slug = slugSpaceRe.ReplaceAllString(slug, "-")
	slug = slugCollapseRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// GenerateSlug normalizes text into a URL slug; too-short results fall back
// to an id-based slug.
func GenerateSlug(text string, id uint) string {
	slug := slugify(text)
	if len(slug) < 2 {
		return fmt.Sprintf("name-%d", id)
	}
	return slug
}

func normalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "boy":
		return "boy"
	case "girl":
		return "girl"
	case "unisex":
		return "unisex"
	default:
		return ""
	}
}

func normalizeDifficulty(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "beginner", "intermediate", "advanced":
		return strings.ToLower(strings.TrimSpace(difficulty))
	default:
		return ""
	}
}

func firstLetterOf(s string) string {
	for _, r := range s {
		return strings.ToUpper(string(r))
	}
	return ""
}
