package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/types"
	"github.com/keyvez/vaan-backend/internal/utils"
)

// NameAssessment is one lexeme's enrichment result, positionally aligned
// with the batch that was sent.
type NameAssessment struct {
	Suitable            bool
	Gender              string
	Reasoning           string
	Story               string
	ImprovedTranslation string
	ExamplePhrase       string
	Difficulty          string
	QuizChoices         []string
}

type GeminiClient interface {
	AssessLexemes(ctx context.Context, lexemes []*types.Lexeme) ([]NameAssessment, error)
}

type geminiClient struct {
	log    *logger.Logger
	client *genai.Client
	model  string
}

func NewGeminiClient(ctx context.Context, log *logger.Logger) (GeminiClient, error) {
	apiKey := utils.GetEnv("GEMINI_API_KEY", "", log)
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	model := utils.GetEnv("GEMINI_MODEL", "gemini-flash-lite-latest", log)

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	return &geminiClient{
		log:    log.With("service", "GeminiClient"),
		client: client,
		model:  model,
	}, nil
}

// Static instructions come first so the provider can cache the prefix; the
// word list is appended per call.
const assessmentPrompt = `You are a Sanskrit language and naming expert. Analyze the following Sanskrit words and determine if each would be suitable as a baby name, and produce learning material for each.

For each word, respond with:
- suitable: boolean (true if this would make a good baby name)
- gender: string ("boy", "girl", or "unisex") - only if suitable is true, otherwise null
- reasoning: string (brief explanation of why this is or isn't suitable as a baby name)
- story: string (if suitable, provide 1-2 sentences of cultural or mythological context) - otherwise null
- improved_translation: string (a clear, natural English translation of the word)
- example_phrase: string (a short Sanskrit phrase or sentence using the word, with English gloss)
- difficulty: string ("beginner", "intermediate", or "advanced") for a Sanskrit learner
- quiz_choices: array of exactly 3 plausible but wrong English meanings, for a multiple-choice quiz

Criteria for suitability:
1. The word should have a positive or neutral meaning
2. It should be pronounceable as a name
3. It should not be primarily a verb, or grammatical particle
4. Consider traditional usage in Sanskrit/Hindu naming conventions
5. Determine the grammatical gender in Sanskrit to suggest appropriate gender for the name
6. Names of deities, virtues, natural phenomena with positive connotations are usually suitable

Return one result per word, in the same order as the input.

Analyze these words:
`

type assessmentResponse struct {
	Results []struct {
		Suitable            bool     `json:"suitable"`
		Gender              string   `json:"gender"`
		Reasoning           string   `json:"reasoning"`
		Story               string   `json:"story"`
		ImprovedTranslation string   `json:"improved_translation"`
		ExamplePhrase       string   `json:"example_phrase"`
		Difficulty          string   `json:"difficulty"`
		QuizChoices         []string `json:"quiz_choices"`
	} `json:"results"`
}

func (gc *geminiClient) AssessLexemes(ctx context.Context, lexemes []*types.Lexeme) ([]NameAssessment, error) {
	var words strings.Builder
	for i, lexeme := range lexemes {
		fmt.Fprintf(&words, "%d. Sanskrit Word: %s, English Meaning: %s\n", i+1, lexeme.Sanskrit, lexeme.PrimaryMeaning)
	}

	temp := float32(0.2)
	config := &genai.GenerateContentConfig{
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema:   assessmentSchema(),
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: assessmentPrompt + words.String()}}},
	}

	result, err := gc.client.Models.GenerateContent(ctx, gc.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini generateContent: %w", err)
	}

	text := result.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var parsed assessmentResponse
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("parse Gemini response: %w", err)
	}

	assessments := make([]NameAssessment, len(parsed.Results))
	for i, r := range parsed.Results {
		assessments[i] = NameAssessment{
			Suitable:            r.Suitable,
			Gender:              strings.ToLower(strings.TrimSpace(r.Gender)),
			Reasoning:           r.Reasoning,
			Story:               r.Story,
			ImprovedTranslation: r.ImprovedTranslation,
			ExamplePhrase:       r.ExamplePhrase,
			Difficulty:          strings.ToLower(strings.TrimSpace(r.Difficulty)),
			QuizChoices:         r.QuizChoices,
		}
		if assessments[i].Reasoning == "" {
			assessments[i].Reasoning = "No reasoning provided"
		}
	}
	return assessments, nil
}

func assessmentSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"results": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"suitable":             {Type: genai.TypeBoolean},
						"gender":               {Type: genai.TypeString, Nullable: genai.Ptr(true)},
						"reasoning":            {Type: genai.TypeString},
						"story":                {Type: genai.TypeString, Nullable: genai.Ptr(true)},
						"improved_translation": {Type: genai.TypeString},
						"example_phrase":       {Type: genai.TypeString},
						"difficulty":           {Type: genai.TypeString, Enum: []string{"beginner", "intermediate", "advanced"}},
						"quiz_choices": {
							Type:  genai.TypeArray,
							Items: &genai.Schema{Type: genai.TypeString},
						},
					},
					Required: []string{"suitable", "reasoning"},
				},
			},
		},
		Required: []string{"results"},
	}
}
