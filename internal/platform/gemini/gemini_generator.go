package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"text/template"

	"github.com/nvallens/studydeck-api/internal/config"
	"github.com/nvallens/studydeck-api/internal/domain"
	"github.com/nvallens/studydeck-api/internal/generation"
	"google.golang.org/genai"
)

// defaultMaxContextChars caps the course context included in a prompt
// so a single oversized page cannot blow the request budget.
const defaultMaxContextChars = 3000

// promptTemplateText asks for a bare JSON array so the response can be
// unmarshalled directly. Models still occasionally wrap the array in a
// markdown code fence; parseCandidates strips that.
const promptTemplateText = `Create {{.DesiredCount}} study flashcards from the following course content.

Content:
{{.ContextText}}

Return ONLY a JSON array of objects with "question" and "answer" fields:
[{"question": "Q", "answer": "A"}, ...]`

// promptData is the data passed to the prompt template.
type promptData struct {
	ContextText  string
	DesiredCount int
}

// candidateSchema is the expected shape of one flashcard in the model's
// JSON response.
type candidateSchema struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Tags     []string `json:"tags,omitempty"`
}

// Generator implements generation.Generator against the Gemini API.
type Generator struct {
	logger          *slog.Logger
	client          *genai.Client
	model           string
	maxContextChars int
	promptTemplate  *template.Template
}

// NewGenerator creates a Gemini-backed Generator from LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	maxContextChars := cfg.MaxContextChars
	if maxContextChars <= 0 {
		maxContextChars = defaultMaxContextChars
	}

	promptTemplate, err := template.New("flashcards").Parse(promptTemplateText)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", generation.ErrInvalidConfig, err)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:          logger.With(slog.String("component", "gemini_generator")),
		client:          client,
		model:           cfg.ModelName,
		maxContextChars: maxContextChars,
		promptTemplate:  promptTemplate,
	}, nil
}

// GenerateCards implements generation.Generator. API transport errors
// are reported as transient; safety blocks and unparseable responses
// are permanent.
func (g *Generator) GenerateCards(
	ctx context.Context,
	contextText string,
	desiredCount int,
) ([]domain.CardCandidate, error) {
	prompt, err := g.buildPrompt(contextText, desiredCount)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "calling Gemini API",
		slog.String("model", g.model),
		slog.Int("prompt_length", len(prompt)),
		slog.Int("desired_count", desiredCount))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: prompt or response blocked", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}

	candidates, err := parseCandidates(text)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "Gemini API call succeeded",
		slog.Int("candidates", len(candidates)))
	return candidates, nil
}

// buildPrompt truncates the context text and renders the prompt template.
func (g *Generator) buildPrompt(contextText string, desiredCount int) (string, error) {
	if strings.TrimSpace(contextText) == "" {
		return "", ErrEmptyContextText
	}
	if desiredCount <= 0 {
		return "", ErrNonPositiveCount
	}

	if len(contextText) > g.maxContextChars {
		contextText = contextText[:g.maxContextChars] + "... [truncated]"
	}

	var buf bytes.Buffer
	err := g.promptTemplate.Execute(&buf, promptData{
		ContextText:  contextText,
		DesiredCount: desiredCount,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// parseCandidates unmarshals the model output into flashcard
// candidates, tolerating a markdown code fence around the JSON array.
func parseCandidates(text string) ([]domain.CardCandidate, error) {
	text = stripCodeFence(text)

	var parsed []candidateSchema
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}

	candidates := make([]domain.CardCandidate, 0, len(parsed))
	for _, c := range parsed {
		candidates = append(candidates, domain.CardCandidate{
			Question: c.Question,
			Answer:   c.Answer,
			Tags:     c.Tags,
		})
	}
	return candidates, nil
}

// stripCodeFence removes a surrounding ```json ... ``` or ``` ... ```
// block if the model wrapped its output in one.
func stripCodeFence(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	if idx := strings.LastIndex(trimmed, "```"); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
