// Package ai generates candidate flashcards for a deck from its name and
// description using the Anthropic API.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Batch size window. The prompt asks for the nominal target; the tolerance
// band absorbs provider variance. A batch under the minimum fails outright,
// a batch over the prompt's cap is still persisted in full.
const (
	MinCards    = 15
	MaxCards    = 25
	TargetCards = 20

	maxFrontLength = 500
	maxBackLength  = 1000
)

// GeneratedCard is one front/back pair proposed by the model.
type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Completer abstracts the text-generation provider so tests can stub it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Generator struct {
	completer Completer
}

func NewGenerator(completer Completer) *Generator {
	return &Generator{completer: completer}
}

// Generate asks the provider for a batch of cards about the deck's subject
// and returns the validated batch. Items with an empty or over-long side
// are dropped before the minimum-size check.
func (g *Generator) Generate(ctx context.Context, deckName, deckDescription string) ([]GeneratedCard, error) {
	prompt := buildPrompt(deckName, deckDescription)

	response, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	raw, err := extractJSONArray(response)
	if err != nil {
		return nil, fmt.Errorf("parse provider response: %w", err)
	}

	var cards []GeneratedCard
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	valid := cards[:0]
	for _, c := range cards {
		c.Front = strings.TrimSpace(c.Front)
		c.Back = strings.TrimSpace(c.Back)
		if c.Front == "" || c.Back == "" {
			continue
		}
		if len(c.Front) > maxFrontLength || len(c.Back) > maxBackLength {
			continue
		}
		valid = append(valid, c)
	}

	if len(valid) < MinCards {
		return nil, fmt.Errorf("%w: got %d cards, need at least %d", ErrInsufficientOutput, len(valid), MinCards)
	}

	return valid, nil
}

func buildPrompt(deckName, deckDescription string) string {
	return fmt.Sprintf(`You are an expert educator creating study flashcards.

Deck name: %s
Deck description: %s

Generate educational flashcards covering the most important concepts of this subject.

Output ONLY a valid JSON array matching this exact schema:
[
  {"front": "<question or term, max %d characters>", "back": "<answer or definition, max %d characters>"}
]

Rules:
- Produce exactly %d cards (between %d and %d is acceptable)
- Fronts are concise questions or terms; backs are clear, self-contained answers
- Cover the breadth of the subject rather than repeating one concept
- Output ONLY the JSON array, no markdown, no explanations`,
		deckName, deckDescription,
		maxFrontLength, maxBackLength,
		TargetCards, MinCards, MaxCards)
}

// extractJSONArray finds the first complete JSON array in a string.
func extractJSONArray(s string) (string, error) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON array found in response")
	}
	raw := s[start : end+1]
	if !json.Valid([]byte(raw)) {
		return "", fmt.Errorf("response does not contain valid JSON")
	}
	return raw, nil
}
