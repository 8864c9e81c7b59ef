package auth

import (
	"context"
)

// Feature names granted by the caller's plan. These arrive as a custom
// claim on the access token; the identity provider is the source of truth.
const (
	FeatureUnlimitedDecks = "unlimited_decks"
	FeatureAIGeneration   = "ai_flashcard_generation"
)

// CustomClaims carries the plan features alongside the standard claims.
type CustomClaims struct {
	Features []string `json:"features"`
}

// Validate satisfies validator.CustomClaims. The feature list needs no
// validation of its own; an empty list just means the free plan.
func (c *CustomClaims) Validate(ctx context.Context) error {
	return nil
}

func (c *CustomClaims) hasFeature(feature string) bool {
	for _, f := range c.Features {
		if f == feature {
			return true
		}
	}
	return false
}
