package ai

import (
	"errors"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// ErrInsufficientOutput marks a batch below the minimum size. Nothing is
// persisted when this is returned.
var ErrInsufficientOutput = errors.New("insufficient output")

// FailureMessage maps a generation error to the message shown to the user.
// Provider failures are classified so the client can suggest the right next
// step (fix credentials, top up, retry) instead of a generic error.
func FailureMessage(err error) string {
	if errors.Is(err, ErrInsufficientOutput) {
		return "AI generated too few cards. Please try again."
	}

	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusUnauthorized || apierr.StatusCode == http.StatusForbidden:
			return "AI provider rejected our credentials. Please contact support."
		case apierr.StatusCode == http.StatusTooManyRequests:
			return "AI provider is rate limiting requests. Please try again in a moment."
		case apierr.StatusCode == http.StatusPaymentRequired || strings.Contains(strings.ToLower(apierr.Error()), "credit"):
			return "AI provider billing quota exhausted. Please contact support."
		default:
			return "AI generation failed: " + apierr.Error()
		}
	}

	if strings.Contains(err.Error(), "parse provider response") ||
		strings.Contains(err.Error(), "decode provider response") {
		return "AI returned an unreadable batch. Please try again."
	}

	// No typed API error means the call never got an HTTP response.
	return "Could not reach the AI provider. Please check your connection and try again."
}
