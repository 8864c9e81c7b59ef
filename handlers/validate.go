package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type deckRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type cardRequest struct {
	Front string `json:"front" validate:"required,max=1000"`
	Back  string `json:"back" validate:"required,max=1000"`
}

var fieldMessages = map[string]string{
	"Name.required":   "Name is required",
	"Name.max":        "Name must be 255 characters or fewer",
	"Description.max": "Description must be 1000 characters or fewer",
	"Front.required":  "Front side is required",
	"Front.max":       "Front side must be 1000 characters or fewer",
	"Back.required":   "Back side is required",
	"Back.max":        "Back side must be 1000 characters or fewer",
}

// firstViolation turns a validator error into the message for its first
// failed field. Validation short-circuits on presentation: only one message
// ever reaches the client.
func firstViolation(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
			return msg
		}
		return "Invalid value for " + fe.Field()
	}
	return "Invalid input"
}
