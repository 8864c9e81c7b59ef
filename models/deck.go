package models

import (
	"time"
)

// Deck represents a user-owned collection of flashcards. Ownership is the
// opaque subject string issued by the identity provider; there is no local
// users table.
type Deck struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"not null;size:255;index" json:"userId"`
	Name        string    `gorm:"not null;size:255" json:"name"`
	Description string    `gorm:"size:1000" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Cards []Card `gorm:"foreignKey:DeckID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}
