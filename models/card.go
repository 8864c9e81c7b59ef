package models

import (
	"time"
)

// Card is one front/back study unit. Cards carry no user pointer; ownership
// is derived through the parent deck on every mutation.
type Card struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	DeckID    uint      `gorm:"not null;index" json:"deckId"`
	Front     string    `gorm:"not null;size:1000" json:"front"`
	Back      string    `gorm:"not null;size:1000" json:"back"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
