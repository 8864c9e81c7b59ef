package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a deck or card lookup matches no row. Callers
// must not distinguish a missing deck from a deck owned by someone else.
var ErrNotFound = errors.New("record not found")

// Store wraps the database handle with the deck/card operations the
// handlers need.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DecksByUser(userID string) ([]models.Deck, error) {
	var decks []models.Deck
	if err := s.db.Where("user_id = ?", userID).Order("created_at").Find(&decks).Error; err != nil {
		return nil, fmt.Errorf("fetch decks for user: %w", err)
	}
	return decks, nil
}

func (s *Store) CountDecksByUser(userID string) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Deck{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count decks for user: %w", err)
	}
	return count, nil
}

// DeckByIDForUser resolves a deck only when the given user owns it. The
// owner filter lives in the query itself so no caller can forget the check.
func (s *Store) DeckByIDForUser(deckID uint, userID string) (*models.Deck, error) {
	var deck models.Deck
	err := s.db.Where("id = ? AND user_id = ?", deckID, userID).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch deck %d: %w", deckID, err)
	}
	return &deck, nil
}

func (s *Store) CreateDeck(deck *models.Deck) error {
	if err := s.db.Create(deck).Error; err != nil {
		return fmt.Errorf("create deck: %w", err)
	}
	return nil
}

func (s *Store) UpdateDeck(deckID uint, name, description string) (*models.Deck, error) {
	var deck models.Deck
	err := s.db.First(&deck, deckID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch deck %d: %w", deckID, err)
	}

	deck.Name = name
	deck.Description = description
	deck.UpdatedAt = time.Now()
	if err := s.db.Save(&deck).Error; err != nil {
		return nil, fmt.Errorf("update deck %d: %w", deckID, err)
	}
	return &deck, nil
}

// DeleteDeck removes a deck and all of its cards. The FK has ON DELETE
// CASCADE, but the cards are deleted explicitly as well so databases
// migrated before the constraint existed behave the same way.
func (s *Store) DeleteDeck(deckID uint) error {
	if err := s.db.Where("deck_id = ?", deckID).Delete(&models.Card{}).Error; err != nil {
		return fmt.Errorf("delete cards for deck %d: %w", deckID, err)
	}
	result := s.db.Delete(&models.Deck{}, deckID)
	if result.Error != nil {
		return fmt.Errorf("delete deck %d: %w", deckID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) CardsByDeck(deckID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := s.db.Where("deck_id = ?", deckID).Order("created_at").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("fetch cards for deck %d: %w", deckID, err)
	}
	return cards, nil
}

func (s *Store) CountCardsByDeck(deckID uint) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Card{}).Where("deck_id = ?", deckID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count cards for deck %d: %w", deckID, err)
	}
	return count, nil
}

// CardByIDInDeck resolves a card only within the given deck, so a card ID
// from another deck cannot ride in on an already-authorized deck ID.
func (s *Store) CardByIDInDeck(cardID, deckID uint) (*models.Card, error) {
	var card models.Card
	err := s.db.Where("id = ? AND deck_id = ?", cardID, deckID).First(&card).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch card %d: %w", cardID, err)
	}
	return &card, nil
}

func (s *Store) CreateCard(card *models.Card) error {
	if err := s.db.Create(card).Error; err != nil {
		return fmt.Errorf("create card: %w", err)
	}
	return nil
}

// CreateCards inserts cards one row at a time and returns how many made it
// in. A mid-batch failure leaves the earlier rows committed; generation is
// best-effort, not all-or-nothing.
func (s *Store) CreateCards(cards []models.Card) (int, error) {
	for i := range cards {
		if err := s.db.Create(&cards[i]).Error; err != nil {
			return i, fmt.Errorf("create card %d of %d: %w", i+1, len(cards), err)
		}
	}
	return len(cards), nil
}

func (s *Store) UpdateCard(cardID uint, front, back string) (*models.Card, error) {
	var card models.Card
	err := s.db.First(&card, cardID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch card %d: %w", cardID, err)
	}

	card.Front = front
	card.Back = back
	card.UpdatedAt = time.Now()
	if err := s.db.Save(&card).Error; err != nil {
		return nil, fmt.Errorf("update card %d: %w", cardID, err)
	}
	return &card, nil
}

func (s *Store) DeleteCard(cardID uint) error {
	result := s.db.Delete(&models.Card{}, cardID)
	if result.Error != nil {
		return fmt.Errorf("delete card %d: %w", cardID, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
