// Package study implements the in-memory study session: traversal, flip
// state, seeded shuffling, and per-card correctness judgments over a fixed
// list of cards. Nothing here touches the database; a session lives and
// dies with the caller's browsing session.
package study

import (
	"math"
	"time"

	"github.com/andrewpaige1/flashdeck-api/models"
)

// Session holds the presentation state for one pass over a deck's cards.
// It is not safe for concurrent use; the Manager serializes access.
type Session struct {
	DeckID  uint
	Subject string

	original  []models.Card
	cards     []models.Card
	position  int
	flipped   bool
	shuffled  bool
	judgments map[uint]bool

	lastUsed time.Time
}

// NewSession starts a session over the given cards in their stored order.
// The card list must be non-empty.
func NewSession(deckID uint, subject string, cards []models.Card) *Session {
	original := make([]models.Card, len(cards))
	copy(original, cards)
	current := make([]models.Card, len(cards))
	copy(current, cards)
	return &Session{
		DeckID:    deckID,
		Subject:   subject,
		original:  original,
		cards:     current,
		judgments: make(map[uint]bool),
		lastUsed:  time.Now(),
	}
}

// Current returns the card at the current position.
func (s *Session) Current() models.Card {
	return s.cards[s.position]
}

func (s *Session) Position() int { return s.position }

func (s *Session) Len() int { return len(s.cards) }

func (s *Session) Flipped() bool { return s.flipped }

func (s *Session) Shuffled() bool { return s.shuffled }

// Judgment returns the recorded verdict for the current card, if any.
func (s *Session) Judgment() (correct bool, judged bool) {
	correct, judged = s.judgments[s.Current().ID]
	return correct, judged
}

// Flip toggles which side of the current card is visible.
func (s *Session) Flip() {
	s.flipped = !s.flipped
}

// Next advances one card, clamped at the end. Arriving on a card always
// shows its front.
func (s *Session) Next() {
	if s.position < len(s.cards)-1 {
		s.position++
		s.flipped = false
	}
}

// Previous moves back one card, clamped at the start.
func (s *Session) Previous() {
	if s.position > 0 {
		s.position--
		s.flipped = false
	}
}

// Judge records the verdict for the current card, latest wins, then
// advances. On the last card it stays put with the front showing, leaving
// the session complete.
func (s *Session) Judge(correct bool) {
	s.judgments[s.Current().ID] = correct
	if s.position < len(s.cards)-1 {
		s.Next()
	} else {
		s.flipped = false
	}
}

// ToggleShuffle switches between shuffled and original order. Turning
// shuffle on permutes the full list deterministically from seed; turning it
// off restores the stored order. Either way the pass starts over: position
// 0, front showing, judgments cleared.
func (s *Session) ToggleShuffle(seed int64) {
	s.shuffled = !s.shuffled
	if s.shuffled {
		s.cards = shuffle(s.original, seed)
	} else {
		s.cards = make([]models.Card, len(s.original))
		copy(s.cards, s.original)
	}
	s.position = 0
	s.flipped = false
	s.judgments = make(map[uint]bool)
}

// Restart zeroes position, flip state, and judgments while keeping the
// current order, shuffled or not.
func (s *Session) Restart() {
	s.position = 0
	s.flipped = false
	s.judgments = make(map[uint]bool)
}

// Progress is the fraction of the deck reached, in (0, 1].
func (s *Session) Progress() float64 {
	return float64(s.position+1) / float64(len(s.cards))
}

// CorrectCount returns how many judged cards were marked correct.
func (s *Session) CorrectCount() int {
	correct := 0
	for _, ok := range s.judgments {
		if ok {
			correct++
		}
	}
	return correct
}

// JudgedCount returns how many cards carry a verdict.
func (s *Session) JudgedCount() int {
	return len(s.judgments)
}

// Accuracy is the rounded percentage of judged cards marked correct, 0 when
// nothing has been judged yet.
func (s *Session) Accuracy() int {
	total := len(s.judgments)
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.CorrectCount()) / float64(total) * 100))
}

// Complete reports whether the last card in the current order has been
// judged. Judging four of five cards is not completion unless one of them
// is positionally last.
func (s *Session) Complete() bool {
	_, judged := s.judgments[s.cards[len(s.cards)-1].ID]
	return judged
}

// shuffle produces a seeded pseudo-random permutation. The generator is the
// small linear-congruential step the web client has always used; the only
// contract is that the same seed yields the same order.
func shuffle(cards []models.Card, seed int64) []models.Card {
	shuffled := make([]models.Card, len(cards))
	copy(shuffled, cards)
	for i := len(shuffled) - 1; i > 0; i-- {
		j := (seed*int64(i+1)*9301 + 49297) % 233280
		if j < 0 {
			j = -j
		}
		j %= int64(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}
