package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/andrewpaige1/flashdeck-api/ai"
	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
)

// minDescriptionLength is the shortest deck description AI generation will
// work from. Generation quality depends on it.
const minDescriptionLength = 10

type generateResult struct {
	Count int `json:"count"`
}

// GenerateCards asks the AI provider for a batch of cards and persists
// them under the deck. Persistence is a sequence of single-row inserts: a
// mid-batch failure leaves the earlier cards committed and the error text
// reports how many made it.
func (api *API) GenerateCards(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	if !auth.HasFeature(r, auth.FeatureAIGeneration) {
		failureUpgrade(w, http.StatusForbidden,
			"AI flashcard generation is a Pro feature. Upgrade to use it.")
		return
	}

	if len(strings.TrimSpace(deck.Description)) < minDescriptionLength {
		failureDescription(w, http.StatusBadRequest,
			"Please add a meaningful description to your deck before using AI generation.")
		return
	}

	generated, err := api.Generator.Generate(r.Context(), deck.Name, deck.Description)
	if err != nil {
		log.Printf("GenerateCards: generation failed for deck %d: %v", deck.ID, err)
		failure(w, http.StatusBadGateway, ai.FailureMessage(err))
		return
	}

	cards := make([]models.Card, len(generated))
	for i, g := range generated {
		cards[i] = models.Card{DeckID: deck.ID, Front: g.Front, Back: g.Back}
	}

	inserted, err := api.Store.CreateCards(cards)
	if err != nil {
		log.Printf("GenerateCards: partial insert for deck %d: %v", deck.ID, err)
		if inserted > 0 {
			// Some rows committed before the failure; the views are stale.
			api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
		}
		failure(w, http.StatusInternalServerError,
			fmt.Sprintf("Generation was interrupted: %d of %d cards were saved", inserted, len(cards)))
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	log.Printf("GenerateCards: generated %d cards for deck %d", inserted, deck.ID)
	success(w, http.StatusCreated, generateResult{Count: inserted})
}
