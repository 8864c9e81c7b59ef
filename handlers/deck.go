package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
)

// freeDeckLimit is the deck cap for callers without the unlimited_decks
// feature.
const freeDeckLimit = 3

type deckSummary struct {
	models.Deck
	CardCount int64 `json:"cardCount"`
}

// ListDecks returns the caller's decks with card counts, the dashboard
// listing.
func (api *API) ListDecks(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}

	decks, err := api.Store.DecksByUser(subject)
	if err != nil {
		log.Printf("ListDecks: failed to fetch decks: %v", err)
		failure(w, http.StatusInternalServerError, "Failed to fetch decks")
		return
	}

	summaries := make([]deckSummary, 0, len(decks))
	for _, deck := range decks {
		count, err := api.Store.CountCardsByDeck(deck.ID)
		if err != nil {
			log.Printf("ListDecks: failed to count cards for deck %d: %v", deck.ID, err)
			failure(w, http.StatusInternalServerError, "Failed to fetch decks")
			return
		}
		deck.Cards = nil
		summaries = append(summaries, deckSummary{Deck: deck, CardCount: count})
	}

	w.Header().Set("X-View-Version", fmt.Sprint(api.Views.Version(viewcache.Dashboard)))
	success(w, http.StatusOK, summaries)
}

// CreateDeck creates a deck for the caller, enforcing the free-plan cap.
// The count check and the insert are separate statements: two simultaneous
// requests can both pass the check and jointly exceed the cap. Accepted
// race, same as the web app.
func (api *API) CreateDeck(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}

	var req deckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate.Struct(req); err != nil {
		failure(w, http.StatusBadRequest, firstViolation(err))
		return
	}

	if !auth.HasFeature(r, auth.FeatureUnlimitedDecks) {
		count, err := api.Store.CountDecksByUser(subject)
		if err != nil {
			log.Printf("CreateDeck: failed to count decks: %v", err)
			failure(w, http.StatusInternalServerError, "Failed to create deck")
			return
		}
		if count >= freeDeckLimit {
			failureUpgrade(w, http.StatusForbidden,
				fmt.Sprintf("Free plan is limited to %d decks. Upgrade to create unlimited decks.", freeDeckLimit))
			return
		}
	}

	deck := models.Deck{
		UserID:      subject,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := api.Store.CreateDeck(&deck); err != nil {
		log.Printf("CreateDeck: %v", err)
		failure(w, http.StatusInternalServerError, "Failed to create deck")
		return
	}

	api.Views.Bump(viewcache.Dashboard)
	log.Printf("CreateDeck: created deck %d for subject %s", deck.ID, subject)
	success(w, http.StatusCreated, deck)
}

// GetDeck returns one deck with its cards, owner only.
func (api *API) GetDeck(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	cards, err := api.Store.CardsByDeck(deck.ID)
	if err != nil {
		log.Printf("GetDeck: failed to fetch cards for deck %d: %v", deck.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to fetch deck")
		return
	}
	deck.Cards = cards

	w.Header().Set("X-View-Version", fmt.Sprint(api.Views.Version(viewcache.DeckView(deck.ID))))
	success(w, http.StatusOK, deck)
}

// UpdateDeck changes a deck's name and description.
func (api *API) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}

	var req deckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validate.Struct(req); err != nil {
		failure(w, http.StatusBadRequest, firstViolation(err))
		return
	}

	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	updated, err := api.Store.UpdateDeck(deck.ID, req.Name, req.Description)
	if err != nil {
		log.Printf("UpdateDeck: failed to update deck %d: %v", deck.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to update deck")
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	success(w, http.StatusOK, updated)
}

// DeleteDeck removes a deck and all of its cards.
func (api *API) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	if err := api.Store.DeleteDeck(deck.ID); err != nil {
		log.Printf("DeleteDeck: failed to delete deck %d: %v", deck.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to delete deck")
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	log.Printf("DeleteDeck: deleted deck %d for subject %s", deck.ID, subject)
	success(w, http.StatusOK, nil)
}
