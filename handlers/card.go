package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
)

// ListCards returns the cards of a deck, owner only.
func (api *API) ListCards(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("ListCards: failed to fetch cards for deck %d: %v", deck.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to fetch cards")
		return
	}
	success(w, http.StatusOK, cards)
}

// CreateCard adds a single user-authored card to a deck.
func (api *API) CreateCard(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Front = strings.TrimSpace(req.Front)
	req.Back = strings.TrimSpace(req.Back)
	if err := validate.Struct(req); err != nil {
		failure(w, http.StatusBadRequest, firstViolation(err))
		return
	}

	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	card := models.Card{
		DeckID: deck.ID,
		Front:  req.Front,
		Back:   req.Back,
	}
	if err := api.Store.CreateCard(&card); err != nil {
		log.Printf("CreateCard: %v", err)
		failure(w, http.StatusInternalServerError, "Failed to create card")
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	success(w, http.StatusCreated, card)
}

// UpdateCard rewrites a card's front and back. The card must belong to the
// guarded deck; a card ID from another deck is treated as missing.
func (api *API) UpdateCard(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}

	var req cardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Front = strings.TrimSpace(req.Front)
	req.Back = strings.TrimSpace(req.Back)
	if err := validate.Struct(req); err != nil {
		failure(w, http.StatusBadRequest, firstViolation(err))
		return
	}

	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	cardID, ok := parseID(r.PathValue("cardID"))
	if !ok {
		failure(w, http.StatusBadRequest, "Invalid card ID")
		return
	}
	card, err := api.Store.CardByIDInDeck(cardID, deck.ID)
	if errors.Is(err, store.ErrNotFound) {
		failure(w, http.StatusNotFound, "Card not found")
		return
	}
	if err != nil {
		log.Printf("UpdateCard: failed to load card %d: %v", cardID, err)
		failure(w, http.StatusInternalServerError, "Failed to update card")
		return
	}

	updated, err := api.Store.UpdateCard(card.ID, req.Front, req.Back)
	if err != nil {
		log.Printf("UpdateCard: failed to update card %d: %v", card.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to update card")
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	success(w, http.StatusOK, updated)
}

// DeleteCard removes one card from a deck.
func (api *API) DeleteCard(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	deck, ok := api.guardDeck(w, r, subject)
	if !ok {
		return
	}

	cardID, ok := parseID(r.PathValue("cardID"))
	if !ok {
		failure(w, http.StatusBadRequest, "Invalid card ID")
		return
	}
	card, err := api.Store.CardByIDInDeck(cardID, deck.ID)
	if errors.Is(err, store.ErrNotFound) {
		failure(w, http.StatusNotFound, "Card not found")
		return
	}
	if err != nil {
		log.Printf("DeleteCard: failed to load card %d: %v", cardID, err)
		failure(w, http.StatusInternalServerError, "Failed to delete card")
		return
	}

	if err := api.Store.DeleteCard(card.ID); err != nil {
		log.Printf("DeleteCard: failed to delete card %d: %v", card.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to delete card")
		return
	}

	api.Views.Bump(viewcache.DeckView(deck.ID), viewcache.Dashboard)
	success(w, http.StatusOK, nil)
}
