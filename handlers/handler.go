package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/andrewpaige1/flashdeck-api/ai"
	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/andrewpaige1/flashdeck-api/study"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
)

// API bundles the collaborators the handlers need.
type API struct {
	Store     *store.Store
	Views     *viewcache.Views
	Sessions  *study.Manager
	Generator *ai.Generator
}

// requireSubject resolves the caller identity, writing Unauthorized when no
// valid token backed the request. Every mutation starts here.
func requireSubject(w http.ResponseWriter, r *http.Request) (string, bool) {
	subject, ok := auth.Subject(r)
	if !ok {
		failure(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return subject, true
}

// guardDeck is the ownership guard: it resolves the deck from the request
// path only when the subject owns it. A missing deck and a deck owned by
// someone else produce the same response so callers cannot probe for
// existence. Every deck and card mutation must pass through here.
func (api *API) guardDeck(w http.ResponseWriter, r *http.Request, subject string) (*models.Deck, bool) {
	deckID, ok := parseID(r.PathValue("deckID"))
	if !ok {
		failure(w, http.StatusBadRequest, "Invalid deck ID")
		return nil, false
	}

	deck, err := api.Store.DeckByIDForUser(deckID, subject)
	if errors.Is(err, store.ErrNotFound) {
		failure(w, http.StatusNotFound, "Deck not found or access denied")
		return nil, false
	}
	if err != nil {
		log.Printf("guardDeck: failed to load deck %d: %v", deckID, err)
		failure(w, http.StatusInternalServerError, "Failed to load deck")
		return nil, false
	}
	return deck, true
}

func parseID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
