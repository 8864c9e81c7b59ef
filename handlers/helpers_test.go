package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andrewpaige1/flashdeck-api/ai"
	"github.com/andrewpaige1/flashdeck-api/auth"
	"github.com/andrewpaige1/flashdeck-api/models"
	"github.com/andrewpaige1/flashdeck-api/store"
	"github.com/andrewpaige1/flashdeck-api/study"
	"github.com/andrewpaige1/flashdeck-api/viewcache"
	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type testEnv struct {
	api       *API
	mux       *http.ServeMux
	store     *store.Store
	completer *stubCompleter
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Deck{}, &models.Card{}))

	completer := &stubCompleter{}
	api := &API{
		Store:     store.New(db),
		Views:     viewcache.New(),
		Sessions:  study.NewManager(),
		Generator: ai.NewGenerator(completer),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/decks", api.ListDecks)
	mux.HandleFunc("POST /api/decks", api.CreateDeck)
	mux.HandleFunc("GET /api/decks/{deckID}", api.GetDeck)
	mux.HandleFunc("PUT /api/decks/{deckID}", api.UpdateDeck)
	mux.HandleFunc("DELETE /api/decks/{deckID}", api.DeleteDeck)
	mux.HandleFunc("GET /api/decks/{deckID}/cards", api.ListCards)
	mux.HandleFunc("POST /api/decks/{deckID}/cards", api.CreateCard)
	mux.HandleFunc("PUT /api/decks/{deckID}/cards/{cardID}", api.UpdateCard)
	mux.HandleFunc("DELETE /api/decks/{deckID}/cards/{cardID}", api.DeleteCard)
	mux.HandleFunc("POST /api/decks/{deckID}/generate", api.GenerateCards)
	mux.HandleFunc("POST /api/decks/{deckID}/study", api.StartStudySession)
	mux.HandleFunc("GET /api/study/{sessionID}", api.GetStudySession)
	mux.HandleFunc("POST /api/study/{sessionID}/flip", api.StudyFlip)
	mux.HandleFunc("POST /api/study/{sessionID}/next", api.StudyNext)
	mux.HandleFunc("POST /api/study/{sessionID}/previous", api.StudyPrevious)
	mux.HandleFunc("POST /api/study/{sessionID}/shuffle", api.StudyShuffle)
	mux.HandleFunc("POST /api/study/{sessionID}/judge", api.StudyJudge)
	mux.HandleFunc("POST /api/study/{sessionID}/restart", api.StudyRestart)
	mux.HandleFunc("DELETE /api/study/{sessionID}", api.EndStudySession)

	return &testEnv{api: api, mux: mux, store: store.New(db), completer: completer}
}

// as simulates a request that passed token validation for the given
// subject. An empty subject simulates a request with no valid token.
func as(subject string, features ...string) func(*http.Request) *http.Request {
	return func(r *http.Request) *http.Request {
		if subject == "" {
			return r
		}
		claims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: subject},
			CustomClaims:     &auth.CustomClaims{Features: features},
		}
		return r.WithContext(context.WithValue(r.Context(), jwtmiddleware.ContextKey{}, claims))
	}
}

type envelope struct {
	Success             bool            `json:"success"`
	Data                json.RawMessage `json:"data"`
	Error               string          `json:"error"`
	RequiresUpgrade     bool            `json:"requiresUpgrade"`
	RequiresDescription bool            `json:"requiresDescription"`
}

func (e *testEnv) do(t *testing.T, method, target, body string, authfn func(*http.Request) *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = authfn(req)
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func (e *testEnv) seedDeck(t *testing.T, subject, name, description string) *models.Deck {
	t.Helper()
	deck := &models.Deck{UserID: subject, Name: name, Description: description}
	require.NoError(t, e.store.CreateDeck(deck))
	return deck
}

func (e *testEnv) seedCards(t *testing.T, deckID uint, fronts ...string) []models.Card {
	t.Helper()
	cards := make([]models.Card, 0, len(fronts))
	for _, front := range fronts {
		card := models.Card{DeckID: deckID, Front: front, Back: front + " back"}
		require.NoError(t, e.store.CreateCard(&card))
		cards = append(cards, card)
	}
	return cards
}
