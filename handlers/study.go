package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/andrewpaige1/flashdeck-api/study"
)

// studyView is the client's picture of a session after any operation. All
// derived values are recomputed here, never stored.
type studyView struct {
	DeckID       uint    `json:"deckId"`
	Position     int     `json:"position"`
	Total        int     `json:"total"`
	CardID       uint    `json:"cardId"`
	Text         string  `json:"text"`
	Side         string  `json:"side"`
	Shuffled     bool    `json:"shuffled"`
	Progress     float64 `json:"progress"`
	CorrectCount int     `json:"correctCount"`
	JudgedCount  int     `json:"judgedCount"`
	Accuracy     int     `json:"accuracy"`
	Complete     bool    `json:"complete"`
	Judged       *bool   `json:"judged,omitempty"`
}

type startStudyResponse struct {
	SessionID string `json:"sessionId"`
	studyView
}

func viewOf(s *study.Session) studyView {
	card := s.Current()
	view := studyView{
		DeckID:       s.DeckID,
		Position:     s.Position(),
		Total:        s.Len(),
		CardID:       card.ID,
		Text:         card.Front,
		Side:         "front",
		Shuffled:     s.Shuffled(),
		Progress:     s.Progress(),
		CorrectCount: s.CorrectCount(),
		JudgedCount:  s.JudgedCount(),
		Accuracy:     s.Accuracy(),
		Complete:     s.Complete(),
	}
	if s.Flipped() {
		view.Text = card.Back
		view.Side = "back"
	}
	if correct, judged := s.Judgment(); judged {
		verdict := correct
		view.Judged = &verdict
	}
	return view
}

// StartStudySession loads the deck's cards and opens a session over them.
// The card list is fixed at start: cards added or edited afterwards do not
// appear until a new session.
func (api *API) StartStudySession(w http.ResponseWriter, r *http.Request) {
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
		log.Printf("StartStudySession: failed to fetch cards for deck %d: %v", deck.ID, err)
		failure(w, http.StatusInternalServerError, "Failed to start study session")
		return
	}
	if len(cards) == 0 {
		failure(w, http.StatusBadRequest, "This deck has no cards to study")
		return
	}

	id, err := api.Sessions.Start(deck.ID, subject, cards)
	if err != nil {
		log.Printf("StartStudySession: failed to create session: %v", err)
		failure(w, http.StatusInternalServerError, "Failed to start study session")
		return
	}

	var view studyView
	api.Sessions.Do(id, subject, func(s *study.Session) { view = viewOf(s) })
	success(w, http.StatusCreated, startStudyResponse{SessionID: id, studyView: view})
}

// GetStudySession returns the current view without changing state.
func (api *API) GetStudySession(w http.ResponseWriter, r *http.Request) {
	api.studyOp(func(s *study.Session) {})(w, r)
}

// StudyFlip toggles front/back on the current card.
func (api *API) StudyFlip(w http.ResponseWriter, r *http.Request) {
	api.studyOp(func(s *study.Session) { s.Flip() })(w, r)
}

// StudyNext advances a card, clamped at the end of the deck.
func (api *API) StudyNext(w http.ResponseWriter, r *http.Request) {
	api.studyOp(func(s *study.Session) { s.Next() })(w, r)
}

// StudyPrevious goes back a card, clamped at the start.
func (api *API) StudyPrevious(w http.ResponseWriter, r *http.Request) {
	api.studyOp(func(s *study.Session) { s.Previous() })(w, r)
}

// StudyRestart starts the pass over, keeping the current order.
func (api *API) StudyRestart(w http.ResponseWriter, r *http.Request) {
	api.studyOp(func(s *study.Session) { s.Restart() })(w, r)
}

// StudyShuffle toggles shuffle. The seed comes from the client so a replay
// with the same seed reproduces the order; absent a body, the current time
// seeds the shuffle.
func (api *API) StudyShuffle(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed *int64 `json:"seed"`
	}
	// An empty body is fine; a malformed one is not.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		failure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	seed := time.Now().UnixMilli()
	if req.Seed != nil {
		seed = *req.Seed
	}
	api.studyOp(func(s *study.Session) { s.ToggleShuffle(seed) })(w, r)
}

// StudyJudge records the verdict for the current card and advances.
func (api *API) StudyJudge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct *bool `json:"correct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Correct == nil {
		failure(w, http.StatusBadRequest, "A correct verdict is required")
		return
	}
	api.studyOp(func(s *study.Session) { s.Judge(*req.Correct) })(w, r)
}

// EndStudySession discards the session and all of its state.
func (api *API) EndStudySession(w http.ResponseWriter, r *http.Request) {
	subject, ok := requireSubject(w, r)
	if !ok {
		return
	}
	api.Sessions.End(r.PathValue("sessionID"), subject)
	success(w, http.StatusOK, nil)
}

// studyOp applies one operation to the named session and answers with the
// resulting view. Unknown, expired, and foreign sessions all look the same.
func (api *API) studyOp(op func(*study.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject, ok := requireSubject(w, r)
		if !ok {
			return
		}

		var view studyView
		found := api.Sessions.Do(r.PathValue("sessionID"), subject, func(s *study.Session) {
			op(s)
			view = viewOf(s)
		})
		if !found {
			failure(w, http.StatusNotFound, "Study session not found")
			return
		}
		success(w, http.StatusOK, view)
	}
}
