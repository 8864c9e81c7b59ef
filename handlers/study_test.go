package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type studyViewResponse struct {
	SessionID    string  `json:"sessionId"`
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
	Judged       *bool   `json:"judged"`
}

func startSession(t *testing.T, env *testEnv, subject string, fronts ...string) (string, studyViewResponse) {
	t.Helper()
	deck := env.seedDeck(t, subject, "Study deck", "")
	env.seedCards(t, deck.ID, fronts...)

	rec, resp := env.do(t, "POST", fmt.Sprintf("/api/decks/%d/study", deck.ID), "", as(subject))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var view studyViewResponse
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.NotEmpty(t, view.SessionID)
	return view.SessionID, view
}

func (e *testEnv) studyDo(t *testing.T, method, path, body, subject string) (int, studyViewResponse) {
	t.Helper()
	rec, resp := e.do(t, method, path, body, as(subject))
	var view studyViewResponse
	if resp.Success {
		require.NoError(t, json.Unmarshal(resp.Data, &view))
	}
	return rec.Code, view
}

func TestStartStudySession(t *testing.T) {
	env := newTestEnv(t)
	id, view := startSession(t, env, alice, "A", "B", "C")

	assert.NotEmpty(t, id)
	assert.Equal(t, 0, view.Position)
	assert.Equal(t, 3, view.Total)
	assert.Equal(t, "A", view.Text)
	assert.Equal(t, "front", view.Side)
	assert.InDelta(t, 1.0/3.0, view.Progress, 1e-9)
	assert.False(t, view.Complete)
}

func TestStartStudySessionEmptyDeck(t *testing.T) {
	env := newTestEnv(t)
	deck := env.seedDeck(t, alice, "Empty", "")

	rec, resp := env.do(t, "POST", fmt.Sprintf("/api/decks/%d/study", deck.ID), "", as(alice))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This deck has no cards to study", resp.Error)
}

func TestStudyFlipShowsBack(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B")

	code, view := env.studyDo(t, "POST", "/api/study/"+id+"/flip", "", alice)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "back", view.Side)
	assert.Equal(t, "A back", view.Text)

	// Advancing resets to the front of the next card.
	code, view = env.studyDo(t, "POST", "/api/study/"+id+"/next", "", alice)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "front", view.Side)
	assert.Equal(t, "B", view.Text)
}

func TestStudyNavigationClamps(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B", "C")

	for i := 0; i < 5; i++ {
		code, view := env.studyDo(t, "POST", "/api/study/"+id+"/next", "", alice)
		require.Equal(t, http.StatusOK, code)
		assert.LessOrEqual(t, view.Position, 2)
	}

	_, view := env.studyDo(t, "GET", "/api/study/"+id, "", alice)
	assert.Equal(t, 2, view.Position)

	for i := 0; i < 5; i++ {
		env.studyDo(t, "POST", "/api/study/"+id+"/previous", "", alice)
	}
	_, view = env.studyDo(t, "GET", "/api/study/"+id, "", alice)
	assert.Equal(t, 0, view.Position)
}

func TestStudyJudgeFlow(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B", "C", "D")

	code, view := env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":true}`, alice)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, view.Position, "judging a non-last card advances")
	assert.Equal(t, 1, view.JudgedCount)

	env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":true}`, alice)
	env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":true}`, alice)
	_, view = env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":false}`, alice)

	assert.Equal(t, 3, view.Position, "judging the last card stays in place")
	assert.Equal(t, "front", view.Side)
	assert.Equal(t, 75, view.Accuracy)
	assert.True(t, view.Complete)
}

func TestStudyJudgeRequiresVerdict(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A")

	code, _ := env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{}`, alice)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestStudyShuffleIsSeedDeterministic(t *testing.T) {
	fronts := make([]string, 12)
	for i := range fronts {
		fronts[i] = fmt.Sprintf("card-%02d", i)
	}

	firstOrder := func() string {
		env := newTestEnv(t)
		id, _ := startSession(t, env, alice, fronts...)
		code, view := env.studyDo(t, "POST", "/api/study/"+id+"/shuffle", `{"seed":123456789}`, alice)
		require.Equal(t, http.StatusOK, code)
		require.True(t, view.Shuffled)
		require.Equal(t, 0, view.Position)
		return view.Text
	}

	assert.Equal(t, firstOrder(), firstOrder(), "same seed, same order")
}

func TestStudyShuffleClearsJudgments(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B", "C")

	env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":true}`, alice)
	_, view := env.studyDo(t, "POST", "/api/study/"+id+"/shuffle", `{"seed":7}`, alice)

	assert.Equal(t, 0, view.JudgedCount)
	assert.Equal(t, 0, view.Accuracy)
}

func TestStudyRestartKeepsOrder(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B", "C")

	_, shuffled := env.studyDo(t, "POST", "/api/study/"+id+"/shuffle", `{"seed":42}`, alice)
	first := shuffled.Text

	env.studyDo(t, "POST", "/api/study/"+id+"/judge", `{"correct":false}`, alice)
	_, view := env.studyDo(t, "POST", "/api/study/"+id+"/restart", "", alice)

	assert.Equal(t, 0, view.Position)
	assert.Equal(t, 0, view.JudgedCount)
	assert.True(t, view.Shuffled)
	assert.Equal(t, first, view.Text, "restart keeps the shuffled order")
}

func TestStudySessionIsSubjectScoped(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A", "B")

	code, _ := env.studyDo(t, "GET", "/api/study/"+id, "", "auth0|mallory")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = env.studyDo(t, "GET", "/api/study/unknown-session", "", alice)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEndStudySession(t *testing.T) {
	env := newTestEnv(t)
	id, _ := startSession(t, env, alice, "A")

	rec, resp := env.do(t, "DELETE", "/api/study/"+id, "", as(alice))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	code, _ := env.studyDo(t, "GET", "/api/study/"+id, "", alice)
	assert.Equal(t, http.StatusNotFound, code)
}
