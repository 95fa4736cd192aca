package api

import (
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/vytor/flashycardy/internal/models"
	"github.com/vytor/flashycardy/internal/services"
)

type deckResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Cards       []cardResponse `json:"cards,omitempty"`
}

type cardResponse struct {
	ID        int64     `json:"id"`
	Front     string    `json:"front"`
	Back      string    `json:"back"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type studyResponse struct {
	SessionID string `json:"session_id"`
	DeckID    int64  `json:"deck_id"`
	CardID    int64  `json:"card_id"`
	Text      string `json:"text"`
	Position  int    `json:"position"`
	Total     int    `json:"total"`
	Studied   int    `json:"studied"`
	Revealed  bool   `json:"revealed"`
	Completed bool   `json:"completed"`
	Progress  int    `json:"progress_percent"`
}

func newDeckResponse(d models.Deck, _ int) deckResponse {
	return deckResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func newCardResponse(c models.Card, _ int) cardResponse {
	return cardResponse{
		ID:        c.ID,
		Front:     c.Front,
		Back:      c.Back,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newStudyResponse(v *services.StudyView) studyResponse {
	return studyResponse{
		SessionID: v.SessionID,
		DeckID:    v.Deck.ID,
		CardID:    v.Card.ID,
		Text:      v.Text,
		Position:  v.Position,
		Total:     v.Total,
		Studied:   v.Studied,
		Revealed:  v.Revealed,
		Completed: v.Completed,
		Progress:  v.ProgressPercent(),
	}
}

func (s *Server) handleAPIListDecks(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	decks, err := s.DeckService.ListDecks(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{
		"decks": lo.Map(decks, newDeckResponse),
		"count": len(decks),
	})
}

func (s *Server) handleAPIGetDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.GetDeckWithCards(r.Context(), user.ID, deckID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	resp := newDeckResponse(deck.Deck, 0)
	resp.Cards = lo.Map(deck.Cards, newCardResponse)
	writeJSON(w, r, http.StatusOK, map[string]any{"deck": resp})
}
