package api

import (
	"net/http"

	"github.com/vytor/flashycardy/internal/services"
)

func cardInput(r *http.Request) services.CardInput {
	return services.CardInput{
		Front: r.FormValue("front"),
		Back:  r.FormValue("back"),
	}
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := s.CardService.CreateCard(r.Context(), user.ID, deckID, cardInput(r)); err != nil {
		s.formError(w, r, err, deckPath(deckID), nil)
		return
	}
	redirectWithNotice(w, r, deckPath(deckID), "Card added successfully!")
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID", "card")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := s.CardService.UpdateCard(r.Context(), user.ID, deckID, cardID, cardInput(r)); err != nil {
		s.formError(w, r, err, deckPath(deckID), nil)
		return
	}
	redirectWithNotice(w, r, deckPath(deckID), "Card updated successfully!")
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	cardID, err := urlID(r, "cardID", "card")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.CardService.DeleteCard(r.Context(), user.ID, deckID, cardID); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectWithNotice(w, r, deckPath(deckID), "Card deleted successfully!")
}
