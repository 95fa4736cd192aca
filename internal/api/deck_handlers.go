package api

import (
	"net/http"

	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/services"
)

func deckInput(r *http.Request) services.DeckInput {
	return services.DeckInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(ctx)
	logger.FromContext(ctx).Debug("rendering dashboard")

	decks, err := s.DeckService.ListDecks(ctx, user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	count, err := s.DeckService.CountDecks(ctx, user.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/dashboard.html", pageData{
		"title":     "Dashboard",
		"decks":     decks,
		"deckCount": count,
	})
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	deck, err := s.DeckService.CreateDeck(r.Context(), user.ID, deckInput(r))
	if err != nil {
		s.formError(w, r, err, "/dashboard", nil)
		return
	}
	redirectWithNotice(w, r, deckPath(deck.ID), "Deck created successfully!")
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
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

	s.render(w, r, "pages/deck.html", pageData{
		"title": deck.Name,
		"deck":  deck,
	})
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if _, err := s.DeckService.UpdateDeck(r.Context(), user.ID, deckID, deckInput(r)); err != nil {
		s.formError(w, r, err, deckPath(deckID), nil)
		return
	}
	redirectWithNotice(w, r, deckPath(deckID), "Deck updated successfully!")
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.DeckService.DeleteDeck(r.Context(), user.ID, deckID); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectWithNotice(w, r, "/dashboard", "Deck deleted successfully!")
}
