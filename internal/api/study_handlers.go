package api

import (
	stderrors "errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/study"
)

func studyPath(deckID int64) string {
	return deckPath(deckID) + "/study"
}

// handleStartStudy opens a fresh session and sends the browser to it. Decks
// without cards bounce back to the deck page.
func (s *Server) handleStartStudy(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	sessionID, err := s.StudyService.Start(r.Context(), user.ID, deckID)
	if stderrors.Is(err, study.ErrEmptyDeck) {
		q := url.Values{"error": {"Add some cards to this deck before studying."}}
		http.Redirect(w, r, deckPath(deckID)+"?"+q.Encode(), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	http.Redirect(w, r, studyPath(deckID)+"/"+url.PathEscape(sessionID), http.StatusSeeOther)
}

func (s *Server) handleStudy(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	view, err := s.StudyService.View(r.Context(), user.ID, deckID, sessionID)
	if stderrors.Is(err, study.ErrSessionNotFound) {
		logger.FromContext(r.Context()).Debug("study session gone, starting over: id=%s", sessionID)
		http.Redirect(w, r, studyPath(deckID), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.render(w, r, "pages/study.html", pageData{
		"title":   "Study " + view.Deck.Name,
		"session": view,
	})
}

func (s *Server) handleStudyAction(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	action, err := study.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		s.handleError(w, r, errors.NewBadRequestError(err.Error()))
		return
	}

	view, err := s.StudyService.Apply(r.Context(), user.ID, deckID, sessionID, action)
	if stderrors.Is(err, study.ErrSessionNotFound) {
		http.Redirect(w, r, studyPath(deckID), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if isAPIRequest(r) {
		writeJSON(w, r, http.StatusOK, newStudyResponse(view))
		return
	}
	http.Redirect(w, r, studyPath(deckID)+"/"+url.PathEscape(sessionID), http.StatusSeeOther)
}

func (s *Server) handleEndStudy(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())
	deckID, err := urlID(r, "deckID", "deck")
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	s.StudyService.End(r.Context(), user.ID, chi.URLParam(r, "sessionID"))
	http.Redirect(w, r, deckPath(deckID), http.StatusSeeOther)
}
