package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashycardy/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(s.Static))))

	r.Group(func(r chi.Router) {
		r.Use(s.userMiddleware)

		r.Get("/", s.handleHome)
		r.Get("/sign-in", s.handleSignInPage)
		r.Post("/sign-in", s.handleSignIn)
		r.Get("/sign-up", s.handleSignUpPage)
		r.Post("/sign-up", s.handleSignUp)
		r.Post("/sign-out", s.handleSignOut)

		r.Group(func(r chi.Router) {
			r.Use(s.requireUser)

			r.Get("/dashboard", s.handleDashboard)
			r.Post("/decks", s.handleCreateDeck)
			r.Route("/decks/{deckID}", func(r chi.Router) {
				r.Get("/", s.handleDeck)
				r.Post("/", s.handleUpdateDeck)
				r.Post("/delete", s.handleDeleteDeck)

				r.Post("/cards", s.handleCreateCard)
				r.Post("/cards/{cardID}", s.handleUpdateCard)
				r.Post("/cards/{cardID}/delete", s.handleDeleteCard)

				r.Get("/study", s.handleStartStudy)
				r.Get("/study/{sessionID}", s.handleStudy)
				r.Post("/study/{sessionID}/end", s.handleEndStudy)
				r.Post("/study/{sessionID}/{action}", s.handleStudyAction)
			})
		})

		r.Route("/api", func(r chi.Router) {
			r.Use(s.corsMiddleware())
			r.Use(s.requireUser)

			r.Get("/decks", s.handleAPIListDecks)
			r.Get("/decks/{deckID}", s.handleAPIGetDeck)
		})

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			s.handleError(w, r, errors.NewNotFoundError("page", r.URL.Path))
		})
	})

	return r
}
