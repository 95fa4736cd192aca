package api

import (
	"net/http"
	"net/url"

	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/services"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("rendering home page")
	s.render(w, r, "pages/home.html", nil)
}

func (s *Server) handleSignInPage(w http.ResponseWriter, r *http.Request) {
	if userFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "pages/sign-in.html", pageData{
		"title": "Sign in",
		"email": r.URL.Query().Get("email"),
	})
}

func (s *Server) handleSignUpPage(w http.ResponseWriter, r *http.Request) {
	if userFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	q := r.URL.Query()
	s.render(w, r, "pages/sign-up.html", pageData{
		"title": "Sign up",
		"email": q.Get("email"),
		"name":  q.Get("name"),
	})
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")

	user, err := s.AuthService.SignIn(r.Context(), email, r.FormValue("password"))
	if err != nil {
		s.formError(w, r, err, "/sign-in", url.Values{"email": {email}})
		return
	}

	if !s.startSession(w, r, user.ID) {
		return
	}
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	input := services.SignUpInput{
		Email:    r.FormValue("email"),
		Name:     r.FormValue("name"),
		Password: r.FormValue("password"),
	}

	user, err := s.AuthService.SignUp(r.Context(), input)
	if err != nil {
		s.formError(w, r, err, "/sign-up", url.Values{"email": {input.Email}, "name": {input.Name}})
		return
	}

	if !s.startSession(w, r, user.ID) {
		return
	}
	redirectWithNotice(w, r, "/dashboard", "Welcome to FlashyCardy!")
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession issues a token for userID and sets the session cookie.
func (s *Server) startSession(w http.ResponseWriter, r *http.Request, userID string) bool {
	token, expires, err := s.Tokens.Issue(userID)
	if err != nil {
		s.handleError(w, r, errors.NewInternalError(err))
		return false
	}
	s.setSessionCookie(w, token, expires)
	logger.FromContext(r.Context()).Info("session started: user_id=%s", userID)
	return true
}
