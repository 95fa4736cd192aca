package api

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/vytor/flashycardy/internal/auth"
	"github.com/vytor/flashycardy/internal/logger"
	"github.com/vytor/flashycardy/internal/services"
)

// TokenIssuer signs session tokens for signed-in users.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// Pinger reports database reachability for the readiness probe.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	AuthService  services.AuthService
	DeckService  services.DeckService
	CardService  services.CardService
	StudyService services.StudyService

	Auth   auth.Authenticator
	Tokens TokenIssuer
	DB     Pinger

	Templates *template.Template
	Static    fs.FS

	SecureCookies      bool
	CORSAllowedOrigins []string
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["user"]; !ok {
		data["user"] = userFromContext(r.Context())
	}
	q := r.URL.Query()
	if _, ok := data["notice"]; !ok {
		data["notice"] = q.Get("notice")
	}
	if _, ok := data["error"]; !ok {
		data["error"] = q.Get("error")
	}
	data["limits"] = limits

	log := logger.FromContext(r.Context())
	var buf bytes.Buffer
	if err := s.Templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Debug("failed to write response: %v", err)
	}
}
