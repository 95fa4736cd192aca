package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/vytor/flashycardy/internal/errors"
	"github.com/vytor/flashycardy/internal/logger"
)

// handleError centralizes error handling for HTTP responses
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewInternalError(err)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else if appErr.Status >= 400 {
		log.Warn("client error: %v", appErr)
	} else {
		log.Debug("error: %v", appErr)
	}

	if isAPIRequest(r) {
		writeJSON(w, r, appErr.Status, map[string]any{
			"error": map[string]any{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	s.renderStatus(w, r, appErr.Status, "pages/error.html", pageData{
		"title":   http.StatusText(appErr.Status),
		"status":  appErr.Status,
		"message": appErr.Message,
		"error":   "",
		"notice":  "",
	})
}

// formError sends a rejected form back to the page it came from with the
// message in ?error=. Not-found and server errors go through handleError.
func (s *Server) formError(w http.ResponseWriter, r *http.Request, err error, back string, keep url.Values) {
	appErr, ok := errors.As(err)
	if !ok || appErr.Status >= 500 || appErr.Code == errors.ErrCodeNotFound {
		s.handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Debug("form rejected: %v", appErr)

	q := url.Values{}
	for k, v := range keep {
		q[k] = v
	}
	q.Set("error", appErr.Message)
	http.Redirect(w, r, back+"?"+q.Encode(), http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}
