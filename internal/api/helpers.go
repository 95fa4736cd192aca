package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/flashycardy/internal/errors"
)

// urlID parses a numeric path parameter. Anything unparsable is reported as
// not found, like a missing row.
func urlID(r *http.Request, param, resource string) (int64, error) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.NewNotFoundError(resource, raw)
	}
	return id, nil
}

func deckPath(deckID int64) string {
	return "/decks/" + strconv.FormatInt(deckID, 10)
}

func redirectWithNotice(w http.ResponseWriter, r *http.Request, path, notice string) {
	http.Redirect(w, r, path+"?"+url.Values{"notice": {notice}}.Encode(), http.StatusSeeOther)
}
