package api

import (
	"html/template"
	"io/fs"
	"time"

	"github.com/vytor/flashycardy/internal/services"
)

// formLimits mirrors the service-side validation in the HTML forms.
type formLimits struct {
	DeckName        int
	DeckDescription int
	CardSide        int
	UserName        int
	PasswordMin     int
}

var limits = formLimits{
	DeckName:        services.MaxDeckNameLength,
	DeckDescription: services.MaxDeckDescriptionLength,
	CardSide:        services.MaxCardSideLength,
	UserName:        services.MaxUserNameLength,
	PasswordMin:     services.MinPasswordLength,
}

// LoadTemplates parses the layout and page templates from fsys.
func LoadTemplates(fsys fs.FS) (*template.Template, error) {
	funcs := template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
	}

	return template.New("base").Funcs(funcs).ParseFS(fsys,
		"templates/layouts/*.html",
		"templates/pages/*.html",
	)
}
