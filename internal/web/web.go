package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"formatDate": formatDate,
	"deref":      deref,
}

// Templates parses the embedded page templates. Each file is addressed by its base name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for wiring code; the templates are compiled in, so a parse
// failure is a build defect.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
