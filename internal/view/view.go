// Package view renders the HTML pages. Handlers hand it plain data and
// never touch templates directly.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Page is what every template receives. Data holds the page-specific
// projection built by the handler.
type Page struct {
	Title   string
	Flashes []Flash
	Data    any
}

// Renderer implements echo.Renderer over the embedded templates. Each page
// is parsed together with the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	layouts, err := fs.Glob(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(fsys, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			patterns := append(append([]string{}, layouts...), file)
			t, err := template.New(path.Base(file)).Funcs(Funcs()).ParseFS(fsys, patterns...)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			r.pages[strings.TrimPrefix(file, "templates/")] = t
		}
	}
	return r, nil
}

// Render executes the layout for the named page, e.g. "pages/venues.html".
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Has reports whether name is a known page.
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDateTime,
		"join":     strings.Join,
		"contains": containsString,
		"genres":   func() []string { return Genres },
		"states":   func() []string { return States },
	}
}

const (
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

// FormatDateTime renders t in the "full" or "medium" (default) style.
func FormatDateTime(t time.Time, format ...string) string {
	if len(format) > 0 && format[0] == "full" {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

var Genres = []string{
	"Alternative", "Blues", "Classical", "Country", "Electronic", "Folk", "Funk",
	"Hip-Hop", "Heavy Metal", "Instrumental", "Jazz", "Musical Theatre", "Pop",
	"Punk", "R&B", "Reggae", "Rock n Roll", "Soul", "Swing", "Other",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI", "ID",
	"IL", "IN", "IA", "KS", "KY", "LA", "ME", "MT", "NE", "NV", "NH", "NJ", "NM",
	"NY", "NC", "ND", "OH", "OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA",
	"RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// FormData backs the create and edit forms. ID is zero on create.
type FormData struct {
	ID      uint
	Form    any
	Options any
	Error   string
}

type SearchData struct {
	Kind       string
	SearchTerm string
	Results    any
}
