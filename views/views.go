// Package views renders the storefront pages.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"streamit/types"
)

//go:embed templates/*.html
var templateFS embed.FS

// Row is a titled, horizontally scrolling strip of cards.
type Row struct {
	Title string
	Href  string
	Items []types.Anime
}

// Grid is a titled, wrapping grid of cards.
type Grid struct {
	Title     string
	Items     []types.Anime
	EmptyText string
}

type Detail struct {
	Anime    types.Anime
	Episodes []types.Episode
}

type ErrorView struct {
	Status  int
	Message string
	TxID    string
}

// Page is everything a template can reach.
type Page struct {
	Title  string
	Nav    Navbar
	Footer Footer
	Hero   *Carousel
	Rows   []Row
	Grid   *Grid
	Detail *Detail
	Error  *ErrorView
}

var pages = []string{"home", "grid", "detail", "error"}

type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"minutes": func(seconds int) int { return seconds / 60 },
	"date":    func(t time.Time) string { return t.Format("Jan 2, 2006") },
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/partials.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if err := t.ExecuteTemplate(w, "layout", page); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
