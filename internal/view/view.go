// Package view renders the HTML pages of the dashboard. Templates are
// embedded and auto-escaped by html/template.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"ProductDashboard/internal/catalog"
)

//go:embed templates/*.html
var files embed.FS

const (
	PageDashboard = "dashboard"
	PageLogin     = "login"
	PageRegister  = "register"
	PageError     = "error"
)

var pages = []string{PageDashboard, PageLogin, PageRegister, PageError}

var funcs = template.FuncMap{
	"shortID": catalog.ShortID,
	"price":   catalog.FormatPrice,
}

type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}

	for _, name := range pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Form is the add/edit form. Price stays a string so a rejected submission
// is echoed back exactly as typed.
type Form struct {
	ID          string
	Name        string
	Price       string
	Description string
}

// Editing reports whether the form targets an existing product.
func (f Form) Editing() bool { return f.ID != "" }

func FormFromProduct(p catalog.Product) Form {
	return Form{
		ID:          p.ID,
		Name:        p.Name,
		Price:       strconv.FormatFloat(p.Price, 'f', -1, 64),
		Description: p.Description,
	}
}

func FormFromInput(in catalog.Input) Form {
	return Form{ID: in.ID, Name: in.Name, Price: in.Price, Description: in.Description}
}

type Dashboard struct {
	Title    string
	Username string
	Success  string
	Errors   []string
	Form     Form
	Products catalog.Catalog
}

type Login struct {
	Title    string
	Username string
	Error    string
	Notice   string
}

type Register struct {
	Title    string
	Username string
	Errors   []string
}

type Error struct {
	Title     string
	Message   string
	RequestID string
}
