// Package template renders the HTML documents mailed to users.
package template

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	TicketTemplate        = "ticket.html"
	PasswordResetTemplate = "password_reset.html"
)

type Renderer interface {
	Render(name string, data any) (string, error)
}

type HTMLRenderer struct {
	templates *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	t, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTMLRenderer{templates: t}, nil
}

func (r *HTMLRenderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

var _ Renderer = (*HTMLRenderer)(nil)
