// Package render draws the HTML pages served by the maintenance gate.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"maintenance-gate/internal/models"
	"maintenance-gate/pkg/sanitize"
)

//go:embed templates/*.html
var templatesFS embed.FS

// MaintenancePage is the content of the page shown to anonymous visitors.
// Message and SubMessage may contain markup; it is sanitized on render.
type MaintenancePage struct {
	Message    string
	SubMessage string
	LogoURL    string
}

// SettingsPage is the admin form for the maintenance configuration
type SettingsPage struct {
	Username      string
	Config        models.MaintenanceConfig
	Action        string
	ToggleURL     string
	SettingsNonce string
	ToggleNonce   string
	Notice        string
	Error         string
}

type LoginPage struct {
	Action   string
	Username string
	Redirect string
	Error    string
}

type maintenanceView struct {
	Message    template.HTML
	SubMessage template.HTML
	LogoURL    string
}

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Maintenance renders the unavailable page. Message markup is reduced to
// the allowed subset and a logo URL that is not absolute http(s) is dropped.
func (r *Renderer) Maintenance(p MaintenancePage) ([]byte, error) {
	logo, err := sanitize.URL(p.LogoURL)
	if err != nil {
		logo = ""
	}
	return r.execute("maintenance.html", maintenanceView{
		Message:    template.HTML(sanitize.HTML(p.Message)),
		SubMessage: template.HTML(sanitize.HTML(p.SubMessage)),
		LogoURL:    logo,
	})
}

func (r *Renderer) Settings(p SettingsPage) ([]byte, error) {
	return r.execute("settings.html", p)
}

func (r *Renderer) Login(p LoginPage) ([]byte, error) {
	return r.execute("login.html", p)
}

// execute renders into a buffer so that nothing is written on failure
func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
