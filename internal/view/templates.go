package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/odyssey-erp/odyssey-pos/internal/shared"
	"github.com/odyssey-erp/odyssey-pos/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	User        string
	Data        any
}

var rupiahPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah renders an amount as "Rp 14.000" (Indonesian grouping, no cents
// unless the amount has them).
func FormatRupiah(d decimal.Decimal) string {
	if d.Equal(d.Truncate(0)) {
		return "Rp " + rupiahPrinter.Sprintf("%d", d.IntPart())
	}
	f, _ := d.Round(2).Float64()
	return "Rp " + rupiahPrinter.Sprintf("%.2f", f)
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Local().Format("02 Jan 2006 15:04")
		},
		"rupiah": FormatRupiah,
		"isActive": func(current, prefix string) bool {
			if prefix == "/" {
				return current == "/"
			}
			return len(current) >= len(prefix) && current[:len(prefix)] == prefix
		},
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}
