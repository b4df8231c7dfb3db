// Package renderer turns pantry data into markdown documents for the
// terminal. Documents are text/template files embedded in the binary; amounts
// are formatted by a caller-provided Money function so that the display
// currency stays a presentation concern.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/pantry/date"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.md
var templates embed.FS

// Money formats a canonical amount for display.
type Money func(decimal.Decimal) string

// Plain formats amounts as bare numbers with two decimals.
func Plain(d decimal.Decimal) string { return d.StringFixed(2) }

func (m Money) orPlain() Money {
	if m == nil {
		return Plain
	}
	return m
}

func funcs(money Money) template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string { return money(d) },
		"bar":   func(percent int) string { return progressBar(percent, barWidth) },
		"cell":  cell,
		"day":   func(d date.Date) string { return d.String() },
	}
}

// cell makes a value safe to use in a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// renderTemplate renders a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, money Money, data any) string {
	mainContent, err := fs.ReadFile(templates, "templates/"+mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(money.orPlain())).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name results in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, "templates/"+file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
