package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/pantry"
)

// printMarkdown renders md for the terminal with the glamour style matching
// the user's theme. Rendering errors fall back to the raw markdown.
func printMarkdown(theme, md string) {
	style := "light"
	if theme == pantry.ThemeDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(120),
		glamour.WithEmoji(),
	)
	if err == nil {
		var rendered string
		if rendered, err = r.Render(md); err == nil {
			fmt.Fprint(out, rendered)
			return
		}
	}
	fmt.Fprint(out, md)
}

// print renders md with the session's theme.
func (s *session) print(md string) { printMarkdown(s.Settings.Get().Theme, md) }

// notify prints a short message unless the user turned notifications off.
func (s *session) notify(format string, args ...any) {
	if s.Settings.Get().Notifications {
		fmt.Fprintf(out, format+"\n", args...)
	}
}

// describe tells the user what an outcome means for the thing it was about.
func describe(o pantry.Outcome, what string) string {
	switch o {
	case pantry.Applied:
		return fmt.Sprintf("✅ %s: done", what)
	case pantry.NotFound:
		return fmt.Sprintf("🤷 %s: not found, nothing changed", what)
	case pantry.AlreadyPurchased:
		return fmt.Sprintf("ℹ️  %s: already purchased, nothing changed", what)
	case pantry.Suppressed:
		return fmt.Sprintf("⏳ %s: same operation already running, ignored", what)
	case pantry.NotPurchased:
		return fmt.Sprintf("🛑 %s: not purchased yet", what)
	default:
		return fmt.Sprintf("%s: %v", what, o)
	}
}
