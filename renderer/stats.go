package renderer

import (
	"github.com/etnz/pantry"
)

// Stats renders the pantry statistics.
func Stats(s *pantry.Stats, money Money) string {
	partials := map[string]string{
		"stats_overview": "stats_overview.md",
		"stats_spending": "stats_spending.md",
		"stats_activity": "stats_activity.md",
	}
	return renderTemplate("stats", "stats.md", partials, money, s)
}
