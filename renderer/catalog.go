package renderer

import "github.com/etnz/pantry"

// Catalog renders catalog products grouped by category, in catalog order.
func Catalog(items []pantry.CatalogItem, money Money) string {
	type group struct {
		Category string
		Items    []pantry.CatalogItem
	}
	var groups []group
	for _, it := range items {
		if n := len(groups); n == 0 || groups[n-1].Category != it.Category {
			groups = append(groups, group{Category: it.Category})
		}
		groups[len(groups)-1].Items = append(groups[len(groups)-1].Items, it)
	}
	return renderTemplate("catalog", "catalog.md", nil, money, groups)
}

type settingsDoc struct {
	pantry.Settings
	Currencies []string
}

// Settings renders the user preferences and the available currencies.
func Settings(s pantry.Settings, currencies []string) string {
	return renderTemplate("settings", "settings.md", nil, nil, settingsDoc{Settings: s, Currencies: currencies})
}
