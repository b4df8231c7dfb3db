package cmd

import (
	"strconv"
	"strings"

	"github.com/etnz/pantry"
)

// resolveList finds a list by its position in `gro lists` (starting at 1),
// its id, a unique id prefix or its name, case-insensitively.
func resolveList(lists []pantry.List, ref string) (pantry.List, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(lists) {
			return pantry.List{}, usagef("no list #%d, there are %d lists", n, len(lists))
		}
		return lists[n-1], nil
	}
	var byPrefix []pantry.List
	for _, l := range lists {
		if l.ID == ref || strings.EqualFold(l.Name, ref) {
			return l, nil
		}
		if ref != "" && strings.HasPrefix(l.ID, ref) {
			byPrefix = append(byPrefix, l)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return pantry.List{}, usagef("no list matches %q", ref)
	default:
		return pantry.List{}, usagef("%q matches %d lists, be more specific", ref, len(byPrefix))
	}
}

// resolveItem finds an item by its position in `gro show` (starting at 1),
// its id or a unique id prefix.
func resolveItem(l pantry.List, ref string) (pantry.ListItem, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(l.Items) {
			return pantry.ListItem{}, usagef("no item #%d in %q, it has %d items", n, l.Name, len(l.Items))
		}
		return l.Items[n-1], nil
	}
	var found []pantry.ListItem
	for _, it := range l.Items {
		if it.ID == ref {
			return it, nil
		}
		if ref != "" && strings.HasPrefix(it.ID, ref) {
			found = append(found, it)
		}
	}
	if len(found) != 1 {
		return pantry.ListItem{}, usagef("no single item of %q matches %q", l.Name, ref)
	}
	return found[0], nil
}

// resolveProduct finds a catalog product by id, exact name or unique name
// fragment.
func resolveProduct(c *pantry.Catalog, ref string) (pantry.CatalogItem, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		if it, ok := c.Lookup(id); ok {
			return it, nil
		}
		return pantry.CatalogItem{}, usagef("no product with id %d", id)
	}
	found := c.Search(ref)
	for _, it := range found {
		if strings.EqualFold(it.Name, ref) {
			return it, nil
		}
	}
	switch len(found) {
	case 1:
		return found[0], nil
	case 0:
		return pantry.CatalogItem{}, usagef("no product matches %q, see `gro catalog`", ref)
	default:
		names := make([]string, len(found))
		for i, it := range found {
			names[i] = it.Name
		}
		return pantry.CatalogItem{}, usagef("%q matches %s", ref, strings.Join(names, ", "))
	}
}

// resolveExpense finds an expense by its position in `gro expenses` or its id.
func resolveExpense(records []pantry.ExpenseRecord, ref string) (pantry.ExpenseRecord, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(records) {
			return pantry.ExpenseRecord{}, usagef("no expense #%d, there are %d", n, len(records))
		}
		return records[n-1], nil
	}
	for _, r := range records {
		if r.ID == ref {
			return r, nil
		}
	}
	return pantry.ExpenseRecord{}, usagef("no expense with id %q", ref)
}
