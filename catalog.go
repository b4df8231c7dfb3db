package pantry

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// CatalogItem is a purchasable product of the reference catalog.
type CatalogItem struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Icon     string          `json:"icon"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// Catalog is the immutable reference data of purchasable products.
type Catalog struct {
	items []CatalogItem
	byID  map[int]int
}

//go:embed catalog.json
var bundledCatalog []byte

// DefaultCatalog returns the catalog bundled with the binary.
func DefaultCatalog() *Catalog {
	c, err := DecodeCatalog(bytes.NewReader(bundledCatalog))
	if err != nil {
		panic(fmt.Sprintf("bundled catalog is invalid: %v", err))
	}
	return c
}

// NewCatalog indexes items. Later duplicates of an id are ignored.
func NewCatalog(items []CatalogItem) *Catalog {
	c := &Catalog{byID: make(map[int]int, len(items))}
	for _, it := range items {
		if _, dup := c.byID[it.ID]; dup {
			continue
		}
		c.byID[it.ID] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

// DecodeCatalog reads a JSON array of catalog items.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var items []CatalogItem
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(items), nil
}

// LoadCatalog reads a user catalog file, in YAML when the extension says so
// and in JSON otherwise.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return decodeYAMLCatalog(data)
	default:
		return DecodeCatalog(bytes.NewReader(data))
	}
}

func decodeYAMLCatalog(data []byte) (*Catalog, error) {
	// yaml has no decimal type: prices go through float64, which is exact
	// for the integral peso amounts catalogs use.
	var raw []struct {
		ID       int     `yaml:"id"`
		Name     string  `yaml:"name"`
		Icon     string  `yaml:"icon"`
		Price    float64 `yaml:"price"`
		Category string  `yaml:"category"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode yaml catalog: %w", err)
	}
	items := make([]CatalogItem, 0, len(raw))
	for _, r := range raw {
		items = append(items, CatalogItem{
			ID:       r.ID,
			Name:     r.Name,
			Icon:     r.Icon,
			Price:    decimal.NewFromFloat(r.Price),
			Category: r.Category,
		})
	}
	return NewCatalog(items), nil
}

// Lookup returns the product with this id.
func (c *Catalog) Lookup(id int) (CatalogItem, bool) {
	if c == nil {
		return CatalogItem{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return CatalogItem{}, false
	}
	return c.items[i], true
}

// Items returns all products in catalog order.
func (c *Catalog) Items() []CatalogItem {
	if c == nil {
		return nil
	}
	return slices.Clone(c.items)
}

// Search returns the products whose name contains q, case-insensitively.
func (c *Catalog) Search(q string) []CatalogItem {
	q = strings.ToLower(strings.TrimSpace(q))
	var found []CatalogItem
	for _, it := range c.Items() {
		if strings.Contains(strings.ToLower(it.Name), q) {
			found = append(found, it)
		}
	}
	return found
}

// IconFor returns the icon of the first product with this name, or the
// generic expense icon.
func (c *Catalog) IconFor(name string) string {
	for _, it := range c.Items() {
		if strings.EqualFold(it.Name, name) {
			return it.Icon
		}
	}
	return defaultExpenseIcon
}

// ProductLookup is the read side of the catalog the cascade depends on.
type ProductLookup interface {
	Lookup(id int) (CatalogItem, bool)
}

const (
	fallbackIcon       = "🍎"
	defaultExpenseIcon = "💵"
)

// display resolves name and icon for a product, synthesizing them when the
// catalog has no entry. The boolean reports whether the catalog knew it.
func display(c ProductLookup, id int) (name, icon string, ok bool) {
	if c != nil {
		if it, found := c.Lookup(id); found {
			return it.Name, it.Icon, true
		}
	}
	return fmt.Sprintf("Product %d", id), fallbackIcon, false
}

// Describe returns the display name and icon of a product, with placeholders
// for products the catalog does not know.
func Describe(c ProductLookup, id int) (name, icon string) {
	name, icon, _ = display(c, id)
	return name, icon
}
