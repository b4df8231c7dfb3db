package pantry

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/etnz/pantry/kv"
	"github.com/shopspring/decimal"
)

// Display themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Settings are the user preferences. They only change how things are
// displayed: amounts are always stored in the Canonical currency.
type Settings struct {
	Currency      string `json:"currency"`
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

// DefaultSettings is what a fresh pantry starts with.
func DefaultSettings() Settings {
	return Settings{Currency: Canonical, Theme: ThemeLight, Notifications: true}
}

// Rates gives, for each supported currency, how many units one unit of the
// Canonical currency is worth.
type Rates map[string]decimal.Decimal

// DefaultRates is the built-in conversion table.
func DefaultRates() Rates {
	return Rates{
		"COP": decimal.NewFromInt(1),
		"USD": decimal.RequireFromString("0.00025"),
		"EUR": decimal.RequireFromString("0.00023"),
		"GBP": decimal.RequireFromString("0.00020"),
	}
}

// Currencies returns the supported currency codes, sorted.
func (r Rates) Currencies() []string {
	codes := make([]string, 0, len(r))
	for c := range r {
		codes = append(codes, c)
	}
	slices.Sort(codes)
	return codes
}

// Convert changes amount from one currency to another, rounded to 2 decimals.
func (r Rates) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	fr, ok := r[from]
	if !ok || fr.IsZero() {
		return decimal.Zero, invalid("currency", "unsupported currency %q", from)
	}
	tr, ok := r[to]
	if !ok {
		return decimal.Zero, invalid("currency", "unsupported currency %q", to)
	}
	if from == to {
		return amount.Round(2), nil
	}
	return amount.Div(fr).Mul(tr).Round(2), nil
}

// SettingsStore holds the persisted user preferences.
type SettingsStore struct {
	mu       sync.RWMutex
	store    kv.Store
	settings Settings
	rates    Rates

	log *slog.Logger
}

func newSettingsStore(ctx context.Context, store kv.Store, o *Options) *SettingsStore {
	s := &SettingsStore{
		store: store,
		rates: o.Rates,
		log:   o.Logger.With("store", "settings"),
	}
	s.reload(ctx)
	return s
}

func (s *SettingsStore) reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// missing fields keep their default
	v := loadDocument[*Settings](ctx, s.store, KeySettings, s.log)
	settings := DefaultSettings()
	if v != nil {
		settings = *v
		if _, ok := s.rates[settings.Currency]; !ok {
			s.log.Warn("unsupported currency in settings, using default", "currency", settings.Currency)
			settings.Currency = Canonical
		}
		if settings.Theme != ThemeLight && settings.Theme != ThemeDark {
			settings.Theme = ThemeLight
		}
	}
	s.settings = settings
}

// Get returns the current preferences.
func (s *SettingsStore) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Rates returns the conversion table in use.
func (s *SettingsStore) Rates() Rates { return s.rates }

func (s *SettingsStore) update(ctx context.Context, f func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.settings)
	return saveDocument(ctx, s.store, KeySettings, s.settings)
}

// SetCurrency changes the display currency.
func (s *SettingsStore) SetCurrency(ctx context.Context, code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if _, ok := s.rates[code]; !ok {
		return invalid("currency", "unsupported currency %q, want one of %s", code, strings.Join(s.rates.Currencies(), ", "))
	}
	return s.update(ctx, func(st *Settings) { st.Currency = code })
}

// SetTheme changes the display theme.
func (s *SettingsStore) SetTheme(ctx context.Context, theme string) error {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return invalid("theme", "unknown theme %q, want %q or %q", theme, ThemeLight, ThemeDark)
	}
	return s.update(ctx, func(st *Settings) { st.Theme = theme })
}

// ToggleTheme switches between light and dark and returns the new theme.
func (s *SettingsStore) ToggleTheme(ctx context.Context) (string, error) {
	var theme string
	err := s.update(ctx, func(st *Settings) {
		if st.Theme == ThemeDark {
			st.Theme = ThemeLight
		} else {
			st.Theme = ThemeDark
		}
		theme = st.Theme
	})
	return theme, err
}

// SetNotifications turns purchase notices on or off.
func (s *SettingsStore) SetNotifications(ctx context.Context, on bool) error {
	return s.update(ctx, func(st *Settings) { st.Notifications = on })
}

// Convert converts an amount between two supported currencies.
func (s *SettingsStore) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	return s.rates.Convert(amount, from, to)
}

// Money converts a canonical amount into the display currency.
func (s *SettingsStore) Money(amount decimal.Decimal) Money {
	cur := s.Get().Currency
	v, err := s.rates.Convert(amount, Canonical, cur)
	if err != nil {
		return M(amount, Canonical)
	}
	return M(v, cur)
}

// Format renders a canonical amount in the display currency.
func (s *SettingsStore) Format(amount decimal.Decimal) string {
	return s.Money(amount).String()
}
