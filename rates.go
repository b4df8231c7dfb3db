package pantry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// LoadRates reads a JSON document holding exchange rates and overrides the
// DefaultRates with the values selected by paths, a JSONPath expression per
// currency code. Every selected value must be the number of units of that
// currency worth one unit of the Canonical currency. Numbers encoded as
// strings are accepted.
func LoadRates(r io.Reader, paths map[string]string) (Rates, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode rates document: %w", err)
	}
	return ratesFrom(jobj, paths)
}

// FetchRates is like LoadRates with a document downloaded from addr.
func FetchRates(ctx context.Context, client *http.Client, addr string, paths map[string]string) (Rates, error) {
	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("cannot fetch rates: %w", err)
	}
	return ratesFrom(jobj, paths)
}

func ratesFrom(jobj any, paths map[string]string) (Rates, error) {
	found := make(Rates, len(paths))
	for code, path := range paths {
		code = strings.ToUpper(code)
		jval, err := jsonpath.Get(path, jobj)
		if err != nil {
			return nil, fmt.Errorf("error reading %s rate at %q: %w", code, path, err)
		}
		// a filter expression yields a list: keep its first element.
		if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
			jval = jlist[0]
		}
		var rate decimal.Decimal
		switch v := jval.(type) {
		case float64:
			rate = decimal.NewFromFloat(v)
		case string:
			rate, err = decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(v), ",", "."))
			if err != nil {
				return nil, fmt.Errorf("error reading %s rate at %q: %w", code, path, err)
			}
		default:
			return nil, fmt.Errorf("error reading %s rate at %q: not a number: %v", code, path, jval)
		}
		if !rate.IsPositive() {
			return nil, fmt.Errorf("error reading %s rate at %q: must be positive, got %s", code, path, rate)
		}
		found[code] = rate
	}
	// a document quoting the canonical currency is rescaled to make it the unit.
	if base, ok := found[Canonical]; ok {
		for code, v := range found {
			found[code] = v.Div(base)
		}
	}
	rates := DefaultRates()
	maps.Copy(rates, found)
	return rates, nil
}
