// Package payment turns stored payment-method settings into the list of
// payment icons shown in the storefront footer.
package payment

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StoragePrefix is prepended to stored logo filenames.
const StoragePrefix = "/storage/"

// Method is one payment method icon.
type Method struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

var defaultCatalog = []Method{
	{ID: "visa", Name: "VISA", Logo: "/images/payments/visa.svg"},
	{ID: "mastercard", Name: "Mastercard", Logo: "/images/payments/mastercard.svg"},
	{ID: "amex", Name: "American Express", Logo: "/images/payments/amex.svg"},
	{ID: "bkash", Name: "bKash", Logo: "/images/payments/bkash.svg"},
	{ID: "nagad", Name: "Nagad", Logo: "/images/payments/nagad.svg"},
}

// DefaultCatalog returns a fresh copy of the built-in payment methods.
func DefaultCatalog() []Method {
	out := make([]Method, len(defaultCatalog))
	copy(out, defaultCatalog)
	return out
}

// NormalizeLogo resolves a stored logo value to a URL path.
func NormalizeLogo(path string) string {
	if path == "" || strings.HasPrefix(path, "http") || strings.HasPrefix(path, "/") {
		return path
	}
	return StoragePrefix + path
}

// Normalize repairs a stored payment-methods value into a usable list.
//
// value may be a decoded JSON array, a JSON-encoded string or anything else.
// Element i of a list is completed from catalog entry i; entries still missing
// a name or logo are dropped. An empty result is replaced by the whole catalog,
// a non-empty one is returned as is.
func Normalize(value any) []Method {
	switch v := value.(type) {
	case string:
		if v == "" {
			return DefaultCatalog()
		}
		var parsed any
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return DefaultCatalog()
		}
		return Normalize(parsed)
	case []any:
		return normalizeList(v)
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return normalizeList(items)
	case []Method:
		items := make([]any, len(v))
		for i, m := range v {
			items[i] = map[string]any{"id": m.ID, "name": m.Name, "logo": m.Logo}
		}
		return normalizeList(items)
	default:
		return DefaultCatalog()
	}
}

func normalizeList(items []any) []Method {
	out := make([]Method, 0, len(items))
	for i, item := range items {
		var def Method
		if i < len(defaultCatalog) {
			def = defaultCatalog[i]
		}
		obj, _ := item.(map[string]any)

		m := Method{
			ID:   firstNonEmpty(stringField(obj, "id"), def.ID, fmt.Sprintf("payment-%d", i)),
			Name: firstNonEmpty(stringField(obj, "name"), def.Name),
			Logo: NormalizeLogo(firstNonEmpty(stringField(obj, "logo"), def.Logo)),
		}
		if m.Name == "" || m.Logo == "" {
			continue
		}
		out = append(out, m)
	}
	if len(out) == 0 {
		return DefaultCatalog()
	}
	return out
}

// stringField reads a string-ish value from a decoded JSON object. Non-zero
// numbers are formatted so an id of 3 becomes "3"; zero, like anything else,
// reads as empty and falls through to the catalog value.
func stringField(obj map[string]any, key string) string {
	switch v := obj[key].(type) {
	case string:
		return v
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
