// Package settings stores site-wide storefront settings and resolves them
// into the header and footer the storefront renders.
package settings

import "encoding/json"

// Bag is the full settings store: group -> key -> value. Values are scalars
// or JSON-encoded strings.
type Bag map[string]map[string]string

// Get returns bag[group][key] when present, else fallback. A nil bag or a
// missing group yields fallback.
func (b Bag) Get(group, key, fallback string) string {
	g, ok := b[group]
	if !ok {
		return fallback
	}
	v, ok := g[key]
	if !ok {
		return fallback
	}
	return v
}

// Clone returns a deep copy of the bag.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	for group, kv := range b {
		m := make(map[string]string, len(kv))
		for k, v := range kv {
			m[k] = v
		}
		out[group] = m
	}
	return out
}

// Candidate is one place a logical setting may be stored.
type Candidate struct {
	Group string
	Key   string
}

// At is shorthand for a Candidate.
func At(group, key string) Candidate {
	return Candidate{Group: group, Key: key}
}

// Field is an ordered precedence chain for one logical setting: the preferred
// key first, then older locations, then Default.
type Field struct {
	Name       string
	Candidates []Candidate
	Default    string
}

// raw returns the first non-empty candidate value. An empty string counts as
// unset, so a blank admin entry falls through to the next candidate.
func (f Field) raw(b Bag) (string, bool) {
	for _, c := range f.Candidates {
		if v := b.Get(c.Group, c.Key, ""); v != "" {
			return v, true
		}
	}
	return "", false
}

// Resolve returns the effective string value of f.
func Resolve(b Bag, f Field) string {
	if v, ok := f.raw(b); ok {
		return v
	}
	return f.Default
}

// ResolveBool returns false only when the first stored value is exactly "0".
// Anything else, including no value at all, is true.
func ResolveBool(b Bag, f Field) bool {
	v, ok := f.raw(b)
	return !ok || v != "0"
}

// ResolveList decodes the first stored value of f as a JSON array. A missing
// value or one that does not decode yields fallback.
func ResolveList[T any](b Bag, f Field, fallback []T) []T {
	v, ok := f.raw(b)
	if !ok {
		return fallback
	}
	var out []T
	if err := json.Unmarshal([]byte(v), &out); err != nil || out == nil {
		return fallback
	}
	return out
}
