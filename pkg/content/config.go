// Package content manages the static CMS pages (about, privacy, terms): the
// compiled-in page layouts, the per-section edit forms and the stored sections.
package content

import "sort"

// FieldKind selects how a section field is edited and validated.
type FieldKind string

const (
	KindText            FieldKind = "text"
	KindLongText        FieldKind = "longText"
	KindRepeatableGroup FieldKind = "repeatableGroup"
)

// Generic section fields.
const (
	FieldTitle    = "title"
	FieldSubtitle = "subtitle"
	FieldContent  = "content"
	FieldItems    = "items"
)

var fieldKinds = map[string]FieldKind{
	FieldTitle:    KindText,
	FieldSubtitle: KindText,
	FieldContent:  KindLongText,
	FieldItems:    KindRepeatableGroup,
}

// KindOf returns the kind of a generic section field.
func KindOf(field string) (FieldKind, bool) {
	k, ok := fieldKinds[field]
	return k, ok
}

// SectionConfig declares which generic fields one section uses.
type SectionConfig struct {
	Key        string   `json:"key"`
	Label      string   `json:"label"`
	Fields     []string `json:"fields"`
	ItemFields []string `json:"item_fields,omitempty"`
	// RichText hints that content is long-form markdown.
	RichText bool `json:"rich_text,omitempty"`
}

// Uses reports whether the section declares field.
func (c SectionConfig) Uses(field string) bool {
	for _, f := range c.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// HasItemField reports whether name is a declared item sub-field.
func (c SectionConfig) HasItemField(name string) bool {
	for _, f := range c.ItemFields {
		if f == name {
			return true
		}
	}
	return false
}

// PageConfig is the static layout of one CMS page.
type PageConfig struct {
	Slug        string          `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Sections    []SectionConfig `json:"sections"`
}

// Section returns the section declared under key.
func (p PageConfig) Section(key string) (SectionConfig, bool) {
	for _, s := range p.Sections {
		if s.Key == key {
			return s, true
		}
	}
	return SectionConfig{}, false
}

// FirstKey is the key of the first declared section.
func (p PageConfig) FirstKey() string {
	if len(p.Sections) == 0 {
		return ""
	}
	return p.Sections[0].Key
}

var pages = map[string]PageConfig{
	"about": {
		Slug:        "about",
		Title:       "About Us",
		Description: "Company story, values and team shown on the About page.",
		Sections: []SectionConfig{
			{Key: "hero", Label: "Hero", Fields: []string{FieldTitle, FieldSubtitle}},
			{Key: "story", Label: "Our Story", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "values", Label: "Our Values", Fields: []string{FieldTitle, FieldItems}, ItemFields: []string{"title", "description"}},
			{Key: "team", Label: "Team", Fields: []string{FieldTitle, FieldSubtitle, FieldItems}, ItemFields: []string{"name", "role", "image"}},
		},
	},
	"privacy": {
		Slug:        "privacy",
		Title:       "Privacy Policy",
		Description: "How customer data is collected, used and protected.",
		Sections: []SectionConfig{
			{Key: "introduction", Label: "Introduction", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "data_collection", Label: "Data We Collect", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "data_usage", Label: "How We Use Data", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "cookies", Label: "Cookies", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "contact", Label: "Contact", Fields: []string{FieldTitle, FieldSubtitle, FieldContent}},
		},
	},
	"terms": {
		Slug:        "terms",
		Title:       "Terms & Conditions",
		Description: "Terms that govern purchases and use of the store.",
		Sections: []SectionConfig{
			{Key: "overview", Label: "Overview", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "orders", Label: "Orders & Payment", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "returns", Label: "Returns & Refunds", Fields: []string{FieldTitle, FieldContent}, RichText: true},
			{Key: "faq", Label: "FAQ", Fields: []string{FieldTitle, FieldItems}, ItemFields: []string{"question", "answer"}},
		},
	},
}

// Lookup returns the page registered under slug.
func Lookup(slug string) (PageConfig, bool) {
	p, ok := pages[slug]
	return p, ok
}

// Pages returns every page config sorted by slug.
func Pages() []PageConfig {
	out := make([]PageConfig, 0, len(pages))
	for _, p := range pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
