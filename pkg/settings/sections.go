package settings

import "sort"

// Kind is how a section field is validated and stored.
type Kind int

const (
	// KindText is a plain string.
	KindText Kind = iota
	// KindBool is a toggle, stored as "1" or "0".
	KindBool
	// KindLinks is a JSON array of {label, url}.
	KindLinks
	// KindPayments is a JSON array of payment methods. Logos may be uploaded
	// alongside as payment_logo_{index}.
	KindPayments
	// KindFile is an uploaded image; the stored filename is saved.
	KindFile
)

// SectionField is one form field of a settings section and the place it is stored.
type SectionField struct {
	Name  string
	Group string
	Key   string
	Kind  Kind
	// Rule is a validator tag applied to text values.
	Rule string
}

// Section is one independently saved group of settings fields.
type Section struct {
	Name   string
	Label  string
	Fields []SectionField
}

// Field returns the declared field called name.
func (s Section) Field(name string) (SectionField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return SectionField{}, false
}

func text(name, group, key, rule string) SectionField {
	return SectionField{Name: name, Group: group, Key: key, Kind: KindText, Rule: rule}
}

func toggle(name, group string) SectionField {
	return SectionField{Name: name, Group: group, Key: name, Kind: KindBool}
}

var sections = map[string]Section{
	"header_branding": {
		Name:  "header_branding",
		Label: "Site Branding",
		Fields: []SectionField{
			text("site_name", GroupHeader, "site_name", "max=255"),
			text("tagline", GroupHeader, "tagline", "max=255"),
			{Name: "logo", Group: GroupHeader, Key: "logo", Kind: KindFile},
		},
	},
	"header_top_bar": {
		Name:  "header_top_bar",
		Label: "Top Bar",
		Fields: []SectionField{
			text("top_bar_text", GroupHeader, "top_bar_text", "max=255"),
			text("contact_phone", GroupHeader, "contact_phone", "max=50"),
			text("contact_email", GroupHeader, "contact_email", "omitempty,email,max=255"),
		},
	},
	"header_navigation": {
		Name:  "header_navigation",
		Label: "Navigation",
		Fields: []SectionField{
			{Name: "nav_links", Group: GroupHeader, Key: "nav_links", Kind: KindLinks},
		},
	},
	"header_visibility": {
		Name:  "header_visibility",
		Label: "Header Visibility",
		Fields: []SectionField{
			toggle("show_top_bar", GroupHeader),
			toggle("show_search", GroupHeader),
			toggle("show_wishlist", GroupHeader),
			toggle("show_cart", GroupHeader),
			toggle("show_account", GroupHeader),
		},
	},
	"footer_branding": {
		Name:  "footer_branding",
		Label: "Footer Branding",
		Fields: []SectionField{
			{Name: "footer_logo", Group: GroupFooter, Key: "logo", Kind: KindFile},
			text("description", GroupFooter, "description", "max=1000"),
			text("copyright", GroupFooter, "copyright", "max=255"),
		},
	},
	"footer_contact": {
		Name:  "footer_contact",
		Label: "Contact Information",
		Fields: []SectionField{
			text("address", GroupFooter, "address", "max=500"),
			text("phone", GroupFooter, "phone", "max=50"),
			text("email", GroupFooter, "email", "omitempty,email,max=255"),
			toggle("show_contact_info", GroupFooter),
		},
	},
	"footer_links": {
		Name:  "footer_links",
		Label: "Footer Links",
		Fields: []SectionField{
			{Name: "quick_links", Group: GroupFooter, Key: "quick_links", Kind: KindLinks},
			{Name: "customer_links", Group: GroupFooter, Key: "customer_links", Kind: KindLinks},
		},
	},
	"footer_payment": {
		Name:  "footer_payment",
		Label: "Payment Methods",
		Fields: []SectionField{
			{Name: "payment_methods", Group: GroupFooter, Key: "payment_methods", Kind: KindPayments},
			toggle("show_payment_methods", GroupFooter),
		},
	},
	"footer_social": {
		Name:  "footer_social",
		Label: "Social Links",
		Fields: []SectionField{
			text("facebook_url", GroupFooter, "facebook_url", "omitempty,url,max=500"),
			text("instagram_url", GroupFooter, "instagram_url", "omitempty,url,max=500"),
			text("twitter_url", GroupFooter, "twitter_url", "omitempty,url,max=500"),
			text("youtube_url", GroupFooter, "youtube_url", "omitempty,url,max=500"),
			text("linkedin_url", GroupFooter, "linkedin_url", "omitempty,url,max=500"),
			toggle("show_social_links", GroupFooter),
		},
	},
	"footer_newsletter": {
		Name:  "footer_newsletter",
		Label: "Newsletter",
		Fields: []SectionField{
			text("newsletter_title", GroupFooter, "newsletter_title", "max=255"),
			text("newsletter_text", GroupFooter, "newsletter_text", "max=1000"),
			toggle("show_newsletter", GroupFooter),
		},
	},
}

// LookupSection returns the section registered under name.
func LookupSection(name string) (Section, bool) {
	s, ok := sections[name]
	return s, ok
}

// Sections returns all sections sorted by name.
func Sections() []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBool:
		return "boolean"
	case KindLinks:
		return "links"
	case KindPayments:
		return "payment_methods"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}
