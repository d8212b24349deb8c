package content

import (
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
)

const (
	maxTextLen      = 255
	maxLongTextLen  = 50000
	maxItems        = 50
	maxItemValueLen = 2000
)

// kindValidators holds one validation strategy per field kind. Each receives
// the field name, its value from the payload and the section config.
var kindValidators = map[FieldKind]func(field string, p Payload, cfg SectionConfig) []httpserver.ValidationError{
	KindText: func(field string, p Payload, _ SectionConfig) []httpserver.ValidationError {
		return checkLength(field, textValue(p, field), maxTextLen)
	},
	KindLongText: func(field string, p Payload, _ SectionConfig) []httpserver.ValidationError {
		return checkLength(field, textValue(p, field), maxLongTextLen)
	},
	KindRepeatableGroup: func(field string, p Payload, cfg SectionConfig) []httpserver.ValidationError {
		if p.Items == nil {
			return nil
		}
		items := *p.Items
		if len(items) > maxItems {
			return []httpserver.ValidationError{{Field: field, Message: fmt.Sprintf("must have at most %d items", maxItems)}}
		}
		var errs []httpserver.ValidationError
		for i, item := range items {
			keys := make([]string, 0, len(item))
			for k := range item {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				name := fmt.Sprintf("%s.%d.%s", field, i, k)
				if !cfg.HasItemField(k) {
					errs = append(errs, httpserver.ValidationError{Field: name, Message: "not an item field of this section"})
					continue
				}
				errs = append(errs, checkLength(name, item[k], maxItemValueLen)...)
			}
		}
		return errs
	},
}

// ValidatePayload checks that p only sets fields cfg declares and that every
// value fits its kind.
func ValidatePayload(cfg SectionConfig, p Payload) []httpserver.ValidationError {
	var errs []httpserver.ValidationError

	for _, field := range setFields(p) {
		if !cfg.Uses(field) {
			errs = append(errs, httpserver.ValidationError{Field: field, Message: "not a field of this section"})
		}
	}

	for _, field := range cfg.Fields {
		kind, ok := KindOf(field)
		if !ok {
			continue
		}
		errs = append(errs, kindValidators[kind](field, p, cfg)...)
	}
	return errs
}

func setFields(p Payload) []string {
	var out []string
	if p.Title != nil {
		out = append(out, FieldTitle)
	}
	if p.Subtitle != nil {
		out = append(out, FieldSubtitle)
	}
	if p.Content != nil {
		out = append(out, FieldContent)
	}
	if p.Items != nil {
		out = append(out, FieldItems)
	}
	return out
}

func textValue(p Payload, field string) string {
	var v *string
	switch field {
	case FieldTitle:
		v = p.Title
	case FieldSubtitle:
		v = p.Subtitle
	case FieldContent:
		v = p.Content
	}
	if v == nil {
		return ""
	}
	return *v
}

func checkLength(field, v string, limit int) []httpserver.ValidationError {
	if utf8.RuneCountInString(v) > limit {
		return []httpserver.ValidationError{{Field: field, Message: fmt.Sprintf("must be at most %d characters", limit)}}
	}
	return nil
}
