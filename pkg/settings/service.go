package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/telemetry"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/media"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/payment"
)

// paymentLogoPrefix names the upload fields that replace a payment method logo,
// e.g. payment_logo_2.
const paymentLogoPrefix = "payment_logo_"

// BagStore persists settings.
type BagStore interface {
	Load(ctx context.Context) (Bag, error)
	Save(ctx context.Context, values []Value) error
}

// BagCache is an optional read-through cache for the bag.
type BagCache interface {
	Get(ctx context.Context) (Bag, bool)
	Set(ctx context.Context, bag Bag)
	Invalidate(ctx context.Context)
}

// Uploader stores an uploaded file and returns its stored filename.
type Uploader interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Upload is a file attached to a section save.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// SaveRequest saves one settings section.
type SaveRequest struct {
	Section string
	Fields  map[string]string
	Files   map[string]Upload
}

// Close closes every upload reader that is an io.Closer.
func (r SaveRequest) Close() {
	for _, up := range r.Files {
		if c, ok := up.Reader.(io.Closer); ok {
			_ = c.Close()
		}
	}
}

// Service loads, resolves and saves settings.
type Service struct {
	store   BagStore
	cache   BagCache
	uploads Uploader
	logger  *slog.Logger
}

// NewService creates a settings Service. cache may be nil.
func NewService(store BagStore, cache BagCache, uploads Uploader, logger *slog.Logger) *Service {
	return &Service{store: store, cache: cache, uploads: uploads, logger: logger}
}

// Bag returns the current settings, from cache when possible.
func (s *Service) Bag(ctx context.Context) (Bag, error) {
	if s.cache != nil {
		if bag, ok := s.cache.Get(ctx); ok {
			return bag, nil
		}
	}

	bag, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(ctx, bag)
	}
	return bag, nil
}

// Header returns the resolved storefront header.
func (s *Service) Header(ctx context.Context) (Header, error) {
	bag, err := s.Bag(ctx)
	if err != nil {
		return Header{}, err
	}
	return ResolveHeader(bag), nil
}

// Footer returns the resolved storefront footer.
func (s *Service) Footer(ctx context.Context) (Footer, error) {
	bag, err := s.Bag(ctx)
	if err != nil {
		return Footer{}, err
	}
	return ResolveFooter(bag), nil
}

// SaveSection validates and stores one section. Input problems are returned
// as httpserver.ValidationErrors. It returns the values written.
func (s *Service) SaveSection(ctx context.Context, req SaveRequest) ([]Value, error) {
	sec, ok := LookupSection(req.Section)
	if !ok {
		return nil, httpserver.ValidationErrors{{Field: "section", Message: "unknown settings section"}}
	}
	if len(req.Fields) == 0 && len(req.Files) == 0 {
		return nil, httpserver.ValidationErrors{{Field: "section", Message: "no fields to save"}}
	}

	var (
		errs     httpserver.ValidationErrors
		values   []Value
		payments []payment.Method
		payField SectionField
	)

	for _, name := range sortedKeys(req.Fields) {
		raw := req.Fields[name]
		f, ok := sec.Field(name)
		if !ok {
			errs = append(errs, httpserver.ValidationError{Field: name, Message: "not a field of section " + sec.Name})
			continue
		}

		switch f.Kind {
		case KindText:
			v := strings.TrimSpace(raw)
			if fe := httpserver.ValidateVar(name, v, f.Rule); len(fe) > 0 {
				errs = append(errs, fe...)
				continue
			}
			values = append(values, Value{Group: f.Group, Key: f.Key, Value: v})
		case KindBool:
			v, ok := parseToggle(raw)
			if !ok {
				errs = append(errs, httpserver.ValidationError{Field: name, Message: "must be a boolean"})
				continue
			}
			values = append(values, Value{Group: f.Group, Key: f.Key, Value: v})
		case KindLinks:
			links, fe := parseLinks(name, raw)
			if len(fe) > 0 {
				errs = append(errs, fe...)
				continue
			}
			encoded, _ := json.Marshal(links)
			values = append(values, Value{Group: f.Group, Key: f.Key, Value: string(encoded)})
		case KindPayments:
			methods, fe := parsePayments(name, raw)
			if len(fe) > 0 {
				errs = append(errs, fe...)
				continue
			}
			payments, payField = methods, f
		case KindFile:
			// A plain value keeps or clears an existing file reference.
			v := strings.TrimSpace(raw)
			if fe := httpserver.ValidateVar(name, v, "max=500"); len(fe) > 0 {
				errs = append(errs, fe...)
				continue
			}
			values = append(values, Value{Group: f.Group, Key: f.Key, Value: v})
		}
	}

	var paymentLogos map[int]Upload
	for _, name := range sortedKeys(req.Files) {
		if f, ok := sec.Field(name); ok && f.Kind == KindFile {
			continue
		}
		idx, ok := paymentLogoIndex(sec, name)
		if !ok {
			errs = append(errs, httpserver.ValidationError{Field: name, Message: "not a file field of section " + sec.Name})
			continue
		}
		if paymentLogos == nil {
			paymentLogos = map[int]Upload{}
		}
		paymentLogos[idx] = req.Files[name]
	}

	if len(paymentLogos) > 0 && payments == nil {
		f := paymentsField(sec)
		payField = f
		bag, err := s.Bag(ctx)
		if err != nil {
			return nil, err
		}
		payments = payment.Normalize(bag.Get(f.Group, f.Key, ""))
	}
	for idx := range paymentLogos {
		if idx >= len(payments) {
			errs = append(errs, httpserver.ValidationError{
				Field:   paymentLogoPrefix + strconv.Itoa(idx),
				Message: "no payment method at this position",
			})
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	for _, name := range sortedKeys(req.Files) {
		f, ok := sec.Field(name)
		if !ok || f.Kind != KindFile {
			continue
		}
		stored, err := s.storeUpload(ctx, name, req.Files[name])
		if err != nil {
			return nil, err
		}
		values = append(values, Value{Group: f.Group, Key: f.Key, Value: stored})
	}

	for _, idx := range sortedInts(paymentLogos) {
		name := paymentLogoPrefix + strconv.Itoa(idx)
		stored, err := s.storeUpload(ctx, name, paymentLogos[idx])
		if err != nil {
			return nil, err
		}
		payments[idx].Logo = stored
	}

	if payments != nil {
		encoded, _ := json.Marshal(payments)
		values = append(values, Value{Group: payField.Group, Key: payField.Key, Value: string(encoded)})
	}

	if err := s.store.Save(ctx, values); err != nil {
		return nil, fmt.Errorf("saving settings section %s: %w", sec.Name, err)
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	telemetry.SettingsSavesTotal.WithLabelValues(sec.Name).Inc()

	return values, nil
}

// storeUpload saves one file, turning rejected uploads into a field error.
func (s *Service) storeUpload(ctx context.Context, field string, up Upload) (string, error) {
	if s.uploads == nil {
		return "", errors.New("file uploads are not configured")
	}
	stored, err := s.uploads.Save(ctx, up.Filename, up.Reader)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedType) || errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrEmpty) {
			return "", httpserver.ValidationErrors{{Field: field, Message: err.Error()}}
		}
		return "", fmt.Errorf("storing upload %s: %w", field, err)
	}
	return stored, nil
}

func parseToggle(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "on", "yes":
		return "1", true
	case "0", "false", "off", "no", "":
		return "0", true
	default:
		return "", false
	}
}

func parseLinks(field, raw string) ([]Link, []httpserver.ValidationError) {
	var links []Link
	if err := json.Unmarshal([]byte(raw), &links); err != nil {
		return nil, []httpserver.ValidationError{{Field: field, Message: "must be a JSON array of links"}}
	}
	if len(links) > 20 {
		return nil, []httpserver.ValidationError{{Field: field, Message: "must contain at most 20 links"}}
	}

	var errs []httpserver.ValidationError
	for i, l := range links {
		prefix := fmt.Sprintf("%s.%d.", field, i)
		errs = append(errs, httpserver.ValidateVar(prefix+"label", l.Label, "required,max=100")...)
		errs = append(errs, httpserver.ValidateVar(prefix+"url", l.URL, "required,max=500")...)
	}
	if links == nil {
		links = []Link{}
	}
	return links, errs
}

func parsePayments(field, raw string) ([]payment.Method, []httpserver.ValidationError) {
	var methods []payment.Method
	if err := json.Unmarshal([]byte(raw), &methods); err != nil {
		return nil, []httpserver.ValidationError{{Field: field, Message: "must be a JSON array of payment methods"}}
	}

	var errs []httpserver.ValidationError
	for i, m := range methods {
		prefix := fmt.Sprintf("%s.%d.", field, i)
		errs = append(errs, httpserver.ValidateVar(prefix+"name", m.Name, "required,max=100")...)
		errs = append(errs, httpserver.ValidateVar(prefix+"logo", m.Logo, "max=500")...)
	}
	if methods == nil {
		methods = []payment.Method{}
	}
	return methods, errs
}

func paymentsField(sec Section) SectionField {
	for _, f := range sec.Fields {
		if f.Kind == KindPayments {
			return f
		}
	}
	return SectionField{}
}

func paymentLogoIndex(sec Section, name string) (int, bool) {
	if paymentsField(sec).Name == "" || !strings.HasPrefix(name, paymentLogoPrefix) {
		return 0, false
	}
	idx, err := strconv.Atoi(strings.TrimPrefix(name, paymentLogoPrefix))
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedInts[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
