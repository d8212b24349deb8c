package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/httpserver"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/media"
)

type memStore struct {
	bag   Bag
	saved []Value
	loads int
	err   error
}

func (m *memStore) Load(context.Context) (Bag, error) {
	m.loads++
	if m.err != nil {
		return nil, m.err
	}
	return m.bag.Clone(), nil
}

func (m *memStore) Save(_ context.Context, values []Value) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, values...)
	if m.bag == nil {
		m.bag = Bag{}
	}
	for _, v := range values {
		if m.bag[v.Group] == nil {
			m.bag[v.Group] = map[string]string{}
		}
		m.bag[v.Group][v.Key] = v.Value
	}
	return nil
}

type memCache struct {
	bag         Bag
	invalidated int
}

func (c *memCache) Get(context.Context) (Bag, bool) { return c.bag, c.bag != nil }
func (c *memCache) Set(_ context.Context, b Bag)     { c.bag = b }
func (c *memCache) Invalidate(context.Context)       { c.bag = nil; c.invalidated++ }

type memUploader struct {
	n   int
	err error
}

func (u *memUploader) Save(_ context.Context, _ string, r io.Reader) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	u.n++
	return fmt.Sprintf("upload-%d.png", u.n), nil
}

func newTestService(bag Bag) (*Service, *memStore, *memCache, *memUploader) {
	store := &memStore{bag: bag}
	cache := &memCache{}
	up := &memUploader{}
	return NewService(store, cache, up, slog.Default()), store, cache, up
}

func savedValue(values []Value, group, key string) (string, bool) {
	for _, v := range values {
		if v.Group == group && v.Key == key {
			return v.Value, true
		}
	}
	return "", false
}

func TestBagUsesCache(t *testing.T) {
	svc, store, _, _ := newTestService(Bag{"general": {"site_name": "Shop"}})

	for i := 0; i < 3; i++ {
		if _, err := svc.Bag(context.Background()); err != nil {
			t.Fatalf("Bag: %v", err)
		}
	}
	if store.loads != 1 {
		t.Errorf("store loads = %d, want 1", store.loads)
	}
}

func TestBagStoreError(t *testing.T) {
	store := &memStore{err: errors.New("db down")}
	svc := NewService(store, nil, nil, slog.Default())
	if _, err := svc.Header(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSaveSectionValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        SaveRequest
		wantFields []string
	}{
		{"unknown section", SaveRequest{Section: "header_everything", Fields: map[string]string{"site_name": "x"}}, []string{"section"}},
		{"no fields", SaveRequest{Section: "header_branding"}, []string{"section"}},
		{"field of another section", SaveRequest{Section: "header_branding", Fields: map[string]string{"site_name": "x", "show_cart": "1"}}, []string{"show_cart"}},
		{"bad toggle", SaveRequest{Section: "header_visibility", Fields: map[string]string{"show_cart": "maybe"}}, []string{"show_cart"}},
		{"bad email", SaveRequest{Section: "footer_contact", Fields: map[string]string{"email": "nope"}}, []string{"email"}},
		{"bad url", SaveRequest{Section: "footer_social", Fields: map[string]string{"facebook_url": "facebook"}}, []string{"facebook_url"}},
		{"too long", SaveRequest{Section: "header_branding", Fields: map[string]string{"site_name": strings.Repeat("x", 256)}}, []string{"site_name"}},
		{"links not json", SaveRequest{Section: "header_navigation", Fields: map[string]string{"nav_links": "home"}}, []string{"nav_links"}},
		{"link missing url", SaveRequest{Section: "header_navigation", Fields: map[string]string{"nav_links": `[{"label":"Home"}]`}}, []string{"nav_links.0.url"}},
		{"payment missing name", SaveRequest{Section: "footer_payment", Fields: map[string]string{"payment_methods": `[{"logo":"a.png"}]`}}, []string{"payment_methods.0.name"}},
		{"payment logo out of range", SaveRequest{Section: "footer_payment", Files: map[string]Upload{"payment_logo_9": {Filename: "x.png", Reader: strings.NewReader("x")}}}, []string{"payment_logo_9"}},
		{"file on section without files", SaveRequest{Section: "footer_social", Files: map[string]Upload{"logo": {Filename: "x.png", Reader: strings.NewReader("x")}}}, []string{"logo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, cache, _ := newTestService(nil)
			_, err := svc.SaveSection(context.Background(), tt.req)

			var ve httpserver.ValidationErrors
			if !errors.As(err, &ve) {
				t.Fatalf("err = %v, want ValidationErrors", err)
			}
			var got []string
			for _, e := range ve {
				got = append(got, e.Field)
			}
			if strings.Join(got, ",") != strings.Join(tt.wantFields, ",") {
				t.Errorf("fields = %v, want %v", got, tt.wantFields)
			}
			if len(store.saved) != 0 {
				t.Errorf("saved %d values on validation failure", len(store.saved))
			}
			if cache.invalidated != 0 {
				t.Error("cache invalidated on validation failure")
			}
		})
	}
}

func TestSaveSectionStoresOnlyThatSection(t *testing.T) {
	svc, store, cache, _ := newTestService(nil)

	values, err := svc.SaveSection(context.Background(), SaveRequest{
		Section: "header_visibility",
		Fields:  map[string]string{"show_cart": "false", "show_search": "on"},
	})
	if err != nil {
		t.Fatalf("SaveSection: %v", err)
	}
	if len(values) != 2 {
		t.Fatalf("values = %+v, want 2", values)
	}
	if v, _ := savedValue(store.saved, GroupHeader, "show_cart"); v != "0" {
		t.Errorf("show_cart = %q, want 0", v)
	}
	if v, _ := savedValue(store.saved, GroupHeader, "show_search"); v != "1" {
		t.Errorf("show_search = %q, want 1", v)
	}
	if cache.invalidated != 1 {
		t.Errorf("invalidated = %d, want 1", cache.invalidated)
	}

	h, err := svc.Header(context.Background())
	if err != nil {
		t.Fatalf("Header: %v", err)
	}
	if h.ShowCart || !h.ShowSearch {
		t.Errorf("resolved header = %+v", h)
	}
}

func TestSaveSectionLinksAndLogo(t *testing.T) {
	svc, store, _, up := newTestService(nil)

	_, err := svc.SaveSection(context.Background(), SaveRequest{
		Section: "header_branding",
		Fields:  map[string]string{"site_name": "  E-Club BD  "},
		Files:   map[string]Upload{"logo": {Filename: "logo.png", Reader: strings.NewReader("png")}},
	})
	if err != nil {
		t.Fatalf("SaveSection: %v", err)
	}
	if up.n != 1 {
		t.Errorf("uploads = %d, want 1", up.n)
	}
	if v, _ := savedValue(store.saved, GroupHeader, "site_name"); v != "E-Club BD" {
		t.Errorf("site_name = %q", v)
	}
	if v, _ := savedValue(store.saved, GroupHeader, "logo"); v != "upload-1.png" {
		t.Errorf("logo = %q", v)
	}

	_, err = svc.SaveSection(context.Background(), SaveRequest{
		Section: "footer_links",
		Fields:  map[string]string{"quick_links": `[{"label":"Shop","url":"/shop"}]`},
	})
	if err != nil {
		t.Fatalf("SaveSection links: %v", err)
	}
	f, _ := svc.Footer(context.Background())
	if len(f.QuickLinks) != 1 || f.QuickLinks[0].URL != "/shop" {
		t.Errorf("QuickLinks = %+v", f.QuickLinks)
	}
	if f.LogoURL != "/storage/upload-1.png" {
		t.Errorf("footer logo falls back to header logo, got %q", f.LogoURL)
	}
}

func TestSaveSectionPaymentLogos(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	_, err := svc.SaveSection(context.Background(), SaveRequest{
		Section: "footer_payment",
		Fields:  map[string]string{"payment_methods": `[{"id":"cod","name":"Cash on Delivery","logo":""},{"name":"bKash","logo":"bkash.png"}]`},
		Files:   map[string]Upload{"payment_logo_0": {Filename: "cod.png", Reader: strings.NewReader("png")}},
	})
	if err != nil {
		t.Fatalf("SaveSection: %v", err)
	}

	f, _ := svc.Footer(context.Background())
	if len(f.PaymentMethods) != 2 {
		t.Fatalf("PaymentMethods = %+v", f.PaymentMethods)
	}
	if f.PaymentMethods[0].ID != "cod" || f.PaymentMethods[0].Logo != "/storage/upload-1.png" {
		t.Errorf("first method = %+v", f.PaymentMethods[0])
	}
	if f.PaymentMethods[1].Logo != "/storage/bkash.png" {
		t.Errorf("second method = %+v", f.PaymentMethods[1])
	}
}

func TestSaveSectionPaymentLogoOnly(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	_, err := svc.SaveSection(context.Background(), SaveRequest{
		Section: "footer_payment",
		Files:   map[string]Upload{"payment_logo_3": {Filename: "bkash.png", Reader: strings.NewReader("png")}},
	})
	if err != nil {
		t.Fatalf("SaveSection: %v", err)
	}
	f, _ := svc.Footer(context.Background())
	if len(f.PaymentMethods) != 5 {
		t.Fatalf("PaymentMethods len = %d, want 5", len(f.PaymentMethods))
	}
	if f.PaymentMethods[3].Logo != "/storage/upload-1.png" {
		t.Errorf("bKash logo = %q", f.PaymentMethods[3].Logo)
	}
}

func TestSaveSectionRejectedUpload(t *testing.T) {
	svc, store, _, up := newTestService(nil)
	up.err = fmt.Errorf("%w: logo.txt is text/plain", media.ErrUnsupportedType)

	_, err := svc.SaveSection(context.Background(), SaveRequest{
		Section: "header_branding",
		Files:   map[string]Upload{"logo": {Filename: "logo.txt", Reader: strings.NewReader("hi")}},
	})
	var ve httpserver.ValidationErrors
	if !errors.As(err, &ve) || len(ve) != 1 || ve[0].Field != "logo" {
		t.Fatalf("err = %v, want logo validation error", err)
	}
	if len(store.saved) != 0 {
		t.Error("values saved after rejected upload")
	}
}

func TestSectionsRegistry(t *testing.T) {
	want := []string{
		"footer_branding", "footer_contact", "footer_links", "footer_newsletter", "footer_payment",
		"footer_social", "header_branding", "header_navigation", "header_top_bar", "header_visibility",
	}
	got := Sections()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, s := range got {
		if s.Name != want[i] {
			t.Errorf("sections[%d] = %q, want %q", i, s.Name, want[i])
		}
	}
}
