package payment

import (
	"reflect"
	"testing"
)

func TestNormalizeFallsBackToCatalog(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"empty list", []any{}},
		{"empty string", ""},
		{"not json", "not json"},
		{"json object", `{"name":"X","logo":"/x.png"}`},
		{"json number", "42"},
		{"number", 42},
		{"object", map[string]any{"name": "X"}},
		{"non-object elements take catalog entries", []any{nil, nil, nil, nil, nil, "x"}},
	}

	want := DefaultCatalog()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.value)
			if len(got) != 5 {
				t.Fatalf("len = %d, want 5", len(got))
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %+v, want catalog", got)
			}
		})
	}
}

func TestNormalizeDoesNotPad(t *testing.T) {
	got := Normalize([]any{map[string]any{"name": "X", "logo": "/x.png"}})
	want := []Method{{ID: "visa", Name: "X", Logo: "/x.png"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeGeneratedID(t *testing.T) {
	items := make([]any, 7)
	for i := range items {
		items[i] = map[string]any{"name": "M", "logo": "m.png"}
	}
	got := Normalize(items)
	if len(got) != 7 {
		t.Fatalf("len = %d, want 7", len(got))
	}
	if got[5].ID != "payment-5" || got[6].ID != "payment-6" {
		t.Errorf("ids = %q, %q; want payment-5, payment-6", got[5].ID, got[6].ID)
	}
	if got[6].Logo != "/storage/m.png" {
		t.Errorf("logo = %q, want /storage/m.png", got[6].Logo)
	}
}

func TestNormalizeNumericIDs(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"zero falls back to catalog", `[{"id":0,"name":"X","logo":"/x.png"}]`, "visa"},
		{"zero beyond catalog", `[{},{},{},{},{},{"id":0,"name":"X","logo":"/x.png"}]`, "payment-5"},
		{"non-zero kept", `[{"id":3,"name":"X","logo":"/x.png"}]`, "3"},
		{"large id not exponent", `[{"id":1000000,"name":"X","logo":"/x.png"}]`, "1000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.json)
			last := got[len(got)-1]
			if last.ID != tt.want {
				t.Errorf("id = %q, want %q", last.ID, tt.want)
			}
		})
	}
}

func TestNormalizeJSONStringMatchesParsed(t *testing.T) {
	fromString := Normalize(`[{"name":"X","logo":"/x.png"}]`)
	fromList := Normalize([]any{map[string]any{"name": "X", "logo": "/x.png"}})
	if !reflect.DeepEqual(fromString, fromList) {
		t.Errorf("string %+v != list %+v", fromString, fromList)
	}
}

func TestNormalizeMergesWithCatalogByPosition(t *testing.T) {
	got := Normalize(`[{}, {"name":"Master"}, {"id":"custom","logo":"https://cdn.example.com/a.png"}]`)
	want := []Method{
		defaultCatalog[0],
		{ID: "mastercard", Name: "Master", Logo: "/images/payments/mastercard.svg"},
		{ID: "custom", Name: "American Express", Logo: "https://cdn.example.com/a.png"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestNormalizeDropsIncompleteBeyondCatalog(t *testing.T) {
	items := []any{
		map[string]any{"name": "A", "logo": "a.png"},
		map[string]any{"name": "B", "logo": "b.png"},
		map[string]any{"name": "C", "logo": "c.png"},
		map[string]any{"name": "D", "logo": "d.png"},
		map[string]any{"name": "E", "logo": "e.png"},
		map[string]any{"name": "no logo"},
	}
	got := Normalize(items)
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for _, m := range got {
		if m.Name == "" || m.Logo == "" {
			t.Errorf("incomplete entry kept: %+v", m)
		}
	}
}

func TestNormalizeTypedSlices(t *testing.T) {
	got := Normalize([]Method{{Name: "Cash", Logo: "cash.png"}})
	want := []Method{{ID: "visa", Name: "Cash", Logo: "/storage/cash.png"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestNormalizeLogo(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"/images/visa.svg", "/images/visa.svg"},
		{"https://cdn.example.com/x.png", "https://cdn.example.com/x.png"},
		{"http://cdn.example.com/x.png", "http://cdn.example.com/x.png"},
		{"logos/bkash.png", "/storage/logos/bkash.png"},
	}
	for _, tt := range tests {
		if got := NormalizeLogo(tt.in); got != tt.want {
			t.Errorf("NormalizeLogo(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultCatalogIsCopy(t *testing.T) {
	c := DefaultCatalog()
	c[0].Name = "changed"
	if DefaultCatalog()[0].Name != "VISA" {
		t.Error("DefaultCatalog returned shared slice")
	}
	names := []string{"VISA", "Mastercard", "American Express", "bKash", "Nagad"}
	for i, m := range DefaultCatalog() {
		if m.Name != names[i] {
			t.Errorf("catalog[%d] = %q, want %q", i, m.Name, names[i])
		}
	}
}
