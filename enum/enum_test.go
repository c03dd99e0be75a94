package enum

import (
	"encoding/json"
	"errors"
	"testing"
)

type shippingService string

const (
	shippingExpress  shippingService = "express"
	shippingPriority shippingService = "priority"
	shippingStandard shippingService = "standard"
)

var shippingServices = Strict("ShippingService", shippingExpress, shippingPriority, shippingStandard)

type category string

const (
	categoryUnknown    category = ""
	categoryBakeries   category = "bakeries"
	categoryBookStores category = "book_stores"
)

var categories = Permissive("Category", categoryUnknown, categoryBakeries, categoryBookStores)

func TestStrict_RoundTrip(t *testing.T) {
	for _, c := range shippingServices.Values() {
		got, err := shippingServices.Parse(string(c))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", c, err)
		}
		if got != c {
			t.Errorf("Parse(%q) = %q", c, got)
		}
	}
}

func TestStrict_Miss(t *testing.T) {
	_, err := shippingServices.Parse("overnight")
	if err == nil {
		t.Fatal("expected error for unknown value")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Enum != "ShippingService" {
		t.Errorf("Enum = %q, want ShippingService", pe.Enum)
	}
	if pe.Value != "overnight" {
		t.Errorf("Value = %q, want overnight", pe.Value)
	}
	if pe.Error() != `enum: "overnight" is not a valid ShippingService` {
		t.Errorf("unexpected message: %s", pe.Error())
	}
}

func TestPermissive_RoundTrip(t *testing.T) {
	for _, c := range categories.Values() {
		got, err := categories.Parse(string(c))
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", c, err)
		}
		if got != c {
			t.Errorf("Parse(%q) = %q", c, got)
		}
	}
}

func TestPermissive_Miss(t *testing.T) {
	for _, wire := range []string{"newly_added_category_2099", "", "BAKERIES"} {
		got, err := categories.Parse(wire)
		if err != nil {
			t.Errorf("Parse(%q) error = %v, want nil", wire, err)
		}
		if got != categoryUnknown {
			t.Errorf("Parse(%q) = %q, want unknown", wire, got)
		}
	}
}

func TestKnown(t *testing.T) {
	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"strict case", shippingServices.Known(shippingExpress), true},
		{"strict garbage", shippingServices.Known("overnight"), false},
		{"permissive case", categories.Known(categoryBakeries), true},
		{"permissive unknown", categories.Known(categoryUnknown), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("Known() = %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestValues_ReturnsCopy(t *testing.T) {
	vals := shippingServices.Values()
	vals[0] = "mutated"
	if shippingServices.Values()[0] != shippingExpress {
		t.Error("Values() must not expose internal storage")
	}
}

func TestPermissive_PanicsWhenUnknownIsKnown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Permissive("Bad", categoryBakeries, categoryBakeries)
}

func TestStrict_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Strict("Dup", shippingExpress, shippingExpress)
}

func TestUnmarshalJSON(t *testing.T) {
	var s shippingService
	if err := shippingServices.UnmarshalJSON([]byte(`"priority"`), &s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != shippingPriority {
		t.Errorf("got %q, want priority", s)
	}

	err := shippingServices.UnmarshalJSON([]byte(`"teleport"`), &s)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	if err := shippingServices.UnmarshalJSON([]byte(`42`), &s); err == nil {
		t.Error("expected error for non-string JSON")
	}

	var c category
	if err := categories.UnmarshalJSON([]byte(`"newly_added_category_2099"`), &c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != categoryUnknown {
		t.Errorf("got %q, want unknown", c)
	}
}

func TestUnmarshalJSON_InStruct(t *testing.T) {
	var out struct {
		Service json.RawMessage `json:"service"`
	}
	if err := json.Unmarshal([]byte(`{"service":"express"}`), &out); err != nil {
		t.Fatal(err)
	}
	var s shippingService
	if err := shippingServices.UnmarshalJSON(out.Service, &s); err != nil {
		t.Fatal(err)
	}
	if s != shippingExpress {
		t.Errorf("got %q", s)
	}
}

func TestMustParse(t *testing.T) {
	if got := shippingServices.MustParse("standard"); got != shippingStandard {
		t.Errorf("got %q", got)
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	shippingServices.MustParse("nope")
}

func TestSetAccessors(t *testing.T) {
	if shippingServices.Name() != "ShippingService" {
		t.Errorf("Name() = %q", shippingServices.Name())
	}
	if shippingServices.Permissive() {
		t.Error("strict set reports permissive")
	}
	if !categories.Permissive() {
		t.Error("permissive set reports strict")
	}
	if categories.Unknown() != categoryUnknown {
		t.Errorf("Unknown() = %q", categories.Unknown())
	}
}
