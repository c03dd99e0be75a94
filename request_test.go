package stripe

import (
	"errors"
	"fmt"
	"testing"

	"github.com/broady/stripe/form"
)

type testColor string

func (c testColor) Known() bool { return c == "red" }

type listParams struct {
	ListParams
	Status *string     `form:"status"`
	Colors []testColor `form:"colors"`
}

func TestNewRequest_DefaultPlacement(t *testing.T) {
	tests := []struct {
		method Method
		want   Placement
	}{
		{MethodGet, PlacementQuery},
		{MethodDelete, PlacementQuery},
		{MethodPost, PlacementForm},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			req := NewRequest(tt.method, "/things")
			if req.Placement() != tt.want {
				t.Errorf("Placement() = %s, want %s", req.Placement(), tt.want)
			}
			if s, err := req.Encode(); err != nil || s != "" {
				t.Errorf("Encode() = %q, %v; want empty", s, err)
			}
		})
	}
}

func TestNewRequest_PanicsOnUnknownMethod(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewRequest("PATCH", "/things")
}

func TestRequest_QueryPlacement(t *testing.T) {
	req := NewRequest(MethodGet, "/issuing/cards").Query(&listParams{
		ListParams: ListParams{Limit: Int64(3)},
		Status:     String("active"),
	})

	if got := req.URL(); got != "/issuing/cards?limit=3&status=active" {
		t.Errorf("URL() = %q", got)
	}
	if req.Body() != "" {
		t.Errorf("Body() = %q, want empty", req.Body())
	}
	if req.ContentType() != "" {
		t.Errorf("ContentType() = %q, want empty", req.ContentType())
	}
}

func TestRequest_FormPlacement(t *testing.T) {
	req := NewRequest(MethodPost, "/issuing/cards").Form(map[string]string{"currency": "usd", "type": "virtual"})

	if req.URL() != "/issuing/cards" {
		t.Errorf("URL() = %q", req.URL())
	}
	if req.Body() != "currency=usd&type=virtual" {
		t.Errorf("Body() = %q", req.Body())
	}
	if req.ContentType() != FormContentType {
		t.Errorf("ContentType() = %q", req.ContentType())
	}
}

func TestRequest_PlacementOverride(t *testing.T) {
	params := map[string]string{"a": "1"}
	asQuery := NewRequest(MethodPost, "/x").Query(params)
	asForm := NewRequest(MethodPost, "/x").Form(params)

	if asQuery.Placement() != PlacementQuery || asForm.Placement() != PlacementForm {
		t.Fatalf("placements = %s, %s", asQuery.Placement(), asForm.Placement())
	}
	if !asQuery.Values().Equal(asForm.Values()) {
		t.Error("placement override must not change content")
	}
}

func TestRequest_Snapshot(t *testing.T) {
	params := &listParams{Status: String("active")}
	req := NewRequest(MethodGet, "/issuing/cards").Query(params)

	params.Status = String("canceled")
	params.Limit = Int64(1)

	if got, _ := req.Encode(); got != "status=active" {
		t.Errorf("request changed after params mutated: %q", got)
	}
}

func TestRequest_BindReturnsCopy(t *testing.T) {
	base := NewRequest(MethodGet, "/x")
	bound := base.Query(map[string]string{"a": "1"})
	if base == bound {
		t.Fatal("Query must return a new request")
	}
	if len(base.Values()) != 0 {
		t.Errorf("base mutated: %v", base.Values())
	}
}

func TestRequest_WithParam(t *testing.T) {
	base := NewRequest(MethodGet, "/x").Query(form.Values{{Key: "starting_after", Value: "a"}, {Key: "limit", Value: "2"}})
	next := base.WithParam("starting_after", "b")

	if got, _ := next.Encode(); got != "starting_after=b&limit=2" {
		t.Errorf("next = %q", got)
	}
	if got, _ := base.Encode(); got != "starting_after=a&limit=2" {
		t.Errorf("base mutated: %q", got)
	}
}

func TestRequest_EncodeError(t *testing.T) {
	req := NewRequest(MethodGet, "/x").Query(&listParams{Colors: []testColor{"red", ""}})

	if !errors.Is(req.Err(), form.ErrUnknownValue) {
		t.Fatalf("Err() = %v, want ErrUnknownValue", req.Err())
	}
	if _, err := req.Encode(); err == nil {
		t.Error("Encode() should return the bind error")
	}
	if len(req.Values()) != 0 {
		t.Errorf("Values() = %v, want empty", req.Values())
	}
}

func TestRequest_Equal(t *testing.T) {
	build := func(status string) *Request {
		return NewRequest(MethodGet, "/x").Query(&listParams{Status: String(status)})
	}
	if !build("a").Equal(build("a")) {
		t.Error("equal requests compare unequal")
	}
	if build("a").Equal(build("b")) {
		t.Error("different values compare equal")
	}
	if NewRequest(MethodGet, "/x").Equal(NewRequest(MethodDelete, "/x")) {
		t.Error("different methods compare equal")
	}
	if NewRequest(MethodPost, "/x").Query(nil).Equal(NewRequest(MethodPost, "/x")) {
		t.Error("different placements compare equal")
	}
}

func TestRequest_IsTestHelper(t *testing.T) {
	if !NewRequest(MethodPost, "/test_helpers/issuing/cards/ic_1/shipping/ship").IsTestHelper() {
		t.Error("test helper path not detected")
	}
	if NewRequest(MethodPost, "/issuing/cards/ic_1").IsTestHelper() {
		t.Error("regular path detected as test helper")
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		template string
		args     []string
		want     string
	}{
		{"/issuing/cards", nil, "/issuing/cards"},
		{"/issuing/cards/{card}", []string{"ic_123"}, "/issuing/cards/ic_123"},
		{"/test_helpers/issuing/cards/{card}/shipping/ship", []string{"ic_1"}, "/test_helpers/issuing/cards/ic_1/shipping/ship"},
		{"/a/{x}/b/{y}", []string{"1", "2"}, "/a/1/b/2"},
		{"/tax_ids/{id}", []string{"a/b c"}, "/tax_ids/a%2Fb%20c"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatPath(tt.template, tt.args...); got != tt.want {
				t.Errorf("FormatPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPath_Mismatch(t *testing.T) {
	tests := []struct {
		name     string
		template string
		args     []string
	}{
		{"underfill", "/issuing/cards/{card}", nil},
		{"overfill", "/issuing/cards", []string{"ic_1"}},
		{"partial", "/a/{x}/b/{y}", []string{"1"}},
		{"unterminated", "/a/{x", []string{"1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic")
				}
				err, ok := r.(error)
				if !ok || !errors.Is(err, ErrPathTemplate) {
					t.Errorf("panic value = %v, want ErrPathTemplate", r)
				}
			}()
			FormatPath(tt.template, tt.args...)
		})
	}
}

func TestParseMethod(t *testing.T) {
	for _, m := range []Method{MethodGet, MethodPost, MethodDelete} {
		got, err := ParseMethod(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMethod(%q) = %q, %v", m, got, err)
		}
	}
	if _, err := ParseMethod("get"); err == nil {
		t.Error("method parsing must be case-sensitive and strict")
	}
}

func TestRequest_String(t *testing.T) {
	req := NewRequest(MethodDelete, "/tax_ids/txi_1")
	if got := fmt.Sprint(req); got != "DELETE /tax_ids/txi_1" {
		t.Errorf("String() = %q", got)
	}
}
