package stripetest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/broady/stripe"
	"github.com/broady/stripe/form"
	"github.com/broady/stripe/issuing"
	"github.com/broady/stripe/tax"
	"github.com/broady/stripe/testutil"
)

var epoch = time.Unix(1700000000, 0).UTC()

func newTestServer() *Server {
	return NewServer(WithClock(func() time.Time { return epoch }))
}

func serve(s *Server, b *testutil.RequestBuilder) *httptest.ResponseRecorder {
	req, w := b.Build()
	s.ServeHTTP(w, req)
	return w
}

func authed() *testutil.RequestBuilder {
	return testutil.NewRequest().WithBearer(DefaultAPIKey)
}

func pairs(kv ...string) form.Values {
	var v form.Values
	for i := 0; i+1 < len(kv); i += 2 {
		v.Add(kv[i], kv[i+1])
	}
	return v
}

func createVirtual(t *testing.T, s *Server, extra ...string) *issuing.Card {
	t.Helper()
	body := pairs(append([]string{"currency", "usd", "type", "virtual"}, extra...)...)
	w := serve(s, authed().POST("/v1/issuing/cards").WithForm(body))
	testutil.AssertStatus(t, w, http.StatusOK)
	var c issuing.Card
	testutil.DecodeJSON(t, w, &c)
	return &c
}

var shippingPairs = []string{
	"shipping[address][city]", "Paris",
	"shipping[address][country]", "FR",
	"shipping[address][line1]", "1 rue",
	"shipping[address][postal_code]", "75001",
	"shipping[name]", "Jane",
}

func TestServer_Authentication(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name    string
		builder *testutil.RequestBuilder
	}{
		{"missing", testutil.NewRequest().GET("/v1/issuing/cards")},
		{"wrong key", testutil.NewRequest().WithBearer("sk_test_other").GET("/v1/issuing/cards")},
		{"not bearer", testutil.NewRequest().WithHeader("Authorization", "Basic abc").GET("/v1/issuing/cards")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, tt.builder)
			testutil.AssertStatus(t, w, http.StatusUnauthorized)
			testutil.AssertAPIError(t, w, "invalid_request_error")
		})
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	w := serve(newTestServer(), authed().GET("/v1/nope"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	testutil.AssertAPIError(t, w, "invalid_request_error")
}

func TestServer_CreateCard(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s, "cardholder", "ich_42", "metadata[order]", "7")

	if c.ID != "ic_0001" || c.Object != "issuing.card" {
		t.Errorf("id/object = %s/%s", c.ID, c.Object)
	}
	if c.Status != issuing.CardStatusInactive || c.Type != issuing.CardTypeVirtual {
		t.Errorf("status/type = %s/%s", c.Status, c.Type)
	}
	if c.Cardholder == nil || c.Cardholder.ID != "ich_42" {
		t.Errorf("cardholder = %+v", c.Cardholder)
	}
	if c.Created != epoch.Unix() || c.ExpYear != int64(epoch.Year()+3) {
		t.Errorf("created=%d exp_year=%d", c.Created, c.ExpYear)
	}
	if c.Metadata["order"] != "7" {
		t.Errorf("metadata = %v", c.Metadata)
	}
	if _, ok := s.Card("ic_0001"); !ok {
		t.Error("card not stored")
	}
}

func TestServer_CreateCardValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      form.Values
		wantParam string
	}{
		{"missing currency", pairs("type", "virtual"), "currency"},
		{"bad currency", pairs("currency", "USD", "type", "virtual"), "currency"},
		{"bad type", pairs("currency", "usd", "type", "plastic"), "type"},
		{"bad status", pairs("currency", "usd", "type", "virtual", "status", "canceled"), "status"},
		{"physical without shipping", pairs("currency", "usd", "type", "physical"), "shipping"},
		{"shipping without name", pairs("currency", "usd", "type", "physical", "shipping[address][city]", "Paris"), "shipping[name]"},
		{"unknown category", pairs("currency", "usd", "type", "virtual", "spending_controls[blocked_categories][]", "not_a_category"), "spending_controls[blocked_categories]"},
		{"shipping without line1", pairs("currency", "usd", "type", "physical",
			"shipping[name]", "Jane", "shipping[address][city]", "Paris", "shipping[address][country]", "FR", "shipping[address][postal_code]", "75001"), "shipping[address][line1]"},
		{"bad interval", pairs("currency", "usd", "type", "virtual", "spending_controls[spending_limits][0][amount]", "100", "spending_controls[spending_limits][0][interval]", "hourly"), "spending_controls[spending_limits][0][interval]"},
		{"bad amount", pairs("currency", "usd", "type", "virtual", "spending_controls[spending_limits][0][amount]", "lots", "spending_controls[spending_limits][0][interval]", "daily"), "spending_controls[spending_limits][0][amount]"},
		{"bad second limit category", pairs("currency", "usd", "type", "virtual",
			"spending_controls[spending_limits][0][amount]", "100", "spending_controls[spending_limits][0][interval]", "daily",
			"spending_controls[spending_limits][1][amount]", "200", "spending_controls[spending_limits][1][interval]", "weekly",
			"spending_controls[spending_limits][1][categories][]", "not_a_category"), "spending_controls[spending_limits][1][categories]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestServer(), authed().POST("/v1/issuing/cards").WithForm(tt.body))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			e := testutil.AssertAPIError(t, w, "invalid_request_error")
			if e.Param != tt.wantParam {
				t.Errorf("param = %q, want %q (message: %s)", e.Param, tt.wantParam, e.Message)
			}
		})
	}
}

func TestServer_UpdateCardValidation(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s)
	w := serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs(
		"spending_controls[spending_limits][0][amount]", "100",
		"spending_controls[spending_limits][0][interval]", "fortnightly")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
	if e := testutil.AssertAPIError(t, w, "invalid_request_error"); e.Param != "spending_controls[spending_limits][0][interval]" {
		t.Errorf("param = %q", e.Param)
	}
}

func TestNestParam(t *testing.T) {
	tests := []struct {
		parent, param, want string
	}{
		{"shipping", "name", "shipping[name]"},
		{"shipping", "address[line1]", "shipping[address][line1]"},
		{"spending_controls", "blocked_categories", "spending_controls[blocked_categories]"},
		{"spending_controls", "spending_limits[0][amount]", "spending_controls[spending_limits][0][amount]"},
	}
	for _, tt := range tests {
		if got := nestParam(tt.parent, tt.param); got != tt.want {
			t.Errorf("nestParam(%q, %q) = %q, want %q", tt.parent, tt.param, got, tt.want)
		}
	}
}

func TestServer_CreatePhysicalCard(t *testing.T) {
	s := newTestServer()
	body := pairs(append([]string{"currency", "eur", "type", "physical", "shipping[service]", "express"}, shippingPairs...)...)
	w := serve(s, authed().POST("/v1/issuing/cards").WithForm(body))
	testutil.AssertStatus(t, w, http.StatusOK)

	var c issuing.Card
	testutil.DecodeJSON(t, w, &c)
	if c.Shipping == nil {
		t.Fatal("no shipping")
	}
	if *c.Shipping.Address.City != "Paris" || c.Shipping.Name != "Jane" {
		t.Errorf("shipping = %+v", c.Shipping)
	}
	if c.Shipping.PhoneNumber != nil {
		t.Errorf("phone number = %q, want absent", *c.Shipping.PhoneNumber)
	}
	if c.Shipping.Service != issuing.ShippingServiceExpress {
		t.Errorf("service = %s", c.Shipping.Service)
	}
	if c.Shipping.Status == nil || *c.Shipping.Status != issuing.ShippingStatusPending {
		t.Errorf("shipping status = %v", c.Shipping.Status)
	}
}

func TestServer_SpendingControls(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s,
		"spending_controls[allowed_categories][]", "bakeries",
		"spending_controls[allowed_categories][]", "book_stores",
		"spending_controls[spending_limits][0][amount]", "5000",
		"spending_controls[spending_limits][0][interval]", "daily",
		"spending_controls[spending_limits][0][categories][]", "bakeries",
	)
	sc := c.SpendingControls
	if len(sc.AllowedCategories) != 2 || sc.AllowedCategories[1] != issuing.MerchantCategoryBookStores {
		t.Errorf("allowed = %v", sc.AllowedCategories)
	}
	if len(sc.SpendingLimits) != 1 || sc.SpendingLimits[0].Amount != 5000 || sc.SpendingLimits[0].Interval != issuing.SpendingLimitDaily {
		t.Errorf("limits = %+v", sc.SpendingLimits)
	}

	// An explicit empty value clears the rule.
	w := serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs("spending_controls[allowed_categories]", "")))
	testutil.AssertStatus(t, w, http.StatusOK)
	stored, _ := s.Card(c.ID)
	if len(stored.SpendingControls.AllowedCategories) != 0 {
		t.Errorf("allowed after clear = %v", stored.SpendingControls.AllowedCategories)
	}
	if len(stored.SpendingControls.SpendingLimits) != 1 {
		t.Errorf("limits should be untouched, got %+v", stored.SpendingControls.SpendingLimits)
	}
}

func TestServer_GetCard(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s)

	w := serve(s, authed().GET("/v1/issuing/cards/"+c.ID))
	testutil.AssertStatus(t, w, http.StatusOK)
	var got issuing.Card
	testutil.DecodeJSON(t, w, &got)
	if got.ID != c.ID {
		t.Errorf("id = %s", got.ID)
	}

	w = serve(s, authed().GET("/v1/issuing/cards/ic_missing"))
	testutil.AssertStatus(t, w, http.StatusNotFound)
	if e := testutil.AssertAPIError(t, w, "invalid_request_error"); e.Code != "resource_missing" {
		t.Errorf("code = %q", e.Code)
	}
}

func TestServer_UpdateCardMetadata(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s, "metadata[a]", "1", "metadata[b]", "2")

	w := serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs("metadata[b]", "", "metadata[c]", "3")))
	testutil.AssertStatus(t, w, http.StatusOK)
	stored, _ := s.Card(c.ID)
	if len(stored.Metadata) != 2 || stored.Metadata["a"] != "1" || stored.Metadata["c"] != "3" {
		t.Errorf("metadata after merge = %v", stored.Metadata)
	}

	w = serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs("metadata", "")))
	testutil.AssertStatus(t, w, http.StatusOK)
	stored, _ = s.Card(c.ID)
	if len(stored.Metadata) != 0 {
		t.Errorf("metadata after clear = %v", stored.Metadata)
	}
}

func TestServer_CanceledCardIsFinal(t *testing.T) {
	s := newTestServer()
	c := createVirtual(t, s)

	w := serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs("status", "canceled", "cancellation_reason", "lost")))
	testutil.AssertStatus(t, w, http.StatusOK)
	var got issuing.Card
	testutil.DecodeJSON(t, w, &got)
	if got.Status != issuing.CardStatusCanceled || got.CancellationReason == nil || *got.CancellationReason != issuing.CancellationReasonLost {
		t.Errorf("card = %+v", got)
	}

	w = serve(s, authed().POST("/v1/issuing/cards/"+c.ID).WithForm(pairs("status", "active")))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestServer_ListCards(t *testing.T) {
	s := newTestServer()
	for range 5 {
		createVirtual(t, s)
	}
	serve(s, authed().POST("/v1/issuing/cards/ic_0002").WithForm(pairs("status", "active")))

	list := func(b *testutil.RequestBuilder) *stripe.List[*issuing.Card] {
		t.Helper()
		w := serve(s, b)
		testutil.AssertStatus(t, w, http.StatusOK)
		var l stripe.List[*issuing.Card]
		testutil.DecodeJSON(t, w, &l)
		return &l
	}
	idsOf := func(l *stripe.List[*issuing.Card]) []string {
		var out []string
		for _, c := range l.Data {
			out = append(out, c.ID)
		}
		return out
	}

	tests := []struct {
		name        string
		builder     *testutil.RequestBuilder
		wantIDs     []string
		wantHasMore bool
	}{
		{"newest first", authed().GET("/v1/issuing/cards").WithQuery("limit", "2"), []string{"ic_0005", "ic_0004"}, true},
		{"starting after", authed().GET("/v1/issuing/cards").WithQuery("limit", "2").WithQuery("starting_after", "ic_0004"), []string{"ic_0003", "ic_0002"}, true},
		{"last page", authed().GET("/v1/issuing/cards").WithQuery("starting_after", "ic_0002"), []string{"ic_0001"}, false},
		{"ending before", authed().GET("/v1/issuing/cards").WithQuery("limit", "2").WithQuery("ending_before", "ic_0002"), []string{"ic_0004", "ic_0003"}, true},
		{"status filter", authed().GET("/v1/issuing/cards").WithQuery("status", "active"), []string{"ic_0002"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := list(tt.builder)
			got := idsOf(l)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
				}
			}
			if l.HasMore != tt.wantHasMore {
				t.Errorf("has_more = %v, want %v", l.HasMore, tt.wantHasMore)
			}
			if l.Object != "list" || l.URL != "/v1/issuing/cards" {
				t.Errorf("envelope = %s %s", l.Object, l.URL)
			}
		})
	}
}

func TestServer_ListCardsValidation(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name      string
		key, val  string
		status    int
		wantParam string
	}{
		{"limit too large", "limit", "101", http.StatusBadRequest, "limit"},
		{"limit not a number", "limit", "ten", http.StatusBadRequest, "limit"},
		{"bad status", "status", "lost", http.StatusBadRequest, "status"},
		{"unknown cursor", "starting_after", "ic_9999", http.StatusNotFound, "starting_after"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(s, authed().GET("/v1/issuing/cards").WithQuery(tt.key, tt.val))
			testutil.AssertStatus(t, w, tt.status)
			if e := testutil.AssertAPIError(t, w, "invalid_request_error"); e.Param != tt.wantParam {
				t.Errorf("param = %q, want %q", e.Param, tt.wantParam)
			}
		})
	}
}

func TestServer_ShippingTransitions(t *testing.T) {
	s := newTestServer()
	body := pairs(append([]string{"currency", "usd", "type", "physical"}, shippingPairs...)...)
	w := serve(s, authed().POST("/v1/issuing/cards").WithForm(body))
	testutil.AssertStatus(t, w, http.StatusOK)
	var c issuing.Card
	testutil.DecodeJSON(t, w, &c)

	helper := func(action string) *httptest.ResponseRecorder {
		return serve(s, authed().POST("/v1/test_helpers/issuing/cards/"+c.ID+"/shipping/"+action))
	}

	testutil.AssertStatus(t, helper("deliver"), http.StatusBadRequest)

	steps := []struct {
		action string
		want   issuing.ShippingStatus
	}{
		{"ship", issuing.ShippingStatusShipped},
		{"deliver", issuing.ShippingStatusDelivered},
		{"return", issuing.ShippingStatusReturned},
	}
	for _, step := range steps {
		w := helper(step.action)
		testutil.AssertStatus(t, w, http.StatusOK)
		var got issuing.Card
		testutil.DecodeJSON(t, w, &got)
		if got.Shipping.Status == nil || *got.Shipping.Status != step.want {
			t.Fatalf("after %s: status = %v, want %s", step.action, got.Shipping.Status, step.want)
		}
		if step.action == "ship" && (got.Shipping.Carrier == nil || got.Shipping.TrackingNumber == nil) {
			t.Errorf("shipped card has no carrier or tracking number")
		}
	}

	testutil.AssertStatus(t, helper("teleport"), http.StatusNotFound)

	virtual := createVirtual(t, s)
	w = serve(s, authed().POST("/v1/test_helpers/issuing/cards/"+virtual.ID+"/shipping/ship"))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestServer_IdempotentReplay(t *testing.T) {
	s := newTestServer()
	body := pairs("currency", "usd", "type", "virtual")
	post := func(key string, body form.Values) *httptest.ResponseRecorder {
		return serve(s, authed().POST("/v1/issuing/cards").WithHeader("Idempotency-Key", key).WithForm(body))
	}

	first := post("key-1", body)
	testutil.AssertStatus(t, first, http.StatusOK)
	var a issuing.Card
	testutil.DecodeJSON(t, first, &a)

	second := post("key-1", body)
	testutil.AssertStatus(t, second, http.StatusOK)
	testutil.AssertHeader(t, second, "Idempotent-Replayed", "true")
	var b issuing.Card
	testutil.DecodeJSON(t, second, &b)
	if a.ID != b.ID {
		t.Errorf("replayed id = %s, want %s", b.ID, a.ID)
	}

	mismatch := post("key-1", pairs("currency", "eur", "type", "virtual"))
	testutil.AssertStatus(t, mismatch, http.StatusBadRequest)
	testutil.AssertAPIError(t, mismatch, "idempotency_error")

	third := post("key-2", body)
	var c issuing.Card
	testutil.DecodeJSON(t, third, &c)
	if c.ID == a.ID {
		t.Error("a new key must create a new card")
	}
}

func TestServer_FailNext(t *testing.T) {
	s := newTestServer()
	s.FailNext(http.StatusServiceUnavailable, 1)
	s.FailNext(http.StatusTooManyRequests, 1)

	w := serve(s, authed().GET("/v1/issuing/cards"))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)
	testutil.AssertAPIError(t, w, "api_error")

	w = serve(s, authed().GET("/v1/issuing/cards"))
	testutil.AssertStatus(t, w, http.StatusTooManyRequests)
	if e := testutil.AssertAPIError(t, w, "invalid_request_error"); e.Code != "rate_limit" {
		t.Errorf("code = %q", e.Code)
	}

	w = serve(s, authed().GET("/v1/issuing/cards"))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestServer_FailedPostIsNotReplayed(t *testing.T) {
	s := newTestServer()
	s.FailNext(http.StatusInternalServerError, 1)
	body := pairs("currency", "usd", "type", "virtual")

	w := serve(s, authed().POST("/v1/issuing/cards").WithHeader("Idempotency-Key", "k").WithForm(body))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	w = serve(s, authed().POST("/v1/issuing/cards").WithHeader("Idempotency-Key", "k").WithForm(body))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertHeader(t, w, "Idempotent-Replayed", "")
}

func TestServer_TaxIDs(t *testing.T) {
	s := newTestServer()

	w := serve(s, authed().POST("/v1/tax_ids").WithForm(pairs("type", "eu_vat", "value", "DE123456789")))
	testutil.AssertStatus(t, w, http.StatusOK)
	var own tax.TaxID
	testutil.DecodeJSON(t, w, &own)
	if own.ID != "txi_0001" || own.Type != tax.IDTypeEUVAT || own.Owner == nil || own.Owner.Type != tax.OwnerTypeSelf {
		t.Errorf("created = %+v", own)
	}

	w = serve(s, authed().POST("/v1/tax_ids").WithForm(pairs("owner[type]", "customer", "owner[customer]", "cus_1", "type", "us_ein", "value", "12-3456789")))
	testutil.AssertStatus(t, w, http.StatusOK)
	var cust tax.TaxID
	testutil.DecodeJSON(t, w, &cust)
	if cust.Customer == nil || cust.Customer.ID != "cus_1" {
		t.Errorf("customer = %+v", cust.Customer)
	}

	w = serve(s, authed().GET("/v1/tax_ids"))
	var l stripe.List[*tax.TaxID]
	testutil.DecodeJSON(t, w, &l)
	if len(l.Data) != 1 || l.Data[0].ID != own.ID {
		t.Errorf("self list = %+v", l.Data)
	}

	w = serve(s, authed().GET("/v1/tax_ids").WithQuery("owner[type]", "customer").WithQuery("owner[customer]", "cus_1"))
	l = stripe.List[*tax.TaxID]{}
	testutil.DecodeJSON(t, w, &l)
	if len(l.Data) != 1 || l.Data[0].ID != cust.ID {
		t.Errorf("customer list = %+v", l.Data)
	}

	w = serve(s, authed().DELETE("/v1/customers/cus_other/tax_ids/"+cust.ID))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	w = serve(s, authed().DELETE("/v1/customers/cus_1/tax_ids/"+cust.ID))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertJSON(t, w, `{"id":"`+cust.ID+`","object":"tax_id","deleted":true}`)

	w = serve(s, authed().DELETE("/v1/tax_ids/"+own.ID))
	testutil.AssertStatus(t, w, http.StatusOK)
	w = serve(s, authed().GET("/v1/tax_ids/"+own.ID))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestServer_TaxIDValidation(t *testing.T) {
	tests := []struct {
		name      string
		body      form.Values
		wantParam string
	}{
		{"unknown type", pairs("type", "xx_new", "value", "1"), "type"},
		{"missing value", pairs("type", "eu_vat"), "value"},
		{"customer without id", pairs("owner[type]", "customer", "type", "eu_vat", "value", "1"), "owner[customer]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(newTestServer(), authed().POST("/v1/tax_ids").WithForm(tt.body))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
			if e := testutil.AssertAPIError(t, w, "invalid_request_error"); e.Param != tt.wantParam {
				t.Errorf("param = %q, want %q", e.Param, tt.wantParam)
			}
		})
	}
}

func TestServer_RecordsRequests(t *testing.T) {
	s := newTestServer()
	createVirtual(t, s, "metadata[k]", "v")
	serve(s, authed().GET("/v1/issuing/cards").WithQuery("limit", "3"))

	reqs := s.Requests()
	if len(reqs) != 2 {
		t.Fatalf("recorded %d requests", len(reqs))
	}
	if reqs[0].Method != http.MethodPost || reqs[0].Path != "/v1/issuing/cards" || reqs[0].Form.Get("metadata[k]") != "v" {
		t.Errorf("first = %+v", reqs[0])
	}
	if reqs[1].Query.Get("limit") != "3" {
		t.Errorf("second query = %v", reqs[1].Query)
	}
}
