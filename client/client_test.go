package client

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/broady/stripe"
	"github.com/broady/stripe/form"
	"github.com/broady/stripe/issuing"
	"github.com/broady/stripe/stripetest"
	"github.com/broady/stripe/tax"
)

func newTestClient(t *testing.T, srv *stripetest.Server, cfgs ...func(Config) Config) *Client {
	t.Helper()
	cfg := DefaultConfig().
		WithAPIKey(stripetest.DefaultAPIKey).
		WithBaseURL(srv.Serve(t)).
		WithRetries(2, 0)
	for _, f := range cfgs {
		cfg = f(cfg)
	}
	c, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestClient_CreateAndRetrieve(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv, func(cfg Config) Config {
		cfg.APIVersion = "2024-06-20"
		return cfg
	})
	ctx := context.Background()

	created, err := issuing.NewCreateCard(stripe.CurrencyUSD, issuing.CardTypeVirtual).
		Cardholder("ich_1").
		Metadata(stripe.Metadata{"team": "ops"}).
		SendBlocking(ctx, c)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != issuing.CardStatusInactive || created.Metadata["team"] != "ops" {
		t.Errorf("created = %+v", created)
	}

	got, err := issuing.NewRetrieveCard(created.ID).SendBlocking(ctx, c)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if got.ID != created.ID || got.Cardholder == nil || got.Cardholder.ID != "ich_1" {
		t.Errorf("retrieved = %+v", got)
	}

	reqs := srv.Requests()
	if len(reqs) != 2 {
		t.Fatalf("server saw %d requests, want 2", len(reqs))
	}
	post, get := reqs[0], reqs[1]
	if got := post.Header.Get("Authorization"); got != "Bearer "+stripetest.DefaultAPIKey {
		t.Errorf("Authorization = %q", got)
	}
	if post.Header.Get("Idempotency-Key") == "" {
		t.Error("POST without Idempotency-Key")
	}
	if get.Header.Get("Idempotency-Key") != "" {
		t.Error("GET carries an Idempotency-Key")
	}
	if got := post.Header.Get("Stripe-Version"); got != "2024-06-20" {
		t.Errorf("Stripe-Version = %q", got)
	}
	if got := post.Header.Get("Content-Type"); got != stripe.FormContentType {
		t.Errorf("Content-Type = %q", got)
	}
	if got := post.Form.Get("metadata[team]"); got != "ops" {
		t.Errorf("form metadata[team] = %q", got)
	}
}

func TestClient_RetriesReuseIdempotencyKey(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	srv.FailNext(http.StatusInternalServerError, 1)
	srv.FailNext(http.StatusTooManyRequests, 1)

	card, err := issuing.NewCreateCard(stripe.CurrencyEUR, issuing.CardTypeVirtual).SendBlocking(context.Background(), c)
	if err != nil {
		t.Fatalf("create after transient failures: %v", err)
	}

	reqs := srv.Requests()
	if len(reqs) != 3 {
		t.Fatalf("server saw %d requests, want 3", len(reqs))
	}
	key := reqs[0].Header.Get("Idempotency-Key")
	for i, r := range reqs {
		if got := r.Header.Get("Idempotency-Key"); got != key {
			t.Errorf("attempt %d key = %q, want %q", i, got, key)
		}
	}
	if _, ok := srv.Card(card.ID); !ok {
		t.Errorf("card %s not stored", card.ID)
	}
}

func TestClient_RetriesExhausted(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	srv.FailNext(http.StatusServiceUnavailable, 3)

	_, err := issuing.NewRetrieveCard("ic_0001").SendBlocking(context.Background(), c)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusServiceUnavailable || apiErr.Type != ErrorTypeAPI || !apiErr.IsRetryable() {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.RequestID == "" {
		t.Error("RequestID not captured")
	}
	if n := len(srv.Requests()); n != 3 {
		t.Errorf("server saw %d requests, want 3", n)
	}
}

func TestClient_ClientErrorsAreNotRetried(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)

	_, err := issuing.NewCreateCard("US", issuing.CardTypeVirtual).SendBlocking(context.Background(), c)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Param != "currency" || apiErr.Type != ErrorTypeInvalidRequest {
		t.Errorf("APIError = %+v", apiErr)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestClient_ErrorClassification(t *testing.T) {
	srv := stripetest.NewServer()
	good := newTestClient(t, srv)
	bad := newTestClient(t, srv, func(cfg Config) Config { return cfg.WithAPIKey("sk_test_wrong") })
	ctx := context.Background()

	_, err := issuing.NewRetrieveCard("ic_missing").SendBlocking(ctx, good)
	if !IsNotFound(err) || IsAuthError(err) {
		t.Errorf("missing card: err = %v", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Code != "resource_missing" {
		t.Errorf("Code = %q, want resource_missing", apiErr.Code)
	}

	_, err = issuing.NewListCards().SendBlocking(ctx, bad)
	if !IsAuthError(err) || IsNotFound(err) {
		t.Errorf("bad key: err = %v", err)
	}
}

func TestClient_IdempotentReplay(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	ctx := WithIdempotencyKey(context.Background(), "order-42")

	first, err := issuing.NewCreateCard(stripe.CurrencyUSD, issuing.CardTypeVirtual).SendBlocking(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	second, err := issuing.NewCreateCard(stripe.CurrencyUSD, issuing.CardTypeVirtual).SendBlocking(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Errorf("replay created a new card: %s then %s", first.ID, second.ID)
	}

	_, err = issuing.NewCreateCard(stripe.CurrencyGBP, issuing.CardTypeVirtual).SendBlocking(ctx, c)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Type != ErrorTypeIdempotency {
		t.Errorf("reused key with other params: err = %v", err)
	}
}

func TestClient_Paginate(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	ctx := context.Background()
	for range 5 {
		if _, err := issuing.NewCreateCard(stripe.CurrencyUSD, issuing.CardTypeVirtual).SendBlocking(ctx, c); err != nil {
			t.Fatal(err)
		}
	}

	p := issuing.NewListCards().Limit(2).Paginate()
	cards, err := p.Collect(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 5 {
		t.Fatalf("collected %d cards, want 5", len(cards))
	}
	seen := make(map[string]bool)
	for _, card := range cards {
		if seen[card.ID] {
			t.Errorf("card %s returned twice", card.ID)
		}
		seen[card.ID] = true
	}
	if !p.Done() {
		t.Error("paginator not done")
	}

	lists := 0
	for _, r := range srv.Requests() {
		if r.Method == http.MethodGet {
			lists++
		}
	}
	if lists != 3 {
		t.Errorf("list requests = %d, want 3", lists)
	}
}

func TestClient_EncodeErrorIsNotSent(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)

	_, err := issuing.NewUpdateCard("ic_0001").
		SpendingControls(issuing.SpendingControlsParams{
			BlockedCategories: []issuing.MerchantCategory{issuing.MerchantCategoryUnknown},
		}).
		SendBlocking(context.Background(), c)
	if !errors.Is(err, form.ErrUnknownValue) {
		t.Errorf("err = %v, want ErrUnknownValue", err)
	}
	if n := len(srv.Requests()); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestClient_Async(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	ctx := context.Background()

	futures := make([]*stripe.Future[*issuing.Card], 3)
	for i := range futures {
		futures[i] = issuing.NewCreateCard(stripe.CurrencyUSD, issuing.CardTypeVirtual).Send(ctx, c)
	}
	ids := make(map[string]bool)
	for _, f := range futures {
		card, err := f.Wait(ctx)
		if err != nil {
			t.Fatal(err)
		}
		ids[card.ID] = true
	}
	if len(ids) != 3 {
		t.Errorf("distinct cards = %d, want 3", len(ids))
	}
}

func TestClient_CancelDuringBackoff(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv, func(cfg Config) Config { return cfg.WithRetries(3, time.Hour) })
	srv.FailNext(http.StatusInternalServerError, 1)

	ctx, cancel := context.WithCancel(context.Background())
	c.sleep = func(ctx context.Context, d time.Duration) error {
		if d != time.Hour {
			t.Errorf("first backoff = %v, want 1h", d)
		}
		cancel()
		return sleepCtx(ctx, d)
	}

	_, err := issuing.NewListCards().SendBlocking(ctx, c)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if n := len(srv.Requests()); n != 1 {
		t.Errorf("server saw %d requests, want 1", n)
	}
}

func TestClient_Backoff(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv, func(cfg Config) Config { return cfg.WithRetries(3, 10*time.Millisecond) })
	srv.FailNext(http.StatusBadGateway, 3)

	var delays []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	if _, err := issuing.NewListCards().SendBlocking(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	want := []time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 40 * time.Millisecond}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay %d = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestClient_TaxIDLifecycle(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv)
	ctx := context.Background()

	id, err := tax.NewCreateTaxID(tax.IDTypeEUVAT, "DE123456789").
		Owner(tax.OwnedByCustomer("cus_1")).
		SendBlocking(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	del, err := tax.NewDeleteCustomerTaxID("cus_1", id.ID).SendBlocking(ctx, c)
	if err != nil {
		t.Fatal(err)
	}
	if !del.Deleted || del.ID != id.ID {
		t.Errorf("deleted = %+v", del)
	}
	_, err = tax.NewRetrieveTaxID(id.ID).SendBlocking(ctx, c)
	if !IsNotFound(err) {
		t.Errorf("retrieve after delete: err = %v", err)
	}
	last := srv.Requests()[1]
	if last.Method != http.MethodDelete || last.Form != nil {
		t.Errorf("delete sent %s with form %v", last.Method, last.Form)
	}
}

func TestClient_ConnectedAccountHeader(t *testing.T) {
	srv := stripetest.NewServer()
	c := newTestClient(t, srv, func(cfg Config) Config { return cfg.WithAccount("acct_123") })
	if _, err := issuing.NewListCards().SendBlocking(context.Background(), c); err != nil {
		t.Fatal(err)
	}
	if got := srv.Requests()[0].Header.Get("Stripe-Account"); got != "acct_123" {
		t.Errorf("Stripe-Account = %q", got)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(DefaultConfig(), nil)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigError", err)
	}
	if _, ok := cfgErr.Fields["APIKey"]; !ok {
		t.Errorf("Fields = %v, want APIKey", cfgErr.Fields)
	}
}
