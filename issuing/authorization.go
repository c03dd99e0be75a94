package issuing

import (
	"context"
	"maps"
	"slices"

	"github.com/broady/stripe"
)

// Authorization is a request to charge a card.
type Authorization struct {
	ID                  string                         `json:"id"`
	Object              string                         `json:"object"`
	Amount              int64                          `json:"amount"`
	Approved            bool                           `json:"approved"`
	AuthorizationMethod AuthorizationMethod            `json:"authorization_method"`
	Card                *Card                          `json:"card"`
	Cardholder          *stripe.Expandable[Cardholder] `json:"cardholder"`
	Created             int64                          `json:"created"`
	Currency            stripe.Currency                `json:"currency"`
	Livemode            bool                           `json:"livemode"`
	MerchantAmount      int64                          `json:"merchant_amount"`
	MerchantCurrency    stripe.Currency                `json:"merchant_currency"`
	MerchantData        MerchantData                   `json:"merchant_data"`
	Metadata            map[string]string              `json:"metadata"`
	Status              AuthorizationStatus            `json:"status"`
	Wallet              *string                        `json:"wallet"`
}

func (a *Authorization) ObjectID() string { return a.ID }

// MerchantData describes the merchant behind an authorization.
type MerchantData struct {
	Category     MerchantCategory `json:"category"`
	CategoryCode string           `json:"category_code"`
	City         *string          `json:"city"`
	Country      *string          `json:"country"`
	Name         *string          `json:"name"`
	NetworkID    string           `json:"network_id"`
	PostalCode   *string          `json:"postal_code"`
	State        *string          `json:"state"`
}

type listAuthorizationsParams struct {
	stripe.ListParams
	Card       *string              `form:"card"`
	Cardholder *string              `form:"cardholder"`
	Created    *stripe.RangeQuery   `form:"created"`
	Status     *AuthorizationStatus `form:"status"`
}

// ListAuthorizations lists authorizations, newest first.
type ListAuthorizations struct {
	params listAuthorizationsParams
}

// NewListAuthorizations returns a builder for GET /issuing/authorizations.
func NewListAuthorizations() *ListAuthorizations {
	return &ListAuthorizations{}
}

func (b *ListAuthorizations) Card(id string) *ListAuthorizations {
	b.params.Card = &id
	return b
}

func (b *ListAuthorizations) Cardholder(id string) *ListAuthorizations {
	b.params.Cardholder = &id
	return b
}

func (b *ListAuthorizations) Created(r stripe.RangeQuery) *ListAuthorizations {
	b.params.Created = &r
	return b
}

func (b *ListAuthorizations) EndingBefore(id string) *ListAuthorizations {
	b.params.EndingBefore = &id
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *ListAuthorizations) Expand(fields ...string) *ListAuthorizations {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *ListAuthorizations) Limit(n int64) *ListAuthorizations {
	b.params.Limit = &n
	return b
}

func (b *ListAuthorizations) StartingAfter(id string) *ListAuthorizations {
	b.params.StartingAfter = &id
	return b
}

func (b *ListAuthorizations) Status(s AuthorizationStatus) *ListAuthorizations {
	b.params.Status = &s
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *ListAuthorizations) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodGet, "/issuing/authorizations").Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *ListAuthorizations) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*stripe.List[*Authorization]] {
	return stripe.Send[*stripe.List[*Authorization]](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *ListAuthorizations) SendBlocking(ctx context.Context, t stripe.Transport) (*stripe.List[*Authorization], error) {
	return stripe.SendBlocking[*stripe.List[*Authorization]](ctx, t, b.Build())
}

func (b *ListAuthorizations) Paginate() *stripe.ListPaginator[*Authorization] {
	return stripe.PaginateRequest[*Authorization](b.Build())
}

type retrieveAuthorizationParams struct {
	Expand []string `form:"expand"`
}

// RetrieveAuthorization fetches one authorization.
type RetrieveAuthorization struct {
	authorization string
	params        retrieveAuthorizationParams
}

// NewRetrieveAuthorization returns a builder for
// GET /issuing/authorizations/{authorization}.
func NewRetrieveAuthorization(authorization string) *RetrieveAuthorization {
	return &RetrieveAuthorization{authorization: authorization}
}

// Expand names response fields to return as full objects instead of ids.
func (b *RetrieveAuthorization) Expand(fields ...string) *RetrieveAuthorization {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *RetrieveAuthorization) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/authorizations/{authorization}", b.authorization)
	return stripe.NewRequest(stripe.MethodGet, path).Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *RetrieveAuthorization) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Authorization] {
	return stripe.Send[*Authorization](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *RetrieveAuthorization) SendBlocking(ctx context.Context, t stripe.Transport) (*Authorization, error) {
	return stripe.SendBlocking[*Authorization](ctx, t, b.Build())
}

type updateAuthorizationParams struct {
	Expand   []string        `form:"expand"`
	Metadata stripe.Metadata `form:"metadata"`
}

// UpdateAuthorization changes the metadata of an authorization.
type UpdateAuthorization struct {
	authorization string
	params        updateAuthorizationParams
}

// NewUpdateAuthorization returns a builder for
// POST /issuing/authorizations/{authorization}.
func NewUpdateAuthorization(authorization string) *UpdateAuthorization {
	return &UpdateAuthorization{authorization: authorization}
}

// Expand names response fields to return as full objects instead of ids.
func (b *UpdateAuthorization) Expand(fields ...string) *UpdateAuthorization {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *UpdateAuthorization) Metadata(m stripe.Metadata) *UpdateAuthorization {
	b.params.Metadata = maps.Clone(m)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *UpdateAuthorization) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/authorizations/{authorization}", b.authorization)
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *UpdateAuthorization) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Authorization] {
	return stripe.Send[*Authorization](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *UpdateAuthorization) SendBlocking(ctx context.Context, t stripe.Transport) (*Authorization, error) {
	return stripe.SendBlocking[*Authorization](ctx, t, b.Build())
}

type approveAuthorizationParams struct {
	Amount   *int64          `form:"amount"`
	Expand   []string        `form:"expand"`
	Metadata stripe.Metadata `form:"metadata"`
}

// ApproveAuthorization approves a pending authorization. It is only
// available during the real-time authorization window.
type ApproveAuthorization struct {
	authorization string
	params        approveAuthorizationParams
}

// NewApproveAuthorization returns a builder for
// POST /issuing/authorizations/{authorization}/approve.
func NewApproveAuthorization(authorization string) *ApproveAuthorization {
	return &ApproveAuthorization{authorization: authorization}
}

// Amount approves less than the requested amount, in the smallest currency unit.
func (b *ApproveAuthorization) Amount(amount int64) *ApproveAuthorization {
	b.params.Amount = &amount
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *ApproveAuthorization) Expand(fields ...string) *ApproveAuthorization {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *ApproveAuthorization) Metadata(m stripe.Metadata) *ApproveAuthorization {
	b.params.Metadata = maps.Clone(m)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *ApproveAuthorization) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/authorizations/{authorization}/approve", b.authorization)
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *ApproveAuthorization) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Authorization] {
	return stripe.Send[*Authorization](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *ApproveAuthorization) SendBlocking(ctx context.Context, t stripe.Transport) (*Authorization, error) {
	return stripe.SendBlocking[*Authorization](ctx, t, b.Build())
}

type declineAuthorizationParams struct {
	Expand   []string        `form:"expand"`
	Metadata stripe.Metadata `form:"metadata"`
}

// DeclineAuthorization declines a pending authorization.
type DeclineAuthorization struct {
	authorization string
	params        declineAuthorizationParams
}

// NewDeclineAuthorization returns a builder for
// POST /issuing/authorizations/{authorization}/decline.
func NewDeclineAuthorization(authorization string) *DeclineAuthorization {
	return &DeclineAuthorization{authorization: authorization}
}

// Expand names response fields to return as full objects instead of ids.
func (b *DeclineAuthorization) Expand(fields ...string) *DeclineAuthorization {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *DeclineAuthorization) Metadata(m stripe.Metadata) *DeclineAuthorization {
	b.params.Metadata = maps.Clone(m)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *DeclineAuthorization) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/authorizations/{authorization}/decline", b.authorization)
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *DeclineAuthorization) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Authorization] {
	return stripe.Send[*Authorization](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *DeclineAuthorization) SendBlocking(ctx context.Context, t stripe.Transport) (*Authorization, error) {
	return stripe.SendBlocking[*Authorization](ctx, t, b.Build())
}
