package tax

import (
	"context"
	"slices"

	"github.com/broady/stripe"
)

// TaxID is a tax identification number of a customer or of the account.
type TaxID struct {
	ID           string                       `json:"id"`
	Object       string                       `json:"object"`
	Country      *string                      `json:"country"`
	Created      int64                        `json:"created"`
	Customer     *stripe.Expandable[Customer] `json:"customer"`
	Livemode     bool                         `json:"livemode"`
	Owner        *Owner                       `json:"owner"`
	Type         IDType                       `json:"type"`
	Value        string                       `json:"value"`
	Verification *Verification                `json:"verification"`
}

func (t *TaxID) ObjectID() string { return t.ID }

// Customer is the subset of a customer carried by an expanded tax ID.
type Customer struct {
	ID    string  `json:"id"`
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

func (c *Customer) ObjectID() string { return c.ID }

// Owner says who a tax ID belongs to.
type Owner struct {
	Account     *string   `json:"account"`
	Application *string   `json:"application"`
	Customer    *string   `json:"customer"`
	Type        OwnerType `json:"type"`
}

// Verification is the result of checking a tax ID with the issuing registry.
type Verification struct {
	Status          VerificationStatus `json:"status"`
	VerifiedAddress *string            `json:"verified_address"`
	VerifiedName    *string            `json:"verified_name"`
}

// OwnerParams selects the owner of a tax ID. Account and Customer are
// required for the matching owner types.
type OwnerParams struct {
	Account  *string   `form:"account"`
	Customer *string   `form:"customer"`
	Type     OwnerType `form:"type"`
}

// OwnedBySelf is the account making the request.
func OwnedBySelf() OwnerParams { return OwnerParams{Type: OwnerTypeSelf} }

// OwnedByAccount is a connected account.
func OwnedByAccount(account string) OwnerParams {
	return OwnerParams{Account: &account, Type: OwnerTypeAccount}
}

// OwnedByCustomer is a customer of the account.
func OwnedByCustomer(customer string) OwnerParams {
	return OwnerParams{Customer: &customer, Type: OwnerTypeCustomer}
}

type listTaxIDsParams struct {
	stripe.ListParams
	Owner *OwnerParams `form:"owner"`
}

// ListTaxIDs lists tax IDs. Without an owner it lists the account's own.
type ListTaxIDs struct {
	params listTaxIDsParams
}

// NewListTaxIDs returns a builder for GET /tax_ids.
func NewListTaxIDs() *ListTaxIDs {
	return &ListTaxIDs{}
}

func (b *ListTaxIDs) EndingBefore(id string) *ListTaxIDs {
	b.params.EndingBefore = &id
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *ListTaxIDs) Expand(fields ...string) *ListTaxIDs {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *ListTaxIDs) Limit(n int64) *ListTaxIDs {
	b.params.Limit = &n
	return b
}

func (b *ListTaxIDs) Owner(o OwnerParams) *ListTaxIDs {
	b.params.Owner = &o
	return b
}

func (b *ListTaxIDs) StartingAfter(id string) *ListTaxIDs {
	b.params.StartingAfter = &id
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *ListTaxIDs) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodGet, "/tax_ids").Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *ListTaxIDs) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*stripe.List[*TaxID]] {
	return stripe.Send[*stripe.List[*TaxID]](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *ListTaxIDs) SendBlocking(ctx context.Context, t stripe.Transport) (*stripe.List[*TaxID], error) {
	return stripe.SendBlocking[*stripe.List[*TaxID]](ctx, t, b.Build())
}

func (b *ListTaxIDs) Paginate() *stripe.ListPaginator[*TaxID] {
	return stripe.PaginateRequest[*TaxID](b.Build())
}

type createTaxIDParams struct {
	Expand []string     `form:"expand"`
	Owner  *OwnerParams `form:"owner"`
	Type   IDType       `form:"type"`
	Value  string       `form:"value"`
}

// CreateTaxID adds a tax ID. typ must be a known kind; IDTypeUnknown fails
// to encode.
type CreateTaxID struct {
	params createTaxIDParams
}

// NewCreateTaxID returns a builder for POST /tax_ids.
func NewCreateTaxID(typ IDType, value string) *CreateTaxID {
	return &CreateTaxID{params: createTaxIDParams{Type: typ, Value: value}}
}

// Expand names response fields to return as full objects instead of ids.
func (b *CreateTaxID) Expand(fields ...string) *CreateTaxID {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *CreateTaxID) Owner(o OwnerParams) *CreateTaxID {
	b.params.Owner = &o
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *CreateTaxID) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodPost, "/tax_ids").Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *CreateTaxID) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*TaxID] {
	return stripe.Send[*TaxID](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *CreateTaxID) SendBlocking(ctx context.Context, t stripe.Transport) (*TaxID, error) {
	return stripe.SendBlocking[*TaxID](ctx, t, b.Build())
}

type retrieveTaxIDParams struct {
	Expand []string `form:"expand"`
}

// RetrieveTaxID fetches one tax ID.
type RetrieveTaxID struct {
	id     string
	params retrieveTaxIDParams
}

// NewRetrieveTaxID returns a builder for GET /tax_ids/{id}.
func NewRetrieveTaxID(id string) *RetrieveTaxID {
	return &RetrieveTaxID{id: id}
}

// Expand names response fields to return as full objects instead of ids.
func (b *RetrieveTaxID) Expand(fields ...string) *RetrieveTaxID {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *RetrieveTaxID) Build() *stripe.Request {
	path := stripe.FormatPath("/tax_ids/{id}", b.id)
	return stripe.NewRequest(stripe.MethodGet, path).Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *RetrieveTaxID) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*TaxID] {
	return stripe.Send[*TaxID](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *RetrieveTaxID) SendBlocking(ctx context.Context, t stripe.Transport) (*TaxID, error) {
	return stripe.SendBlocking[*TaxID](ctx, t, b.Build())
}

// DeleteTaxID removes a tax ID. It has no parameters.
type DeleteTaxID struct {
	path string
}

// NewDeleteTaxID returns a builder for DELETE /tax_ids/{id}.
func NewDeleteTaxID(id string) *DeleteTaxID {
	return &DeleteTaxID{path: stripe.FormatPath("/tax_ids/{id}", id)}
}

// NewDeleteCustomerTaxID returns a builder for
// DELETE /customers/{customer}/tax_ids/{id}.
func NewDeleteCustomerTaxID(customer, id string) *DeleteTaxID {
	return &DeleteTaxID{path: stripe.FormatPath("/customers/{customer}/tax_ids/{id}", customer, id)}
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *DeleteTaxID) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodDelete, b.path)
}

// Send dispatches the request without blocking.
func (b *DeleteTaxID) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*stripe.Deleted] {
	return stripe.Send[*stripe.Deleted](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *DeleteTaxID) SendBlocking(ctx context.Context, t stripe.Transport) (*stripe.Deleted, error) {
	return stripe.SendBlocking[*stripe.Deleted](ctx, t, b.Build())
}
