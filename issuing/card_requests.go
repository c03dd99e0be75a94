package issuing

import (
	"context"
	"maps"
	"slices"

	"github.com/broady/stripe"
)

type listCardsParams struct {
	stripe.ListParams
	Cardholder *string            `form:"cardholder"`
	Created    *stripe.RangeQuery `form:"created"`
	ExpMonth   *int64             `form:"exp_month"`
	ExpYear    *int64             `form:"exp_year"`
	Last4      *string            `form:"last4"`
	Status     *CardStatus        `form:"status"`
	Type       *CardType          `form:"type"`
}

// ListCards lists cards, newest first.
type ListCards struct {
	params listCardsParams
}

// NewListCards returns a builder for GET /issuing/cards.
func NewListCards() *ListCards {
	return &ListCards{}
}

// Cardholder only returns cards belonging to the cardholder with this id.
func (b *ListCards) Cardholder(id string) *ListCards {
	b.params.Cardholder = &id
	return b
}

// Created filters on the creation time.
func (b *ListCards) Created(r stripe.RangeQuery) *ListCards {
	b.params.Created = &r
	return b
}

// EndingBefore is a cursor for walking backward; see stripe.ListPaginator.
func (b *ListCards) EndingBefore(id string) *ListCards {
	b.params.EndingBefore = &id
	return b
}

// ExpMonth only returns cards expiring in this month.
func (b *ListCards) ExpMonth(month int64) *ListCards {
	b.params.ExpMonth = &month
	return b
}

// ExpYear only returns cards expiring in this year.
func (b *ListCards) ExpYear(year int64) *ListCards {
	b.params.ExpYear = &year
	return b
}

// Expand names response fields to expand.
func (b *ListCards) Expand(fields ...string) *ListCards {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Last4 only returns cards whose number ends in these digits.
func (b *ListCards) Last4(last4 string) *ListCards {
	b.params.Last4 = &last4
	return b
}

// Limit is the page size, between 1 and 100.
func (b *ListCards) Limit(n int64) *ListCards {
	b.params.Limit = &n
	return b
}

// StartingAfter is a cursor for walking forward; see stripe.ListPaginator.
func (b *ListCards) StartingAfter(id string) *ListCards {
	b.params.StartingAfter = &id
	return b
}

// Status only returns cards in this state.
func (b *ListCards) Status(s CardStatus) *ListCards {
	b.params.Status = &s
	return b
}

// Type only returns cards of this type.
func (b *ListCards) Type(t CardType) *ListCards {
	b.params.Type = &t
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *ListCards) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodGet, "/issuing/cards").Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *ListCards) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*stripe.List[*Card]] {
	return stripe.Send[*stripe.List[*Card]](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *ListCards) SendBlocking(ctx context.Context, t stripe.Transport) (*stripe.List[*Card], error) {
	return stripe.SendBlocking[*stripe.List[*Card]](ctx, t, b.Build())
}

// Paginate returns a paginator seeded with the current parameters.
func (b *ListCards) Paginate() *stripe.ListPaginator[*Card] {
	return stripe.PaginateRequest[*Card](b.Build())
}

type createCardParams struct {
	Cardholder        *string                 `form:"cardholder"`
	Currency          stripe.Currency         `form:"currency"`
	Expand            []string                `form:"expand"`
	FinancialAccount  *string                 `form:"financial_account"`
	Metadata          stripe.Metadata         `form:"metadata"`
	Pin               *PinParams              `form:"pin"`
	ReplacementFor    *string                 `form:"replacement_for"`
	ReplacementReason *ReplacementReason      `form:"replacement_reason"`
	Shipping          *ShippingParams         `form:"shipping"`
	SpendingControls  *SpendingControlsParams `form:"spending_controls"`
	Status            *CardStatus             `form:"status"`
	Type              CardType                `form:"type"`
}

// CreateCard issues a new card.
type CreateCard struct {
	params createCardParams
}

// NewCreateCard returns a builder for POST /issuing/cards.
func NewCreateCard(currency stripe.Currency, typ CardType) *CreateCard {
	return &CreateCard{params: createCardParams{Currency: currency, Type: typ}}
}

// Cardholder is the id of the cardholder the card is issued to.
func (b *CreateCard) Cardholder(id string) *CreateCard {
	b.params.Cardholder = &id
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *CreateCard) Expand(fields ...string) *CreateCard {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *CreateCard) FinancialAccount(id string) *CreateCard {
	b.params.FinancialAccount = &id
	return b
}

func (b *CreateCard) Metadata(m stripe.Metadata) *CreateCard {
	b.params.Metadata = maps.Clone(m)
	return b
}

func (b *CreateCard) Pin(p PinParams) *CreateCard {
	b.params.Pin = &p
	return b
}

// ReplacementFor is the card this one replaces.
func (b *CreateCard) ReplacementFor(card string) *CreateCard {
	b.params.ReplacementFor = &card
	return b
}

func (b *CreateCard) ReplacementReason(r ReplacementReason) *CreateCard {
	b.params.ReplacementReason = &r
	return b
}

// Shipping is required for physical cards.
func (b *CreateCard) Shipping(s ShippingParams) *CreateCard {
	b.params.Shipping = &s
	return b
}

func (b *CreateCard) SpendingControls(c SpendingControlsParams) *CreateCard {
	b.params.SpendingControls = &c
	return b
}

// Status is the initial state. Only active and inactive are accepted.
func (b *CreateCard) Status(s CardStatus) *CreateCard {
	b.params.Status = &s
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *CreateCard) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodPost, "/issuing/cards").Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *CreateCard) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Card] {
	return stripe.Send[*Card](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *CreateCard) SendBlocking(ctx context.Context, t stripe.Transport) (*Card, error) {
	return stripe.SendBlocking[*Card](ctx, t, b.Build())
}

type retrieveCardParams struct {
	Expand []string `form:"expand"`
}

// RetrieveCard fetches one card.
type RetrieveCard struct {
	card   string
	params retrieveCardParams
}

// NewRetrieveCard returns a builder for GET /issuing/cards/{card}.
func NewRetrieveCard(card string) *RetrieveCard {
	return &RetrieveCard{card: card}
}

// Expand names response fields to return as full objects instead of ids.
func (b *RetrieveCard) Expand(fields ...string) *RetrieveCard {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *RetrieveCard) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/cards/{card}", b.card)
	return stripe.NewRequest(stripe.MethodGet, path).Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *RetrieveCard) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Card] {
	return stripe.Send[*Card](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *RetrieveCard) SendBlocking(ctx context.Context, t stripe.Transport) (*Card, error) {
	return stripe.SendBlocking[*Card](ctx, t, b.Build())
}

type updateCardParams struct {
	CancellationReason *CancellationReason     `form:"cancellation_reason"`
	Expand             []string                `form:"expand"`
	Metadata           stripe.Metadata         `form:"metadata"`
	Pin                *PinParams              `form:"pin"`
	SpendingControls   *SpendingControlsParams `form:"spending_controls"`
	Status             *CardStatus             `form:"status"`
}

// UpdateCard changes a card. Fields that are not set are left untouched.
type UpdateCard struct {
	card   string
	params updateCardParams
}

// NewUpdateCard returns a builder for POST /issuing/cards/{card}.
func NewUpdateCard(card string) *UpdateCard {
	return &UpdateCard{card: card}
}

// CancellationReason is required when canceling a card as lost or stolen.
func (b *UpdateCard) CancellationReason(r CancellationReason) *UpdateCard {
	b.params.CancellationReason = &r
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *UpdateCard) Expand(fields ...string) *UpdateCard {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Metadata replaces the given keys. A non-nil empty map clears all keys.
func (b *UpdateCard) Metadata(m stripe.Metadata) *UpdateCard {
	b.params.Metadata = maps.Clone(m)
	return b
}

func (b *UpdateCard) Pin(p PinParams) *UpdateCard {
	b.params.Pin = &p
	return b
}

func (b *UpdateCard) SpendingControls(c SpendingControlsParams) *UpdateCard {
	b.params.SpendingControls = &c
	return b
}

// Status changes the state. Canceling is permanent.
func (b *UpdateCard) Status(s CardStatus) *UpdateCard {
	b.params.Status = &s
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *UpdateCard) Build() *stripe.Request {
	path := stripe.FormatPath("/issuing/cards/{card}", b.card)
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *UpdateCard) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Card] {
	return stripe.Send[*Card](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *UpdateCard) SendBlocking(ctx context.Context, t stripe.Transport) (*Card, error) {
	return stripe.SendBlocking[*Card](ctx, t, b.Build())
}
