// Package tax holds request builders for tax registrations and tax IDs.
package tax

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/broady/stripe"
)

// Registration records that the account collects tax in a country.
type Registration struct {
	ID             string              `json:"id"`
	Object         string              `json:"object"`
	ActiveFrom     int64               `json:"active_from"`
	Country        string              `json:"country"`
	CountryOptions RegistrationOptions `json:"country_options"`
	Created        int64               `json:"created"`
	ExpiresAt      *int64              `json:"expires_at"`
	Livemode       bool                `json:"livemode"`
	Status         RegistrationStatus  `json:"status"`
}

func (r *Registration) ObjectID() string { return r.ID }

// RegistrationOptions is the country-specific part of a registration as
// returned by the API. Only the entry for the registration's country is set.
type RegistrationOptions struct {
	AE *RegistrationTypeOptions `json:"ae,omitempty"`
	AU *RegistrationTypeOptions `json:"au,omitempty"`
	CA *RegistrationTypeOptions `json:"ca,omitempty"`
	CH *RegistrationTypeOptions `json:"ch,omitempty"`
	DE *RegistrationTypeOptions `json:"de,omitempty"`
	ES *RegistrationTypeOptions `json:"es,omitempty"`
	FR *RegistrationTypeOptions `json:"fr,omitempty"`
	GB *RegistrationTypeOptions `json:"gb,omitempty"`
	IE *RegistrationTypeOptions `json:"ie,omitempty"`
	IT *RegistrationTypeOptions `json:"it,omitempty"`
	JP *RegistrationTypeOptions `json:"jp,omitempty"`
	NL *RegistrationTypeOptions `json:"nl,omitempty"`
	NO *RegistrationTypeOptions `json:"no,omitempty"`
	NZ *RegistrationTypeOptions `json:"nz,omitempty"`
	SG *RegistrationTypeOptions `json:"sg,omitempty"`
	US *RegistrationTypeOptions `json:"us,omitempty"`
}

// RegistrationTypeOptions carries the registration type of one country.
// The type is kept as a plain string since each country has its own set.
type RegistrationTypeOptions struct {
	Type  string  `json:"type"`
	State *string `json:"state,omitempty"`
}

// ActiveFrom is either the current time or a point in time.
// The zero value is the current time.
type ActiveFrom struct {
	at time.Time
}

// ActiveNow makes a registration active immediately.
func ActiveNow() ActiveFrom { return ActiveFrom{} }

// ActiveAt makes a registration active at t.
func ActiveAt(t time.Time) ActiveFrom { return ActiveFrom{at: t} }

// IsNow reports whether f is the current time.
func (f ActiveFrom) IsNow() bool { return f.at.IsZero() }

func (f ActiveFrom) MarshalForm() (string, error) {
	if f.IsNow() {
		return "now", nil
	}
	return strconv.FormatInt(f.at.Unix(), 10), nil
}

type expiresKind uint8

const (
	expiresNow expiresKind = iota
	expiresAt
	expiresNever
)

// ExpiresAt is the time a registration stops being active.
type ExpiresAt struct {
	kind expiresKind
	at   time.Time
}

// ExpiresNow ends a registration immediately.
func ExpiresNow() ExpiresAt { return ExpiresAt{kind: expiresNow} }

// ExpiresOn ends a registration at t.
func ExpiresOn(t time.Time) ExpiresAt { return ExpiresAt{kind: expiresAt, at: t} }

// NeverExpires clears a previously set expiry. It sends an empty value.
func NeverExpires() ExpiresAt { return ExpiresAt{kind: expiresNever} }

func (e ExpiresAt) MarshalForm() (string, error) {
	switch e.kind {
	case expiresAt:
		return strconv.FormatInt(e.at.Unix(), 10), nil
	case expiresNever:
		return "", nil
	default:
		return "now", nil
	}
}

type listRegistrationsParams struct {
	stripe.ListParams
	Status *RegistrationFilter `form:"status"`
}

// ListRegistrations lists registrations.
type ListRegistrations struct {
	params listRegistrationsParams
}

// NewListRegistrations returns a builder for GET /tax/registrations.
func NewListRegistrations() *ListRegistrations {
	return &ListRegistrations{}
}

func (b *ListRegistrations) EndingBefore(id string) *ListRegistrations {
	b.params.EndingBefore = &id
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *ListRegistrations) Expand(fields ...string) *ListRegistrations {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *ListRegistrations) Limit(n int64) *ListRegistrations {
	b.params.Limit = &n
	return b
}

func (b *ListRegistrations) StartingAfter(id string) *ListRegistrations {
	b.params.StartingAfter = &id
	return b
}

// Status filters on the registration state; RegistrationFilterAll returns every registration.
func (b *ListRegistrations) Status(s RegistrationFilter) *ListRegistrations {
	b.params.Status = &s
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *ListRegistrations) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodGet, "/tax/registrations").Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *ListRegistrations) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*stripe.List[*Registration]] {
	return stripe.Send[*stripe.List[*Registration]](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *ListRegistrations) SendBlocking(ctx context.Context, t stripe.Transport) (*stripe.List[*Registration], error) {
	return stripe.SendBlocking[*stripe.List[*Registration]](ctx, t, b.Build())
}

func (b *ListRegistrations) Paginate() *stripe.ListPaginator[*Registration] {
	return stripe.PaginateRequest[*Registration](b.Build())
}

type createRegistrationParams struct {
	ActiveFrom     ActiveFrom     `form:"active_from"`
	Country        string         `form:"country"`
	CountryOptions CountryOptions `form:"country_options"`
	Expand         []string       `form:"expand"`
	ExpiresAt      *time.Time     `form:"expires_at"`
}

// CreateRegistration registers the account to collect tax in a country.
type CreateRegistration struct {
	params createRegistrationParams
}

// NewCreateRegistration returns a builder for POST /tax/registrations.
// options should set exactly the entry for country.
func NewCreateRegistration(activeFrom ActiveFrom, country string, options CountryOptions) *CreateRegistration {
	return &CreateRegistration{params: createRegistrationParams{
		ActiveFrom:     activeFrom,
		Country:        country,
		CountryOptions: options,
	}}
}

// Expand names response fields to return as full objects instead of ids.
func (b *CreateRegistration) Expand(fields ...string) *CreateRegistration {
	b.params.Expand = slices.Clone(fields)
	return b
}

// ExpiresAt ends the registration at t. Without it the registration never expires.
func (b *CreateRegistration) ExpiresAt(t time.Time) *CreateRegistration {
	b.params.ExpiresAt = &t
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *CreateRegistration) Build() *stripe.Request {
	return stripe.NewRequest(stripe.MethodPost, "/tax/registrations").Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *CreateRegistration) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Registration] {
	return stripe.Send[*Registration](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *CreateRegistration) SendBlocking(ctx context.Context, t stripe.Transport) (*Registration, error) {
	return stripe.SendBlocking[*Registration](ctx, t, b.Build())
}

type retrieveRegistrationParams struct {
	Expand []string `form:"expand"`
}

// RetrieveRegistration fetches one registration.
type RetrieveRegistration struct {
	id     string
	params retrieveRegistrationParams
}

// NewRetrieveRegistration returns a builder for GET /tax/registrations/{id}.
func NewRetrieveRegistration(id string) *RetrieveRegistration {
	return &RetrieveRegistration{id: id}
}

// Expand names response fields to return as full objects instead of ids.
func (b *RetrieveRegistration) Expand(fields ...string) *RetrieveRegistration {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *RetrieveRegistration) Build() *stripe.Request {
	path := stripe.FormatPath("/tax/registrations/{id}", b.id)
	return stripe.NewRequest(stripe.MethodGet, path).Query(&b.params)
}

// Send dispatches the request without blocking.
func (b *RetrieveRegistration) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Registration] {
	return stripe.Send[*Registration](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *RetrieveRegistration) SendBlocking(ctx context.Context, t stripe.Transport) (*Registration, error) {
	return stripe.SendBlocking[*Registration](ctx, t, b.Build())
}

type updateRegistrationParams struct {
	ActiveFrom *ActiveFrom `form:"active_from"`
	Expand     []string    `form:"expand"`
	ExpiresAt  *ExpiresAt  `form:"expires_at"`
}

// UpdateRegistration changes when a registration is active.
// Registrations cannot be deleted; end one by setting ExpiresAt.
type UpdateRegistration struct {
	id     string
	params updateRegistrationParams
}

// NewUpdateRegistration returns a builder for POST /tax/registrations/{id}.
func NewUpdateRegistration(id string) *UpdateRegistration {
	return &UpdateRegistration{id: id}
}

func (b *UpdateRegistration) ActiveFrom(f ActiveFrom) *UpdateRegistration {
	b.params.ActiveFrom = &f
	return b
}

// Expand names response fields to return as full objects instead of ids.
func (b *UpdateRegistration) Expand(fields ...string) *UpdateRegistration {
	b.params.Expand = slices.Clone(fields)
	return b
}

func (b *UpdateRegistration) ExpiresAt(e ExpiresAt) *UpdateRegistration {
	b.params.ExpiresAt = &e
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *UpdateRegistration) Build() *stripe.Request {
	path := stripe.FormatPath("/tax/registrations/{id}", b.id)
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *UpdateRegistration) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Registration] {
	return stripe.Send[*Registration](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *UpdateRegistration) SendBlocking(ctx context.Context, t stripe.Transport) (*Registration, error) {
	return stripe.SendBlocking[*Registration](ctx, t, b.Build())
}
