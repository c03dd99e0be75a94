package issuing

import (
	"context"
	"slices"

	"github.com/broady/stripe"
)

// ShippingAction is a test-mode transition of a physical card's shipment.
type ShippingAction string

const (
	ShippingActionDeliver ShippingAction = "deliver"
	ShippingActionFail    ShippingAction = "fail"
	ShippingActionReturn  ShippingAction = "return"
	ShippingActionShip    ShippingAction = "ship"
)

type shippingActionParams struct {
	Expand []string `form:"expand"`
}

// AdvanceShipping moves a test-mode card's shipment to the next state.
// The endpoints only exist in test mode.
type AdvanceShipping struct {
	card   string
	action ShippingAction
	params shippingActionParams
}

func newAdvanceShipping(card string, action ShippingAction) *AdvanceShipping {
	return &AdvanceShipping{card: card, action: action}
}

// NewDeliverCard marks the shipment delivered.
func NewDeliverCard(card string) *AdvanceShipping {
	return newAdvanceShipping(card, ShippingActionDeliver)
}

// NewFailCard marks the shipment failed.
func NewFailCard(card string) *AdvanceShipping {
	return newAdvanceShipping(card, ShippingActionFail)
}

// NewReturnCard marks the shipment returned.
func NewReturnCard(card string) *AdvanceShipping {
	return newAdvanceShipping(card, ShippingActionReturn)
}

// NewShipCard marks the shipment shipped.
func NewShipCard(card string) *AdvanceShipping {
	return newAdvanceShipping(card, ShippingActionShip)
}

// Expand names response fields to return as full objects instead of ids.
func (b *AdvanceShipping) Expand(fields ...string) *AdvanceShipping {
	b.params.Expand = slices.Clone(fields)
	return b
}

// Build returns a request for the current parameters. The builder stays usable.
func (b *AdvanceShipping) Build() *stripe.Request {
	path := stripe.FormatPath("/test_helpers/issuing/cards/{card}/shipping/{action}", b.card, string(b.action))
	return stripe.NewRequest(stripe.MethodPost, path).Form(&b.params)
}

// Send dispatches the request without blocking.
func (b *AdvanceShipping) Send(ctx context.Context, t stripe.AsyncTransport) *stripe.Future[*Card] {
	return stripe.Send[*Card](ctx, t, b.Build())
}

// SendBlocking dispatches the request and waits for the response.
func (b *AdvanceShipping) SendBlocking(ctx context.Context, t stripe.Transport) (*Card, error) {
	return stripe.SendBlocking[*Card](ctx, t, b.Build())
}
