// Package issuing holds the request builders and resource types of the
// card-issuing endpoints: cards, authorizations and the test-mode shipping
// helpers.
package issuing

import (
	"github.com/broady/stripe"
)

// Card is an issued payment card.
type Card struct {
	ID                 string                   `json:"id"`
	Object             string                   `json:"object"`
	Brand              string                   `json:"brand"`
	CancellationReason *CancellationReason      `json:"cancellation_reason"`
	Cardholder         *Cardholder              `json:"cardholder"`
	Created            int64                    `json:"created"`
	Currency           stripe.Currency          `json:"currency"`
	ExpMonth           int64                    `json:"exp_month"`
	ExpYear            int64                    `json:"exp_year"`
	FinancialAccount   *string                  `json:"financial_account"`
	Last4              string                   `json:"last4"`
	Livemode           bool                     `json:"livemode"`
	Metadata           map[string]string        `json:"metadata"`
	ReplacedBy         *stripe.Expandable[Card] `json:"replaced_by"`
	ReplacementFor     *stripe.Expandable[Card] `json:"replacement_for"`
	ReplacementReason  *ReplacementReason       `json:"replacement_reason"`
	Shipping           *Shipping                `json:"shipping"`
	SpendingControls   AuthorizationControls    `json:"spending_controls"`
	Status             CardStatus               `json:"status"`
	Type               CardType                 `json:"type"`
}

func (c *Card) ObjectID() string { return c.ID }

// Cardholder is the person or business a card is issued to.
type Cardholder struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Status      string `json:"status"`
	Type        string `json:"type"`
}

func (c *Cardholder) ObjectID() string { return c.ID }

// Address is a postal address as returned by the API.
type Address struct {
	City       *string `json:"city"`
	Country    *string `json:"country"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	PostalCode *string `json:"postal_code"`
	State      *string `json:"state"`
}

// Shipping describes the delivery of a physical card.
type Shipping struct {
	Address        Address          `json:"address"`
	Carrier        *ShippingCarrier `json:"carrier"`
	ETA            *int64           `json:"eta"`
	Name           string           `json:"name"`
	PhoneNumber    *string          `json:"phone_number"`
	Service        ShippingService  `json:"service"`
	Status         *ShippingStatus  `json:"status"`
	TrackingNumber *string          `json:"tracking_number"`
	TrackingURL    *string          `json:"tracking_url"`
	Type           ShippingType     `json:"type"`
}

// AuthorizationControls are the spending rules attached to a card.
type AuthorizationControls struct {
	AllowedCategories      []MerchantCategory `json:"allowed_categories"`
	BlockedCategories      []MerchantCategory `json:"blocked_categories"`
	SpendingLimits         []SpendingLimit    `json:"spending_limits"`
	SpendingLimitsCurrency *stripe.Currency   `json:"spending_limits_currency"`
}

// SpendingLimit caps the amount spent in an interval.
type SpendingLimit struct {
	Amount     int64                 `json:"amount"`
	Categories []MerchantCategory    `json:"categories"`
	Interval   SpendingLimitInterval `json:"interval"`
}

// Params converts controls read from a card into update parameters.
// Categories that decoded as unknown are carried over and will make the
// request fail to encode.
func (c AuthorizationControls) Params() *SpendingControlsParams {
	p := &SpendingControlsParams{
		AllowedCategories: c.AllowedCategories,
		BlockedCategories: c.BlockedCategories,
	}
	if c.SpendingLimits != nil {
		p.SpendingLimits = make([]SpendingLimitParams, len(c.SpendingLimits))
		for i, l := range c.SpendingLimits {
			p.SpendingLimits[i] = SpendingLimitParams{Amount: l.Amount, Categories: l.Categories, Interval: l.Interval}
		}
	}
	return p
}
