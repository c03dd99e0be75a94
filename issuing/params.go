package issuing

// SpendingControlsParams sets the spending rules of a card.
//
// A nil slice leaves the corresponding rule unchanged. A non-nil empty
// slice clears it on the server.
type SpendingControlsParams struct {
	AllowedCategories []MerchantCategory    `form:"allowed_categories"`
	BlockedCategories []MerchantCategory    `form:"blocked_categories"`
	SpendingLimits    []SpendingLimitParams `form:"spending_limits"`
}

// SpendingLimitParams is one spending limit. Amount and Interval are required.
type SpendingLimitParams struct {
	Amount     int64                 `form:"amount"`
	Categories []MerchantCategory    `form:"categories"`
	Interval   SpendingLimitInterval `form:"interval"`
}

// NewSpendingLimit returns a limit applying to all categories.
func NewSpendingLimit(amount int64, interval SpendingLimitInterval) SpendingLimitParams {
	return SpendingLimitParams{Amount: amount, Interval: interval}
}

// ShippingParams is where and how a physical card is shipped.
// Address and Name are required.
type ShippingParams struct {
	Address          ShippingAddressParams `form:"address"`
	Customs          *CustomsParams        `form:"customs"`
	Name             string                `form:"name"`
	PhoneNumber      *string               `form:"phone_number"`
	RequireSignature *bool                 `form:"require_signature"`
	Service          *ShippingService      `form:"service"`
	Type             *ShippingType         `form:"type"`
}

// ShippingAddressParams is a shipping address. City, Country, Line1 and
// PostalCode are required.
type ShippingAddressParams struct {
	City       string  `form:"city"`
	Country    string  `form:"country"`
	Line1      string  `form:"line1"`
	Line2      *string `form:"line2"`
	PostalCode string  `form:"postal_code"`
	State      *string `form:"state"`
}

// CustomsParams holds customs information for international shipments.
type CustomsParams struct {
	EORINumber *string `form:"eori_number"`
}

// PinParams sets the card PIN. The number must be encrypted with the
// issuer's public key.
type PinParams struct {
	EncryptedNumber *string `form:"encrypted_number"`
}
