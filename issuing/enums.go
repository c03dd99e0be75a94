package issuing

import "github.com/broady/stripe/enum"

// CardStatus is the lifecycle state of a card.
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusCanceled CardStatus = "canceled"
	CardStatusInactive CardStatus = "inactive"
)

var cardStatuses = enum.Strict("CardStatus", CardStatusActive, CardStatusCanceled, CardStatusInactive)

func ParseCardStatus(s string) (CardStatus, error) { return cardStatuses.Parse(s) }
func (v CardStatus) String() string                { return string(v) }
func (v CardStatus) Known() bool                   { return cardStatuses.Known(v) }
func (v *CardStatus) UnmarshalJSON(b []byte) error { return cardStatuses.UnmarshalJSON(b, v) }

// CardType distinguishes physical cards from virtual ones.
type CardType string

const (
	CardTypePhysical CardType = "physical"
	CardTypeVirtual  CardType = "virtual"
)

var cardTypes = enum.Strict("CardType", CardTypePhysical, CardTypeVirtual)

func ParseCardType(s string) (CardType, error) { return cardTypes.Parse(s) }
func (v CardType) String() string              { return string(v) }
func (v CardType) Known() bool                 { return cardTypes.Known(v) }
func (v *CardType) UnmarshalJSON(b []byte) error {
	return cardTypes.UnmarshalJSON(b, v)
}

// CancellationReason says why a card was canceled.
type CancellationReason string

const (
	CancellationReasonDesignRejected CancellationReason = "design_rejected"
	CancellationReasonLost           CancellationReason = "lost"
	CancellationReasonStolen         CancellationReason = "stolen"
)

var cancellationReasons = enum.Strict("CancellationReason",
	CancellationReasonDesignRejected, CancellationReasonLost, CancellationReasonStolen)

func ParseCancellationReason(s string) (CancellationReason, error) {
	return cancellationReasons.Parse(s)
}
func (v CancellationReason) String() string { return string(v) }
func (v CancellationReason) Known() bool    { return cancellationReasons.Known(v) }
func (v *CancellationReason) UnmarshalJSON(b []byte) error {
	return cancellationReasons.UnmarshalJSON(b, v)
}

// ReplacementReason says why a card replaces another.
type ReplacementReason string

const (
	ReplacementReasonDamaged ReplacementReason = "damaged"
	ReplacementReasonExpired ReplacementReason = "expired"
	ReplacementReasonLost    ReplacementReason = "lost"
	ReplacementReasonStolen  ReplacementReason = "stolen"
)

var replacementReasons = enum.Strict("ReplacementReason",
	ReplacementReasonDamaged, ReplacementReasonExpired, ReplacementReasonLost, ReplacementReasonStolen)

func ParseReplacementReason(s string) (ReplacementReason, error) {
	return replacementReasons.Parse(s)
}
func (v ReplacementReason) String() string { return string(v) }
func (v ReplacementReason) Known() bool    { return replacementReasons.Known(v) }
func (v *ReplacementReason) UnmarshalJSON(b []byte) error {
	return replacementReasons.UnmarshalJSON(b, v)
}

// ShippingService is the delivery speed of a physical card.
type ShippingService string

const (
	ShippingServiceExpress  ShippingService = "express"
	ShippingServicePriority ShippingService = "priority"
	ShippingServiceStandard ShippingService = "standard"
)

var shippingServices = enum.Strict("ShippingService",
	ShippingServiceExpress, ShippingServicePriority, ShippingServiceStandard)

func ParseShippingService(s string) (ShippingService, error) { return shippingServices.Parse(s) }
func (v ShippingService) String() string                     { return string(v) }
func (v ShippingService) Known() bool                        { return shippingServices.Known(v) }
func (v *ShippingService) UnmarshalJSON(b []byte) error {
	return shippingServices.UnmarshalJSON(b, v)
}

// ShippingType says whether a card ships alone or in a bulk package.
type ShippingType string

const (
	ShippingTypeBulk       ShippingType = "bulk"
	ShippingTypeIndividual ShippingType = "individual"
)

var shippingTypes = enum.Strict("ShippingType", ShippingTypeBulk, ShippingTypeIndividual)

func ParseShippingType(s string) (ShippingType, error) { return shippingTypes.Parse(s) }
func (v ShippingType) String() string                  { return string(v) }
func (v ShippingType) Known() bool                     { return shippingTypes.Known(v) }
func (v *ShippingType) UnmarshalJSON(b []byte) error {
	return shippingTypes.UnmarshalJSON(b, v)
}

// ShippingStatus tracks a physical card through delivery.
type ShippingStatus string

const (
	ShippingStatusCanceled  ShippingStatus = "canceled"
	ShippingStatusDelivered ShippingStatus = "delivered"
	ShippingStatusFailure   ShippingStatus = "failure"
	ShippingStatusPending   ShippingStatus = "pending"
	ShippingStatusReturned  ShippingStatus = "returned"
	ShippingStatusShipped   ShippingStatus = "shipped"
	ShippingStatusSubmitted ShippingStatus = "submitted"
)

var shippingStatuses = enum.Strict("ShippingStatus",
	ShippingStatusCanceled, ShippingStatusDelivered, ShippingStatusFailure, ShippingStatusPending,
	ShippingStatusReturned, ShippingStatusShipped, ShippingStatusSubmitted)

func ParseShippingStatus(s string) (ShippingStatus, error) { return shippingStatuses.Parse(s) }
func (v ShippingStatus) String() string                    { return string(v) }
func (v ShippingStatus) Known() bool                       { return shippingStatuses.Known(v) }
func (v *ShippingStatus) UnmarshalJSON(b []byte) error {
	return shippingStatuses.UnmarshalJSON(b, v)
}

// ShippingCarrier delivers physical cards.
type ShippingCarrier string

const (
	ShippingCarrierDHL       ShippingCarrier = "dhl"
	ShippingCarrierFedEx     ShippingCarrier = "fedex"
	ShippingCarrierRoyalMail ShippingCarrier = "royal_mail"
	ShippingCarrierUSPS      ShippingCarrier = "usps"
)

var shippingCarriers = enum.Strict("ShippingCarrier",
	ShippingCarrierDHL, ShippingCarrierFedEx, ShippingCarrierRoyalMail, ShippingCarrierUSPS)

func ParseShippingCarrier(s string) (ShippingCarrier, error) { return shippingCarriers.Parse(s) }
func (v ShippingCarrier) String() string                     { return string(v) }
func (v ShippingCarrier) Known() bool                        { return shippingCarriers.Known(v) }
func (v *ShippingCarrier) UnmarshalJSON(b []byte) error {
	return shippingCarriers.UnmarshalJSON(b, v)
}

// SpendingLimitInterval is the window a spending limit applies to.
type SpendingLimitInterval string

const (
	SpendingLimitAllTime          SpendingLimitInterval = "all_time"
	SpendingLimitDaily            SpendingLimitInterval = "daily"
	SpendingLimitMonthly          SpendingLimitInterval = "monthly"
	SpendingLimitPerAuthorization SpendingLimitInterval = "per_authorization"
	SpendingLimitWeekly           SpendingLimitInterval = "weekly"
	SpendingLimitYearly           SpendingLimitInterval = "yearly"
)

var spendingLimitIntervals = enum.Strict("SpendingLimitInterval",
	SpendingLimitAllTime, SpendingLimitDaily, SpendingLimitMonthly,
	SpendingLimitPerAuthorization, SpendingLimitWeekly, SpendingLimitYearly)

func ParseSpendingLimitInterval(s string) (SpendingLimitInterval, error) {
	return spendingLimitIntervals.Parse(s)
}
func (v SpendingLimitInterval) String() string { return string(v) }
func (v SpendingLimitInterval) Known() bool    { return spendingLimitIntervals.Known(v) }
func (v *SpendingLimitInterval) UnmarshalJSON(b []byte) error {
	return spendingLimitIntervals.UnmarshalJSON(b, v)
}

// AuthorizationStatus is the state of an authorization.
type AuthorizationStatus string

const (
	AuthorizationStatusClosed   AuthorizationStatus = "closed"
	AuthorizationStatusExpired  AuthorizationStatus = "expired"
	AuthorizationStatusPending  AuthorizationStatus = "pending"
	AuthorizationStatusReversed AuthorizationStatus = "reversed"
)

var authorizationStatuses = enum.Strict("AuthorizationStatus",
	AuthorizationStatusClosed, AuthorizationStatusExpired, AuthorizationStatusPending, AuthorizationStatusReversed)

func ParseAuthorizationStatus(s string) (AuthorizationStatus, error) {
	return authorizationStatuses.Parse(s)
}
func (v AuthorizationStatus) String() string { return string(v) }
func (v AuthorizationStatus) Known() bool    { return authorizationStatuses.Known(v) }
func (v *AuthorizationStatus) UnmarshalJSON(b []byte) error {
	return authorizationStatuses.UnmarshalJSON(b, v)
}

// AuthorizationMethod is how the card was presented.
type AuthorizationMethod string

const (
	AuthorizationMethodChip        AuthorizationMethod = "chip"
	AuthorizationMethodContactless AuthorizationMethod = "contactless"
	AuthorizationMethodKeyedIn     AuthorizationMethod = "keyed_in"
	AuthorizationMethodOnline      AuthorizationMethod = "online"
	AuthorizationMethodSwipe       AuthorizationMethod = "swipe"
)

var authorizationMethods = enum.Strict("AuthorizationMethod",
	AuthorizationMethodChip, AuthorizationMethodContactless, AuthorizationMethodKeyedIn,
	AuthorizationMethodOnline, AuthorizationMethodSwipe)

func ParseAuthorizationMethod(s string) (AuthorizationMethod, error) {
	return authorizationMethods.Parse(s)
}
func (v AuthorizationMethod) String() string { return string(v) }
func (v AuthorizationMethod) Known() bool    { return authorizationMethods.Known(v) }
func (v *AuthorizationMethod) UnmarshalJSON(b []byte) error {
	return authorizationMethods.UnmarshalJSON(b, v)
}
