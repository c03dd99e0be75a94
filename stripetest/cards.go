package stripetest

import (
	"fmt"
	"maps"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/broady/stripe"
	"github.com/broady/stripe/form"
	"github.com/broady/stripe/issuing"
)

type listCardsQuery struct {
	pageQuery
	Cardholder string `schema:"cardholder"`
	ExpMonth   int64  `schema:"exp_month" validate:"omitempty,min=1,max=12"`
	ExpYear    int64  `schema:"exp_year"`
	Last4      string `schema:"last4" validate:"omitempty,len=4,numeric"`
	Status     string `schema:"status" validate:"omitempty,oneof=active canceled inactive"`
	Type       string `schema:"type" validate:"omitempty,oneof=physical virtual"`
}

type createCardForm struct {
	Cardholder        string `schema:"cardholder"`
	Currency          string `schema:"currency" validate:"required,len=3,lowercase"`
	FinancialAccount  string `schema:"financial_account"`
	ReplacementFor    string `schema:"replacement_for"`
	ReplacementReason string `schema:"replacement_reason" validate:"omitempty,oneof=damaged expired lost stolen"`
	Status            string `schema:"status" validate:"omitempty,oneof=active inactive"`
	Type              string `schema:"type" validate:"required,oneof=physical virtual"`
}

type updateCardForm struct {
	CancellationReason string `schema:"cancellation_reason" validate:"omitempty,oneof=design_rejected lost stolen"`
	Status             string `schema:"status" validate:"omitempty,oneof=active canceled inactive"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	vals, ok := queryValues(w, r)
	if !ok {
		return
	}
	var q listCardsQuery
	if !s.decode(w, &q, vals) {
		return
	}

	s.mu.Lock()
	var matched []*issuing.Card
	for _, c := range newestFirst(s.cards) {
		if cardMatches(c, q) {
			matched = append(matched, c)
		}
	}
	page, hasMore, badCursor := paginate(matched, q.pageQuery)
	s.mu.Unlock()

	if badCursor != "" {
		respondMissing(w, "issuing.card", vals.Get(badCursor), badCursor)
		return
	}
	respondList(w, "/v1/issuing/cards", page, hasMore)
}

func cardMatches(c *issuing.Card, q listCardsQuery) bool {
	switch {
	case q.Cardholder != "" && (c.Cardholder == nil || c.Cardholder.ID != q.Cardholder):
		return false
	case q.ExpMonth != 0 && c.ExpMonth != q.ExpMonth:
		return false
	case q.ExpYear != 0 && c.ExpYear != q.ExpYear:
		return false
	case q.Last4 != "" && c.Last4 != q.Last4:
		return false
	case q.Status != "" && string(c.Status) != q.Status:
		return false
	case q.Type != "" && string(c.Type) != q.Type:
		return false
	}
	return true
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	vals, ok := bodyValues(w, r)
	if !ok {
		return
	}
	var f createCardForm
	if !s.decode(w, &f, vals) {
		return
	}

	card := &issuing.Card{
		Object:   "issuing.card",
		Brand:    "Visa",
		Currency: stripe.Currency(f.Currency),
		Metadata: map[string]string{},
		Status:   issuing.CardStatusInactive,
		Type:     issuing.CardType(f.Type),
	}
	if f.Status != "" {
		card.Status = issuing.CardStatus(f.Status)
	}
	if f.Cardholder != "" {
		card.Cardholder = &issuing.Cardholder{ID: f.Cardholder, Object: "issuing.cardholder", Status: "active", Type: "individual"}
	}
	if f.FinancialAccount != "" {
		card.FinancialAccount = &f.FinancialAccount
	}
	if f.ReplacementReason != "" {
		reason := issuing.ReplacementReason(f.ReplacementReason)
		card.ReplacementReason = &reason
	}

	if hasPrefix(vals, "shipping") {
		shipping, param, err := parseShipping(subValues(vals, "shipping"))
		if err != "" {
			respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_missing", err, nestParam("shipping", param))
			return
		}
		card.Shipping = shipping
	} else if card.Type == issuing.CardTypePhysical {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_missing",
			"Missing required param: shipping. Physical cards must be shipped.", "shipping")
		return
	}
	for k, v := range metadataPairs(vals) {
		if v != "" {
			card.Metadata[k] = v
		}
	}
	if hasPrefix(vals, "spending_controls") {
		controls, param, err := parseSpendingControls(subValues(vals, "spending_controls"))
		if err != "" {
			respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_invalid", err, nestParam("spending_controls", param))
			return
		}
		card.SpendingControls = controls
	}

	s.mu.Lock()
	if f.ReplacementFor != "" {
		old := s.findCard(f.ReplacementFor)
		if old == nil {
			s.mu.Unlock()
			respondMissing(w, "issuing.card", f.ReplacementFor, "replacement_for")
			return
		}
		card.ReplacementFor = &stripe.Expandable[issuing.Card]{ID: old.ID}
	}
	now := s.now()
	card.ID = s.nextID("ic")
	card.Created = now.Unix()
	card.ExpMonth = int64(now.Month())
	card.ExpYear = int64(now.Year() + 3)
	card.Last4 = fmt.Sprintf("%04d", s.seq%10000)
	if card.ReplacementFor != nil {
		s.findCard(card.ReplacementFor.ID).ReplacedBy = &stripe.Expandable[issuing.Card]{ID: card.ID}
	}
	s.cards = append(s.cards, card)
	out := snapshot(card)
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, &out)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "card")
	s.mu.Lock()
	c := s.findCard(id)
	var out issuing.Card
	if c != nil {
		out = snapshot(c)
	}
	s.mu.Unlock()

	if c == nil {
		respondMissing(w, "issuing.card", id, "id")
		return
	}
	respondJSON(w, http.StatusOK, &out)
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "card")
	vals, ok := bodyValues(w, r)
	if !ok {
		return
	}
	var f updateCardForm
	if !s.decode(w, &f, vals) {
		return
	}
	var controls *issuing.AuthorizationControls
	if hasPrefix(vals, "spending_controls") {
		c, param, err := parseSpendingControls(subValues(vals, "spending_controls"))
		if err != "" {
			respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_invalid", err, nestParam("spending_controls", param))
			return
		}
		controls = &c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCard(id)
	if c == nil {
		respondMissing(w, "issuing.card", id, "id")
		return
	}
	if c.Status == issuing.CardStatusCanceled {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", "This card has been canceled and cannot be updated.", "")
		return
	}

	if f.Status != "" {
		c.Status = issuing.CardStatus(f.Status)
	}
	if f.CancellationReason != "" {
		reason := issuing.CancellationReason(f.CancellationReason)
		c.CancellationReason = &reason
	}
	if v, ok := vals.Lookup("metadata"); ok && v == "" {
		clear(c.Metadata)
	}
	for k, v := range metadataPairs(vals) {
		if v == "" {
			delete(c.Metadata, k)
		} else {
			c.Metadata[k] = v
		}
	}
	if controls != nil {
		if hasPrefix(vals, "spending_controls[allowed_categories]") {
			c.SpendingControls.AllowedCategories = controls.AllowedCategories
		}
		if hasPrefix(vals, "spending_controls[blocked_categories]") {
			c.SpendingControls.BlockedCategories = controls.BlockedCategories
		}
		if hasPrefix(vals, "spending_controls[spending_limits]") {
			c.SpendingControls.SpendingLimits = controls.SpendingLimits
		}
	}
	respondJSON(w, http.StatusOK, c)
}

// shippingTransitions lists, per test-helper action, the states it may
// start from and the state it ends in.
var shippingTransitions = map[string]struct {
	from []issuing.ShippingStatus
	to   issuing.ShippingStatus
}{
	"ship":    {[]issuing.ShippingStatus{issuing.ShippingStatusPending, issuing.ShippingStatusSubmitted}, issuing.ShippingStatusShipped},
	"deliver": {[]issuing.ShippingStatus{issuing.ShippingStatusShipped}, issuing.ShippingStatusDelivered},
	"return":  {[]issuing.ShippingStatus{issuing.ShippingStatusShipped, issuing.ShippingStatusDelivered}, issuing.ShippingStatusReturned},
	"fail":    {[]issuing.ShippingStatus{issuing.ShippingStatusPending, issuing.ShippingStatusSubmitted, issuing.ShippingStatusShipped}, issuing.ShippingStatusFailure},
}

func (s *Server) handleShippingAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "card")
	action := chi.URLParam(r, "action")
	tr, ok := shippingTransitions[action]
	if !ok {
		respondError(w, http.StatusNotFound, errInvalidRequest, "",
			fmt.Sprintf("Unrecognized request URL (POST: %s).", r.URL.Path), "")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.findCard(id)
	if c == nil {
		respondMissing(w, "issuing.card", id, "card")
		return
	}
	if c.Type != issuing.CardTypePhysical || c.Shipping == nil {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "", "Only physical cards have a shipment.", "card")
		return
	}
	current := issuing.ShippingStatusPending
	if c.Shipping.Status != nil {
		current = *c.Shipping.Status
	}
	allowed := false
	for _, from := range tr.from {
		allowed = allowed || from == current
	}
	if !allowed {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "",
			fmt.Sprintf("Cannot %s a card whose shipping status is %s.", action, current), "")
		return
	}

	next := tr.to
	c.Shipping.Status = &next
	if next == issuing.ShippingStatusShipped {
		carrier := issuing.ShippingCarrierUSPS
		tracking := "TRK" + strings.TrimPrefix(c.ID, "ic_")
		eta := s.now().Add(72 * time.Hour).Unix()
		c.Shipping.Carrier = &carrier
		c.Shipping.TrackingNumber = &tracking
		c.Shipping.ETA = &eta
	}
	respondJSON(w, http.StatusOK, c)
}

// findCard returns the stored card with id. Callers hold s.mu.
func (s *Server) findCard(id string) *issuing.Card {
	for _, c := range s.cards {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// snapshot copies c so it can be encoded without holding s.mu.
func snapshot(c *issuing.Card) issuing.Card {
	out := *c
	out.Metadata = maps.Clone(c.Metadata)
	return out
}

// metadataPairs yields the metadata[k] entries of vals.
func metadataPairs(vals form.Values) map[string]string {
	out := make(map[string]string)
	for _, p := range subValues(vals, "metadata") {
		out[p.Key] = p.Value
	}
	return out
}

// parseShipping reads shipping fields stripped of their "shipping" prefix.
// It returns the offending param and a message on failure.
func parseShipping(vals form.Values) (*issuing.Shipping, string, string) {
	for _, key := range []string{"name", "address[line1]", "address[city]", "address[country]", "address[postal_code]"} {
		if vals.Get(key) == "" {
			return nil, key, "Missing required param: " + nestParam("shipping", key) + "."
		}
	}
	opt := func(key string) *string {
		if v, ok := vals.Lookup(key); ok {
			return &v
		}
		return nil
	}
	addr := subValues(vals, "address")
	status := issuing.ShippingStatusPending
	sh := &issuing.Shipping{
		Address: issuing.Address{
			City:       stripe.String(addr.Get("city")),
			Country:    stripe.String(addr.Get("country")),
			Line1:      stripe.String(addr.Get("line1")),
			Line2:      opt("address[line2]"),
			PostalCode: stripe.String(addr.Get("postal_code")),
			State:      opt("address[state]"),
		},
		Name:        vals.Get("name"),
		PhoneNumber: opt("phone_number"),
		Service:     issuing.ShippingServiceStandard,
		Status:      &status,
		Type:        issuing.ShippingTypeIndividual,
	}
	if v, ok := vals.Lookup("service"); ok {
		svc, err := issuing.ParseShippingService(v)
		if err != nil {
			return nil, "service", err.Error()
		}
		sh.Service = svc
	}
	if v, ok := vals.Lookup("type"); ok {
		typ, err := issuing.ParseShippingType(v)
		if err != nil {
			return nil, "type", err.Error()
		}
		sh.Type = typ
	}
	return sh, "", ""
}

// parseSpendingControls reads spending control fields stripped of their
// "spending_controls" prefix. Unrecognized categories are rejected.
func parseSpendingControls(vals form.Values) (issuing.AuthorizationControls, string, string) {
	var c issuing.AuthorizationControls
	categories := func(key string, vs []string) ([]issuing.MerchantCategory, string) {
		out := make([]issuing.MerchantCategory, 0, len(vs))
		for _, v := range vs {
			if v == "" {
				continue
			}
			mc := issuing.ParseMerchantCategory(v)
			if !mc.Known() {
				return nil, fmt.Sprintf("Invalid %s: unknown merchant category %q", key, v)
			}
			out = append(out, mc)
		}
		return out, ""
	}

	var msg string
	if vals.Has("allowed_categories") || vals.Has("allowed_categories[]") {
		if c.AllowedCategories, msg = categories("allowed_categories", vals.All("allowed_categories[]")); msg != "" {
			return c, "allowed_categories", msg
		}
	}
	if vals.Has("blocked_categories") || vals.Has("blocked_categories[]") {
		if c.BlockedCategories, msg = categories("blocked_categories", vals.All("blocked_categories[]")); msg != "" {
			return c, "blocked_categories", msg
		}
	}

	limits := subValues(vals, "spending_limits")
	if vals.Has("spending_limits") {
		c.SpendingLimits = []issuing.SpendingLimit{}
	}
	for i := 0; ; i++ {
		entry := subValues(limits, strconv.Itoa(i))
		if len(entry) == 0 {
			break
		}
		param := fmt.Sprintf("spending_limits[%d]", i)
		amount, err := strconv.ParseInt(entry.Get("amount"), 10, 64)
		if err != nil {
			return c, param + "[amount]", "Invalid integer: " + entry.Get("amount")
		}
		interval, err := issuing.ParseSpendingLimitInterval(entry.Get("interval"))
		if err != nil {
			return c, param + "[interval]", err.Error()
		}
		limit := issuing.SpendingLimit{Amount: amount, Interval: interval}
		if limit.Categories, msg = categories(param+"[categories]", entry.All("categories[]")); msg != "" {
			return c, param + "[categories]", msg
		}
		c.SpendingLimits = append(c.SpendingLimits, limit)
	}
	return c, "", ""
}
