package stripetest

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/broady/stripe"
	"github.com/broady/stripe/tax"
)

type listTaxIDsQuery struct {
	pageQuery
	OwnerAccount  string `schema:"owner[account]"`
	OwnerCustomer string `schema:"owner[customer]"`
	OwnerType     string `schema:"owner[type]" validate:"omitempty,oneof=account application customer self"`
}

type createTaxIDForm struct {
	OwnerAccount  string `schema:"owner[account]" validate:"required_if=OwnerType account"`
	OwnerCustomer string `schema:"owner[customer]" validate:"required_if=OwnerType customer"`
	OwnerType     string `schema:"owner[type]" validate:"omitempty,oneof=account application customer self"`
	Type          string `schema:"type" validate:"required"`
	Value         string `schema:"value" validate:"required"`
}

func (s *Server) handleListTaxIDs(w http.ResponseWriter, r *http.Request) {
	vals, ok := queryValues(w, r)
	if !ok {
		return
	}
	var q listTaxIDsQuery
	if !s.decode(w, &q, vals) {
		return
	}
	owner := tax.Owner{Type: tax.OwnerTypeSelf}
	if q.OwnerType != "" {
		owner = newOwner(q.OwnerType, q.OwnerAccount, q.OwnerCustomer)
	}

	s.mu.Lock()
	var matched []*tax.TaxID
	for _, t := range newestFirst(s.taxIDs) {
		if sameOwner(t.Owner, &owner) {
			matched = append(matched, t)
		}
	}
	page, hasMore, badCursor := paginate(matched, q.pageQuery)
	s.mu.Unlock()

	if badCursor != "" {
		respondMissing(w, "tax_id", vals.Get(badCursor), badCursor)
		return
	}
	respondList(w, "/v1/tax_ids", page, hasMore)
}

func (s *Server) handleCreateTaxID(w http.ResponseWriter, r *http.Request) {
	vals, ok := bodyValues(w, r)
	if !ok {
		return
	}
	var f createTaxIDForm
	if !s.decode(w, &f, vals) {
		return
	}
	typ := tax.ParseIDType(f.Type)
	if !typ.Known() {
		respondError(w, http.StatusBadRequest, errInvalidRequest, "parameter_invalid",
			"Invalid type: "+f.Type+" is not a supported tax ID type", "type")
		return
	}
	ownerType := f.OwnerType
	if ownerType == "" {
		ownerType = string(tax.OwnerTypeSelf)
	}
	owner := newOwner(ownerType, f.OwnerAccount, f.OwnerCustomer)

	id := &tax.TaxID{
		Object:       "tax_id",
		Owner:        &owner,
		Type:         typ,
		Value:        f.Value,
		Verification: &tax.Verification{Status: tax.VerificationPending},
	}
	if owner.Customer != nil {
		id.Customer = &stripe.Expandable[tax.Customer]{ID: *owner.Customer}
	}

	s.mu.Lock()
	id.ID = s.nextID("txi")
	id.Created = s.now().Unix()
	s.taxIDs = append(s.taxIDs, id)
	out := *id
	s.mu.Unlock()

	respondJSON(w, http.StatusOK, &out)
}

func (s *Server) handleGetTaxID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	i := s.taxIDIndex(id)
	var out tax.TaxID
	if i >= 0 {
		out = *s.taxIDs[i]
	}
	s.mu.Unlock()

	if i < 0 {
		respondMissing(w, "tax_id", id, "id")
		return
	}
	respondJSON(w, http.StatusOK, &out)
}

func (s *Server) handleDeleteTaxID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	customer := chi.URLParam(r, "customer")
	s.mu.Lock()
	i := s.taxIDIndex(id)
	if i >= 0 && customer != "" {
		if c := s.taxIDs[i].Owner.Customer; c == nil || *c != customer {
			i = -1
		}
	}
	if i >= 0 {
		s.taxIDs = slices.Delete(s.taxIDs, i, i+1)
	}
	s.mu.Unlock()

	if i < 0 {
		respondMissing(w, "tax_id", id, "id")
		return
	}
	respondJSON(w, http.StatusOK, &stripe.Deleted{ID: id, Object: "tax_id", Deleted: true})
}

// taxIDIndex returns the position of id in s.taxIDs or -1. Callers hold s.mu.
func (s *Server) taxIDIndex(id string) int {
	return slices.IndexFunc(s.taxIDs, func(t *tax.TaxID) bool { return t.ID == id })
}

func newOwner(typ, account, customer string) tax.Owner {
	o := tax.Owner{Type: tax.OwnerType(typ)}
	if account != "" {
		o.Account = &account
	}
	if customer != "" {
		o.Customer = &customer
	}
	return o
}

func sameOwner(a, b *tax.Owner) bool {
	eq := func(x, y *string) bool {
		return (x == nil && y == nil) || (x != nil && y != nil && *x == *y)
	}
	return a != nil && b != nil && a.Type == b.Type && eq(a.Account, b.Account) && eq(a.Customer, b.Customer)
}
