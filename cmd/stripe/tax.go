package main

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/broady/stripe/tax"
)

type TaxRegistrationsCmd struct {
	List   taxRegistrationsListCmd   `cmd:"" help:"List tax registrations."`
	Get    taxRegistrationsGetCmd    `cmd:"" help:"Retrieve a tax registration."`
	Create taxRegistrationsCreateCmd `cmd:"" help:"Register to collect tax in a country."`
	Update taxRegistrationsUpdateCmd `cmd:"" help:"Change when a registration starts or ends."`
}

type taxRegistrationsListCmd struct {
	Status string `help:"active, all, expired or scheduled."`
	Limit  int64  `help:"Registrations per page." default:"10"`
	All    bool   `help:"Follow has_more and print every registration."`
}

func (c *taxRegistrationsListCmd) Run(g *Globals) error {
	b := tax.NewListRegistrations().Limit(c.Limit)
	if c.Status != "" {
		s, err := tax.ParseRegistrationFilter(c.Status)
		if err != nil {
			return err
		}
		b.Status(s)
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	if c.All {
		return g.print(b.Paginate().Collect(g.ctx, t))
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type taxRegistrationsGetCmd struct {
	ID string `arg:"" help:"Registration id."`
}

func (c *taxRegistrationsGetCmd) Run(g *Globals) error {
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(tax.NewRetrieveRegistration(c.ID).SendBlocking(g.ctx, t))
}

type taxRegistrationsCreateCmd struct {
	Country      string `arg:"" help:"Two-letter country code."`
	Type         string `help:"Registration type, e.g. standard, oss_union, state_sales_tax." default:"standard"`
	State        string `help:"US state, or Canadian province for province_standard."`
	Jurisdiction string `help:"FIPS code for US local amusement or lease tax."`
	ActiveFrom   string `help:"now or a Unix timestamp." name:"active-from" default:"now"`
	ExpiresAt    int64  `help:"Unix timestamp when the registration ends." name:"expires-at"`
}

func (c *taxRegistrationsCreateCmd) Run(g *Globals) error {
	from, err := parseActiveFrom(c.ActiveFrom)
	if err != nil {
		return err
	}
	opts, err := countryOptions(c.Country, c.Type, c.State, c.Jurisdiction)
	if err != nil {
		return err
	}
	b := tax.NewCreateRegistration(from, strings.ToUpper(c.Country), opts)
	if c.ExpiresAt != 0 {
		b.ExpiresAt(time.Unix(c.ExpiresAt, 0))
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type taxRegistrationsUpdateCmd struct {
	ID         string `arg:"" help:"Registration id."`
	ActiveFrom string `help:"now or a Unix timestamp." name:"active-from"`
	ExpiresAt  string `help:"now, never or a Unix timestamp." name:"expires-at"`
}

func (c *taxRegistrationsUpdateCmd) Run(g *Globals) error {
	b := tax.NewUpdateRegistration(c.ID)
	if c.ActiveFrom != "" {
		from, err := parseActiveFrom(c.ActiveFrom)
		if err != nil {
			return err
		}
		b.ActiveFrom(from)
	}
	if c.ExpiresAt != "" {
		exp, err := parseExpiresAt(c.ExpiresAt)
		if err != nil {
			return err
		}
		b.ExpiresAt(exp)
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

func parseActiveFrom(s string) (tax.ActiveFrom, error) {
	if s == "now" {
		return tax.ActiveNow(), nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return tax.ActiveFrom{}, fmt.Errorf("active-from: want now or a Unix timestamp, got %q", s)
	}
	return tax.ActiveAt(time.Unix(sec, 0)), nil
}

func parseExpiresAt(s string) (tax.ExpiresAt, error) {
	switch s {
	case "now":
		return tax.ExpiresNow(), nil
	case "never":
		return tax.NeverExpires(), nil
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return tax.ExpiresAt{}, fmt.Errorf("expires-at: want now, never or a Unix timestamp, got %q", s)
	}
	return tax.ExpiresOn(time.Unix(sec, 0)), nil
}

// countryOptions builds the options for one country and stores them in the
// CountryOptions field named after its code.
func countryOptions(country, typ, state, jurisdiction string) (tax.CountryOptions, error) {
	var opts tax.CountryOptions
	code := strings.ToUpper(country)
	field := reflect.ValueOf(&opts).Elem().FieldByName(code)
	if len(code) != 2 || !field.IsValid() {
		return opts, fmt.Errorf("tax registrations are not supported in %q", country)
	}

	var v any
	switch code {
	case "CA":
		if tax.CanadaType(typ) == tax.CanadaTypeProvinceStandard {
			if state == "" {
				return opts, fmt.Errorf("%s %s requires --state", code, typ)
			}
			v = tax.CanadaProvince(state)
		} else {
			v = tax.Canada(tax.CanadaType(typ))
		}
	case "US":
		usType, err := tax.ParseUSType(typ)
		if err != nil {
			return opts, err
		}
		if state == "" {
			return opts, fmt.Errorf("%s requires --state", code)
		}
		v = tax.US(strings.ToUpper(state), usType).WithJurisdiction(jurisdiction)
	default:
		switch field.Type() {
		case reflect.TypeFor[*tax.EUOptions]():
			euType, err := tax.ParseEUType(typ)
			if err != nil {
				return opts, err
			}
			v = tax.EU(euType)
		case reflect.TypeFor[*tax.SimplifiedOptions]():
			if typ != string(tax.SimplifiedTypeSimplified) && typ != string(tax.StandardTypeStandard) {
				return opts, fmt.Errorf("%s only supports simplified registrations", code)
			}
			v = tax.Simplified()
		default:
			if typ != string(tax.StandardTypeStandard) {
				return opts, fmt.Errorf("%s only supports standard registrations", code)
			}
			v = tax.Standard()
		}
	}
	field.Set(reflect.ValueOf(v))
	return opts, nil
}

type TaxIDsCmd struct {
	List   taxIDsListCmd   `cmd:"" help:"List tax IDs."`
	Get    taxIDsGetCmd    `cmd:"" help:"Retrieve a tax ID."`
	Create taxIDsCreateCmd `cmd:"" help:"Add a tax ID."`
	Delete taxIDsDeleteCmd `cmd:"" help:"Delete a tax ID."`
}

type taxIDsListCmd struct {
	Customer string `help:"List the customer's tax IDs instead of the account's."`
	All      bool   `help:"Follow has_more and print every tax ID."`
}

func (c *taxIDsListCmd) Run(g *Globals) error {
	b := tax.NewListTaxIDs()
	if c.Customer != "" {
		b.Owner(tax.OwnedByCustomer(c.Customer))
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	if c.All {
		return g.print(b.Paginate().Collect(g.ctx, t))
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type taxIDsGetCmd struct {
	ID string `arg:"" help:"Tax ID id."`
}

func (c *taxIDsGetCmd) Run(g *Globals) error {
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(tax.NewRetrieveTaxID(c.ID).SendBlocking(g.ctx, t))
}

type taxIDsCreateCmd struct {
	Type     string `arg:"" help:"Tax ID type, e.g. eu_vat."`
	Value    string `arg:"" help:"Tax ID value."`
	Customer string `help:"Attach to this customer instead of the account."`
}

func (c *taxIDsCreateCmd) Run(g *Globals) error {
	// ParseIDType never fails; a type this tool does not know encodes to an
	// error before anything is sent.
	b := tax.NewCreateTaxID(tax.ParseIDType(c.Type), c.Value)
	if c.Customer != "" {
		b.Owner(tax.OwnedByCustomer(c.Customer))
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}

type taxIDsDeleteCmd struct {
	ID       string `arg:"" help:"Tax ID id."`
	Customer string `help:"Customer the tax ID belongs to."`
}

func (c *taxIDsDeleteCmd) Run(g *Globals) error {
	b := tax.NewDeleteTaxID(c.ID)
	if c.Customer != "" {
		b = tax.NewDeleteCustomerTaxID(c.Customer, c.ID)
	}
	t, err := g.transport()
	if err != nil {
		return err
	}
	return g.print(b.SendBlocking(g.ctx, t))
}
