package tax

// CountryOptions holds the registration details for one country. Set only
// the field for the country being registered.
type CountryOptions struct {
	AE *StandardOptions   `form:"ae"`
	AU *StandardOptions   `form:"au"`
	CA *CanadaOptions     `form:"ca"`
	CH *StandardOptions   `form:"ch"`
	CL *SimplifiedOptions `form:"cl"`
	CO *SimplifiedOptions `form:"co"`
	DE *EUOptions         `form:"de"`
	ES *EUOptions         `form:"es"`
	FR *EUOptions         `form:"fr"`
	GB *StandardOptions   `form:"gb"`
	IE *EUOptions         `form:"ie"`
	IT *EUOptions         `form:"it"`
	JP *StandardOptions   `form:"jp"`
	NL *EUOptions         `form:"nl"`
	NO *StandardOptions   `form:"no"`
	NZ *StandardOptions   `form:"nz"`
	SG *StandardOptions   `form:"sg"`
	US *USOptions         `form:"us"`
}

// StandardOptions registers in a country with a single registration scheme.
type StandardOptions struct {
	Type StandardType `form:"type"`
}

// Standard returns options for a standard registration.
func Standard() *StandardOptions {
	return &StandardOptions{Type: StandardTypeStandard}
}

// SimplifiedType is the registration type of countries that only offer a
// simplified scheme.
type SimplifiedType string

const SimplifiedTypeSimplified SimplifiedType = "simplified"

func (v SimplifiedType) String() string { return string(v) }
func (v SimplifiedType) Known() bool    { return v == SimplifiedTypeSimplified }

// SimplifiedOptions registers under a simplified scheme.
type SimplifiedOptions struct {
	Type SimplifiedType `form:"type"`
}

// Simplified returns options for a simplified registration.
func Simplified() *SimplifiedOptions {
	return &SimplifiedOptions{Type: SimplifiedTypeSimplified}
}

// EUOptions registers in a European Union member state.
type EUOptions struct {
	Standard *EUStandardOptions `form:"standard"`
	Type     EUType             `form:"type"`
}

// EUStandardOptions applies when Type is EUTypeStandard.
type EUStandardOptions struct {
	PlaceOfSupplyScheme PlaceOfSupplyScheme `form:"place_of_supply_scheme"`
}

// EU returns options for a registration of the given type.
func EU(typ EUType) *EUOptions {
	return &EUOptions{Type: typ}
}

// WithPlaceOfSupply sets the place of supply scheme of a standard registration.
func (o *EUOptions) WithPlaceOfSupply(s PlaceOfSupplyScheme) *EUOptions {
	o.Standard = &EUStandardOptions{PlaceOfSupplyScheme: s}
	return o
}

// CanadaOptions registers in Canada.
type CanadaOptions struct {
	ProvinceStandard *ProvinceStandardOptions `form:"province_standard"`
	Type             CanadaType               `form:"type"`
}

// ProvinceStandardOptions names the province of a province_standard registration.
type ProvinceStandardOptions struct {
	Province string `form:"province"`
}

// Canada returns options for a federal registration of the given type.
func Canada(typ CanadaType) *CanadaOptions {
	return &CanadaOptions{Type: typ}
}

// CanadaProvince returns options for a provincial registration, e.g. "BC".
func CanadaProvince(province string) *CanadaOptions {
	return &CanadaOptions{
		ProvinceStandard: &ProvinceStandardOptions{Province: province},
		Type:             CanadaTypeProvinceStandard,
	}
}

// USOptions registers in a US state.
type USOptions struct {
	LocalAmusementTax *JurisdictionOptions `form:"local_amusement_tax"`
	LocalLeaseTax     *JurisdictionOptions `form:"local_lease_tax"`
	State             string               `form:"state"`
	Type              USType               `form:"type"`
}

// JurisdictionOptions names a local jurisdiction by FIPS code.
type JurisdictionOptions struct {
	Jurisdiction string `form:"jurisdiction"`
}

// US returns options for a registration in state, a two-letter code.
func US(state string, typ USType) *USOptions {
	return &USOptions{State: state, Type: typ}
}

// WithJurisdiction sets the FIPS code for local amusement and lease tax
// registrations. It has no effect for other types.
func (o *USOptions) WithJurisdiction(fips string) *USOptions {
	switch o.Type {
	case USTypeLocalAmusementTax:
		o.LocalAmusementTax = &JurisdictionOptions{Jurisdiction: fips}
	case USTypeLocalLeaseTax:
		o.LocalLeaseTax = &JurisdictionOptions{Jurisdiction: fips}
	}
	return o
}
